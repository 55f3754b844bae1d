package services

import (
	"errors"
	"fmt"
	"log"

	"catalog/internal/models"
	"catalog/internal/repositories"

	"catalog/pkg/media"

	"golang.org/x/crypto/bcrypt"
)

const userUploadPreset = "dev_users"

// CreateUserInput is the sign-up request body.
type CreateUserInput struct {
	Username  string  `json:"username" validate:"required,alphanum,min=3,max=50"`
	Email     string  `json:"email" validate:"required,email,min=5,max=50"`
	Password  string  `json:"password" validate:"required,passwd"`
	Firstname *string `json:"firstname" validate:"omitempty,min=3,max=50"`
	Lastname  *string `json:"lastname" validate:"omitempty,min=3,max=50"`
	Phone     *string `json:"phone" validate:"omitempty,min=5,max=15"`
	Image     string  `json:"image"`
	Role      *string `json:"role" validate:"omitempty,oneof=ROOT ADMIN USER"`
	Active    *bool   `json:"active"`
	Street    *string `json:"street"`
	Apartment *string `json:"apartment"`
	ZipCode   *string `json:"zip_code"`
	City      *string `json:"city"`
	Country   *string `json:"country"`
}

// UpdateUserInput is the partial-update request body. Nil means "keep the
// stored value"; an empty Image string means no new image was supplied.
type UpdateUserInput struct {
	Username  *string `json:"username" validate:"omitempty,alphanum,min=3,max=50"`
	Email     *string `json:"email" validate:"omitempty,email,min=5,max=50"`
	Password  *string `json:"password" validate:"omitempty,passwd"`
	Firstname *string `json:"firstname" validate:"omitempty,min=3,max=50"`
	Lastname  *string `json:"lastname" validate:"omitempty,min=3,max=50"`
	Phone     *string `json:"phone" validate:"omitempty,min=5,max=15"`
	Image     string  `json:"image"`
	Role      *string `json:"role" validate:"omitempty,oneof=ROOT ADMIN USER"`
	Active    *bool   `json:"active"`
	Street    *string `json:"street"`
	Apartment *string `json:"apartment"`
	ZipCode   *string `json:"zip_code"`
	City      *string `json:"city"`
	Country   *string `json:"country"`
}

// UserService handles business logic for user accounts.
type UserService struct {
	repo  repositories.UserRepository
	media media.Store
}

// NewUserService creates a new UserService.
func NewUserService(repo repositories.UserRepository, media media.Store) *UserService {
	return &UserService{repo: repo, media: media}
}

// Create registers a new user: uniqueness pre-checks (username first, then
// email), password hashing, optional image upload, then insert. If the store
// still reports a duplicate, the just-uploaded asset is destroyed before the
// conflict is returned.
func (s *UserService) Create(in CreateUserInput) (*models.User, error) {
	if err := s.checkUnique("username", in.Username, ""); err != nil {
		return nil, err
	}
	if err := s.checkUnique("email", in.Email, ""); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:  in.Username,
		Email:     in.Email,
		Password:  string(hashed),
		Firstname: orElse(in.Firstname, ""),
		Lastname:  orElse(in.Lastname, ""),
		Phone:     orElse(in.Phone, ""),
		Role:      orElse(in.Role, models.RoleUser),
		Active:    orElse(in.Active, true),
		Street:    orElse(in.Street, ""),
		Apartment: orElse(in.Apartment, ""),
		ZipCode:   orElse(in.ZipCode, ""),
		City:      orElse(in.City, ""),
		Country:   orElse(in.Country, ""),
	}

	if in.Image != "" {
		asset, err := s.upload(in.Image)
		if err != nil {
			return nil, err
		}
		user.Image = asset.URL
		user.CloudinaryID = asset.PublicID
	}

	if err := s.repo.Create(user); err != nil {
		if _, ok := repositories.AsConflict(err); ok {
			s.destroyAsset(user.CloudinaryID)
		}
		return nil, err
	}
	return user, nil
}

// GetAll retrieves all users. Password hashes never serialize.
func (s *UserService) GetAll() ([]models.User, error) {
	return s.repo.GetAll()
}

// Get retrieves a user by username.
func (s *UserService) Get(username string) (*models.User, error) {
	return s.repo.GetByUsername(username)
}

// Update applies a partial update to the user addressed by username. Fields
// not supplied keep their stored values.
func (s *UserService) Update(username string, in UpdateUserInput) (*models.User, error) {
	user, err := s.repo.GetByUsername(username)
	if err != nil {
		return nil, err
	}

	if in.Username != nil && *in.Username != user.Username {
		if err := s.checkUnique("username", *in.Username, user.ID); err != nil {
			return nil, err
		}
	}
	if in.Email != nil && *in.Email != user.Email {
		if err := s.checkUnique("email", *in.Email, user.ID); err != nil {
			return nil, err
		}
	}

	password := user.Password
	if in.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		password = string(hashed)
	}

	var uploaded string
	if in.Image != "" {
		s.destroyAsset(user.CloudinaryID)
		asset, err := s.upload(in.Image)
		if err != nil {
			return nil, err
		}
		user.Image = asset.URL
		user.CloudinaryID = asset.PublicID
		uploaded = asset.PublicID
	}

	user.Username = orElse(in.Username, user.Username)
	user.Email = orElse(in.Email, user.Email)
	user.Password = password
	user.Firstname = orElse(in.Firstname, user.Firstname)
	user.Lastname = orElse(in.Lastname, user.Lastname)
	user.Phone = orElse(in.Phone, user.Phone)
	user.Role = orElse(in.Role, user.Role)
	user.Active = orElse(in.Active, user.Active)
	user.Street = orElse(in.Street, user.Street)
	user.Apartment = orElse(in.Apartment, user.Apartment)
	user.ZipCode = orElse(in.ZipCode, user.ZipCode)
	user.City = orElse(in.City, user.City)
	user.Country = orElse(in.Country, user.Country)

	if err := s.repo.Update(user); err != nil {
		if _, ok := repositories.AsConflict(err); ok {
			s.destroyAsset(uploaded)
		}
		return nil, err
	}
	return user, nil
}

// Delete removes the user and its image asset, if any.
func (s *UserService) Delete(username string) error {
	user, err := s.repo.GetByUsername(username)
	if err != nil {
		return err
	}
	s.destroyAsset(user.CloudinaryID)
	return s.repo.Delete(user.ID)
}

// Count returns the number of registered users.
func (s *UserService) Count() (int64, error) {
	return s.repo.Count()
}

func (s *UserService) checkUnique(field, value, selfID string) error {
	var existing *models.User
	var err error
	switch field {
	case "username":
		existing, err = s.repo.GetByUsername(value)
	default:
		existing, err = s.repo.GetByEmail(value)
	}
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID == selfID {
		return nil
	}
	return &repositories.ConflictError{Field: field}
}

func (s *UserService) upload(source string) (*media.Asset, error) {
	if s.media == nil {
		return nil, errors.New("media store is not configured")
	}
	return s.media.Upload(source, userUploadPreset)
}

func (s *UserService) destroyAsset(publicID string) {
	if publicID == "" || s.media == nil {
		return
	}
	if err := s.media.Destroy(publicID); err != nil {
		log.Printf("Failed to destroy user image %s: %v", publicID, err)
	}
}
