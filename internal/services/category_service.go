package services

import (
	"errors"
	"log"

	"catalog/internal/models"
	"catalog/internal/repositories"

	"catalog/pkg/media"
)

const categoryUploadPreset = "dev_categories"

// CreateCategoryInput is the category creation request body.
type CreateCategoryInput struct {
	Name  string   `json:"name" validate:"required,min=3,max=50"`
	Icon  *string  `json:"icon"`
	Color []string `json:"color"`
	Image string   `json:"image"`
}

// UpdateCategoryInput is the partial-update request body.
type UpdateCategoryInput struct {
	Name  *string  `json:"name" validate:"omitempty,min=3,max=50"`
	Icon  *string  `json:"icon"`
	Color []string `json:"color"`
	Image string   `json:"image"`
}

// CategoryService handles business logic for categories.
type CategoryService struct {
	repo  repositories.CategoryRepository
	media media.Store
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo repositories.CategoryRepository, media media.Store) *CategoryService {
	return &CategoryService{repo: repo, media: media}
}

// Create inserts a new category after a name uniqueness pre-check, uploading
// the image asset first if one was supplied. A late duplicate from the store
// rolls the upload back.
func (s *CategoryService) Create(in CreateCategoryInput) (*models.Category, error) {
	if err := s.checkName(in.Name, ""); err != nil {
		return nil, err
	}

	category := &models.Category{
		Name:  in.Name,
		Icon:  orElse(in.Icon, ""),
		Color: models.StringList(in.Color),
	}

	if in.Image != "" {
		asset, err := s.upload(in.Image)
		if err != nil {
			return nil, err
		}
		category.Image = asset.URL
		category.CloudinaryID = asset.PublicID
	}

	if err := s.repo.Create(category); err != nil {
		if _, ok := repositories.AsConflict(err); ok {
			s.destroyAsset(category.CloudinaryID)
		}
		return nil, err
	}
	return category, nil
}

// GetAll retrieves all categories.
func (s *CategoryService) GetAll() ([]models.Category, error) {
	return s.repo.GetAll()
}

// Get retrieves a category by name.
func (s *CategoryService) Get(name string) (*models.Category, error) {
	return s.repo.GetByName(name)
}

// Update applies a partial update to the category addressed by name,
// re-checking name uniqueness when it changes and replacing the image asset
// when a new one is supplied.
func (s *CategoryService) Update(name string, in UpdateCategoryInput) (*models.Category, error) {
	category, err := s.repo.GetByName(name)
	if err != nil {
		return nil, err
	}

	if in.Name != nil && *in.Name != category.Name {
		if err := s.checkName(*in.Name, category.ID); err != nil {
			return nil, err
		}
	}

	var uploaded string
	if in.Image != "" {
		s.destroyAsset(category.CloudinaryID)
		asset, err := s.upload(in.Image)
		if err != nil {
			return nil, err
		}
		category.Image = asset.URL
		category.CloudinaryID = asset.PublicID
		uploaded = asset.PublicID
	}

	category.Name = orElse(in.Name, category.Name)
	category.Icon = orElse(in.Icon, category.Icon)
	category.Color = orList(in.Color, category.Color)

	if err := s.repo.Update(category); err != nil {
		if _, ok := repositories.AsConflict(err); ok {
			s.destroyAsset(uploaded)
		}
		return nil, err
	}
	return category, nil
}

// Delete removes the category and its image asset, if any.
func (s *CategoryService) Delete(name string) error {
	category, err := s.repo.GetByName(name)
	if err != nil {
		return err
	}
	s.destroyAsset(category.CloudinaryID)
	return s.repo.Delete(category.ID)
}

func (s *CategoryService) checkName(name, selfID string) error {
	existing, err := s.repo.GetByName(name)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID == selfID {
		return nil
	}
	return &repositories.ConflictError{Field: "name"}
}

func (s *CategoryService) upload(source string) (*media.Asset, error) {
	if s.media == nil {
		return nil, errors.New("media store is not configured")
	}
	return s.media.Upload(source, categoryUploadPreset)
}

func (s *CategoryService) destroyAsset(publicID string) {
	if publicID == "" || s.media == nil {
		return
	}
	if err := s.media.Destroy(publicID); err != nil {
		log.Printf("Failed to destroy category image %s: %v", publicID, err)
	}
}
