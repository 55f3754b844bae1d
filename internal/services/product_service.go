package services

import (
	"errors"
	"log"

	"catalog/internal/models"
	"catalog/internal/repositories"

	"catalog/pkg/media"
)

const productUploadPreset = "dev_products"

// ErrCategoryNotFound is returned when a referenced category name does not
// exist, on writes and on category-filtered listings alike.
var ErrCategoryNotFound = errors.New("category not found")

// CreateProductInput is the product creation request body. The category is
// referenced by name and resolved to its identifier at write time.
type CreateProductInput struct {
	Name            string   `json:"name" validate:"required,min=3,max=50"`
	Description     string   `json:"description" validate:"required,min=5,max=100"`
	RichDescription *string  `json:"richDescription"`
	Price           float64  `json:"price" validate:"required,min=1,max=1000"`
	Image           string   `json:"image"`
	Images          []string `json:"images"`
	Size            []string `json:"size"`
	Color           []string `json:"color"`
	Category        string   `json:"category" validate:"required,min=3,max=50"`
	CountInStock    *int     `json:"countInStock" validate:"required,min=0,max=255"`
	Rating          *float64 `json:"rating"`
	IsFeatured      *bool    `json:"isFeatured"`
}

// UpdateProductInput is the partial-update request body.
type UpdateProductInput struct {
	Name            *string  `json:"name" validate:"omitempty,min=3,max=50"`
	Description     *string  `json:"description" validate:"omitempty,min=5,max=100"`
	RichDescription *string  `json:"richDescription"`
	Price           *float64 `json:"price" validate:"omitempty,min=1,max=1000"`
	Image           string   `json:"image"`
	Images          []string `json:"images"`
	Size            []string `json:"size"`
	Color           []string `json:"color"`
	Category        *string  `json:"category" validate:"omitempty,min=3,max=50"`
	CountInStock    *int     `json:"countInStock" validate:"omitempty,min=0,max=255"`
	Rating          *float64 `json:"rating"`
	IsFeatured      *bool    `json:"isFeatured"`
}

// ProductService handles business logic for products.
type ProductService struct {
	repo         repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
	media        media.Store
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, categoryRepo repositories.CategoryRepository, media media.Store) *ProductService {
	return &ProductService{repo: repo, categoryRepo: categoryRepo, media: media}
}

// Create inserts a new product. Uniqueness pre-checks run in fixed order
// (name, then description) before the category is resolved and any image
// uploaded; a late duplicate from the store rolls the upload back.
func (s *ProductService) Create(in CreateProductInput) (*models.Product, error) {
	if err := s.checkUnique("name", in.Name, ""); err != nil {
		return nil, err
	}
	if err := s.checkUnique("description", in.Description, ""); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.GetByName(in.Category)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	product := &models.Product{
		Name:            in.Name,
		Description:     in.Description,
		RichDescription: orElse(in.RichDescription, ""),
		Price:           in.Price,
		Images:          models.StringList(in.Images),
		Size:            models.StringList(in.Size),
		Color:           models.StringList(in.Color),
		CategoryID:      category.ID,
		CountInStock:    orElse(in.CountInStock, 0),
		Rating:          orElse(in.Rating, 0),
		IsFeatured:      orElse(in.IsFeatured, false),
	}

	if in.Image != "" {
		asset, err := s.upload(in.Image)
		if err != nil {
			return nil, err
		}
		product.Image = asset.URL
		product.CloudinaryID = asset.PublicID
	}

	if err := s.repo.Create(product); err != nil {
		if _, ok := repositories.AsConflict(err); ok {
			s.destroyAsset(product.CloudinaryID)
		}
		return nil, err
	}
	return product, nil
}

// List returns products newest-first. When category names are given, every
// name must resolve or the whole request fails; no partial results.
func (s *ProductService) List(categoryNames []string) ([]models.Product, error) {
	var categoryIDs []string
	if len(categoryNames) > 0 {
		categories, err := s.categoryRepo.GetByNames(categoryNames)
		if err != nil {
			return nil, err
		}
		if len(categories) != len(categoryNames) {
			return nil, ErrCategoryNotFound
		}
		for _, c := range categories {
			categoryIDs = append(categoryIDs, c.ID)
		}
	}
	return s.repo.GetAll(categoryIDs)
}

// Get retrieves a product by name.
func (s *ProductService) Get(name string) (*models.Product, error) {
	return s.repo.GetByName(name)
}

// Featured lists featured products, capped at limit when limit > 0.
func (s *ProductService) Featured(limit int) ([]models.Product, error) {
	return s.repo.GetFeatured(limit)
}

// Count returns the number of products.
func (s *ProductService) Count() (int64, error) {
	return s.repo.Count()
}

// Update applies a partial update to the product addressed by name. Changed
// unique fields are re-checked, a supplied category name is resolved, and a
// supplied image replaces the stored asset; everything else keeps its value.
func (s *ProductService) Update(name string, in UpdateProductInput) (*models.Product, error) {
	product, err := s.repo.GetByName(name)
	if err != nil {
		return nil, err
	}

	if in.Name != nil && *in.Name != product.Name {
		if err := s.checkUnique("name", *in.Name, product.ID); err != nil {
			return nil, err
		}
	}
	if in.Description != nil && *in.Description != product.Description {
		if err := s.checkUnique("description", *in.Description, product.ID); err != nil {
			return nil, err
		}
	}

	if in.Category != nil {
		category, err := s.categoryRepo.GetByName(*in.Category)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		product.CategoryID = category.ID
	}

	var uploaded string
	if in.Image != "" {
		s.destroyAsset(product.CloudinaryID)
		asset, err := s.upload(in.Image)
		if err != nil {
			return nil, err
		}
		product.Image = asset.URL
		product.CloudinaryID = asset.PublicID
		uploaded = asset.PublicID
	}

	product.Name = orElse(in.Name, product.Name)
	product.Description = orElse(in.Description, product.Description)
	product.RichDescription = orElse(in.RichDescription, product.RichDescription)
	product.Price = orElse(in.Price, product.Price)
	product.Images = orList(in.Images, product.Images)
	product.Size = orList(in.Size, product.Size)
	product.Color = orList(in.Color, product.Color)
	product.CountInStock = orElse(in.CountInStock, product.CountInStock)
	product.Rating = orElse(in.Rating, product.Rating)
	product.IsFeatured = orElse(in.IsFeatured, product.IsFeatured)

	if err := s.repo.Update(product); err != nil {
		if _, ok := repositories.AsConflict(err); ok {
			s.destroyAsset(uploaded)
		}
		return nil, err
	}
	return product, nil
}

// Delete removes the product and its image asset, if any.
func (s *ProductService) Delete(name string) error {
	product, err := s.repo.GetByName(name)
	if err != nil {
		return err
	}
	s.destroyAsset(product.CloudinaryID)
	return s.repo.Delete(product.ID)
}

func (s *ProductService) checkUnique(field, value, selfID string) error {
	var existing *models.Product
	var err error
	switch field {
	case "name":
		existing, err = s.repo.GetByName(value)
	default:
		existing, err = s.repo.GetByDescription(value)
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

func (s *ProductService) upload(source string) (*media.Asset, error) {
	if s.media == nil {
		return nil, errors.New("media store is not configured")
	}
	return s.media.Upload(source, productUploadPreset)
}

func (s *ProductService) destroyAsset(publicID string) {
	if publicID == "" || s.media == nil {
		return
	}
	if err := s.media.Destroy(publicID); err != nil {
		log.Printf("Failed to destroy product image %s: %v", publicID, err)
	}
}
