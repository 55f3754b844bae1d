package repositories

import (
	"errors"
	"fmt"

	"catalog/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{db: db}
}

// Create inserts a new product, translating a unique-index violation into a
// ConflictError. Name is checked before description, matching the order of
// the advisory pre-checks.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return r.conflictField(product)
		}
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// GetAll lists products newest-first. A non-empty categoryIDs set restricts
// the result to those categories.
func (r *GORMProductRepository) GetAll(categoryIDs []string) ([]models.Product, error) {
	var products []models.Product
	q := r.db.Preload("Category").Order("created_at DESC")
	if len(categoryIDs) > 0 {
		q = q.Where("category_id IN ?", categoryIDs)
	}
	if err := q.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByName retrieves a product by its name.
func (r *GORMProductRepository) GetByName(name string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product by name %s: %w", name, err)
	}
	return &product, nil
}

// GetByDescription retrieves a product by its description.
func (r *GORMProductRepository) GetByDescription(description string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "description = ?", description).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product by description: %w", err)
	}
	return &product, nil
}

// GetFeatured lists featured products, capped at limit when limit > 0.
func (r *GORMProductRepository) GetFeatured(limit int) ([]models.Product, error) {
	var products []models.Product
	q := r.db.Where("is_featured = ?", true)
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get featured products: %w", err)
	}
	return products, nil
}

// Update persists the full product record.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Save(product)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return r.conflictField(product)
		}
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a product by ID.
func (r *GORMProductRepository) Delete(id string) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of products.
func (r *GORMProductRepository) Count() (int64, error) {
	var n int64
	if err := r.db.Model(&models.Product{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return n, nil
}

func (r *GORMProductRepository) conflictField(product *models.Product) *ConflictError {
	var n int64
	r.db.Model(&models.Product{}).Where("name = ? AND id <> ?", product.Name, product.ID).Count(&n)
	if n > 0 {
		return &ConflictError{Field: "name"}
	}
	return &ConflictError{Field: "description"}
}
