package repositories

import "catalog/internal/models"

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	Create(product *models.Product) error
	// GetAll lists products newest-first, optionally restricted to the given
	// category identifiers.
	GetAll(categoryIDs []string) ([]models.Product, error)
	GetByName(name string) (*models.Product, error)
	GetByDescription(description string) (*models.Product, error)
	GetFeatured(limit int) ([]models.Product, error)
	Update(product *models.Product) error
	Delete(id string) error
	Count() (int64, error)
}
