package repositories

import "catalog/internal/models"

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	Create(category *models.Category) error
	GetAll() ([]models.Category, error)
	GetByName(name string) (*models.Category, error)
	// GetByNames returns the categories whose names are in the given set.
	// Callers must compare lengths to detect unknown names.
	GetByNames(names []string) ([]models.Category, error)
	Update(category *models.Category) error
	Delete(id string) error
}
