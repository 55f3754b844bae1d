package repositories

import "catalog/internal/models"

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	Create(order *models.Order) error
	GetAll() ([]models.Order, error)
	GetByName(name string) (*models.Order, error)
	Update(order *models.Order) error
	Delete(id string) error
}
