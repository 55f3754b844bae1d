package services

import (
	"errors"
	"log"

	"catalog/internal/models"
	"catalog/internal/repositories"
)

// EventPublisher publishes order lifecycle events to the message broker.
type EventPublisher interface {
	PublishOrderEvent(event string, payload map[string]interface{}) error
}

// CreateOrderInput is the order creation request body.
type CreateOrderInput struct {
	Name   string  `json:"name" validate:"required,min=3,max=50"`
	Status *string `json:"status" validate:"omitempty,min=3,max=50"`
}

// UpdateOrderInput is the partial-update request body.
type UpdateOrderInput struct {
	Name   *string `json:"name" validate:"omitempty,min=3,max=50"`
	Status *string `json:"status" validate:"omitempty,min=3,max=50"`
}

// OrderService handles business logic for orders.
type OrderService struct {
	repo   repositories.OrderRepository
	events EventPublisher
}

// NewOrderService creates a new OrderService. events may be nil, in which
// case publication is skipped.
func NewOrderService(repo repositories.OrderRepository, events EventPublisher) *OrderService {
	return &OrderService{repo: repo, events: events}
}

// Create inserts a new order after a name uniqueness pre-check and publishes
// an order.created event. Publication failures are logged, not surfaced.
func (s *OrderService) Create(in CreateOrderInput) (*models.Order, error) {
	if err := s.checkName(in.Name, ""); err != nil {
		return nil, err
	}

	order := &models.Order{
		Name:   in.Name,
		Status: orElse(in.Status, "Pending"),
	}
	if err := s.repo.Create(order); err != nil {
		return nil, err
	}

	s.publish("order.created", order)
	return order, nil
}

// GetAll retrieves all orders.
func (s *OrderService) GetAll() ([]models.Order, error) {
	return s.repo.GetAll()
}

// Get retrieves an order by name.
func (s *OrderService) Get(name string) (*models.Order, error) {
	return s.repo.GetByName(name)
}

// Update applies a partial update to the order addressed by name, rejecting
// a new name that collides with a different existing order.
func (s *OrderService) Update(name string, in UpdateOrderInput) (*models.Order, error) {
	order, err := s.repo.GetByName(name)
	if err != nil {
		return nil, err
	}

	if in.Name != nil && *in.Name != order.Name {
		if err := s.checkName(*in.Name, order.ID); err != nil {
			return nil, err
		}
	}

	order.Name = orElse(in.Name, order.Name)
	order.Status = orElse(in.Status, order.Status)

	if err := s.repo.Update(order); err != nil {
		return nil, err
	}

	s.publish("order.updated", order)
	return order, nil
}

// Delete removes an order. Orders carry no image asset, so there is nothing
// to clean up besides the record.
func (s *OrderService) Delete(name string) error {
	order, err := s.repo.GetByName(name)
	if err != nil {
		return err
	}
	return s.repo.Delete(order.ID)
}

func (s *OrderService) checkName(name, selfID string) error {
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

func (s *OrderService) publish(event string, order *models.Order) {
	if s.events == nil {
		return
	}
	err := s.events.PublishOrderEvent(event, map[string]interface{}{
		"orderId": order.ID,
		"name":    order.Name,
		"status":  order.Status,
	})
	if err != nil {
		log.Printf("Warning: failed to publish %s event for order %s: %v", event, order.ID, err)
	}
}
