package handlers

import (
	"fmt"

	"catalog/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the order routes.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:name", h.HandleGetOrder)
	orderRoutes.Post("/", h.HandleAddOrder)
	orderRoutes.Put("/:name", h.HandleModifyOrder)
	orderRoutes.Delete("/:name", h.HandleDeleteOrder)
}

// HandleAddOrder creates a new order.
func (h *OrderHandler) HandleAddOrder(c *fiber.Ctx) error {
	var in services.CreateOrderInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(in); err != nil {
		return badRequest(c, firstError(err))
	}

	order, err := h.service.Create(in)
	if err != nil {
		return serviceError(c, err, "Order not found!")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Order %s registered successfully...", order.Name),
	})
}

// HandleGetOrders retrieves all orders.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetAll()
	if err != nil {
		return serviceError(c, err, "Order not found!")
	}
	return c.JSON(orders)
}

// HandleGetOrder retrieves a single order by name.
func (h *OrderHandler) HandleGetOrder(c *fiber.Ctx) error {
	name := c.Params("name")
	if msg := nameParamError("name", name); msg != "" {
		return badRequest(c, msg)
	}

	order, err := h.service.Get(name)
	if err != nil {
		return serviceError(c, err, "Order not found!")
	}
	return c.JSON(order)
}

// HandleModifyOrder applies a partial update to an order.
func (h *OrderHandler) HandleModifyOrder(c *fiber.Ctx) error {
	name := c.Params("name")

	var in services.UpdateOrderInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body")
	}

	var msgs []string
	if msg := nameParamError("name", name); msg != "" {
		msgs = append(msgs, msg)
	}
	if err := h.validate.Struct(in); err != nil {
		msgs = append(msgs, firstError(err))
	}
	if len(msgs) > 0 {
		return badRequest(c, msgs[0])
	}

	if _, err := h.service.Update(name, in); err != nil {
		return serviceError(c, err, "Order not found!")
	}
	return c.JSON(fiber.Map{"success": true, "message": "Order updated!"})
}

// HandleDeleteOrder removes an order.
func (h *OrderHandler) HandleDeleteOrder(c *fiber.Ctx) error {
	name := c.Params("name")
	if msg := nameParamError("name", name); msg != "" {
		return badRequest(c, msg)
	}

	if err := h.service.Delete(name); err != nil {
		return serviceError(c, err, "Order not found!")
	}
	return c.JSON(fiber.Map{"success": true, "message": "Order deleted!"})
}
