package handlers

import (
	"fmt"

	"catalog/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service  *services.CategoryService
	validate *validator.Validate
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the category routes.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router) {
	categoryRoutes := router.Group("/categories")
	categoryRoutes.Get("/", h.HandleGetCategories)
	categoryRoutes.Get("/:name", h.HandleGetCategory)
	categoryRoutes.Post("/", h.HandleAddCategory)
	categoryRoutes.Put("/:name", h.HandleModifyCategory)
	categoryRoutes.Delete("/:name", h.HandleDeleteCategory)
}

// HandleAddCategory creates a new category.
func (h *CategoryHandler) HandleAddCategory(c *fiber.Ctx) error {
	var in services.CreateCategoryInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(in); err != nil {
		return badRequest(c, firstError(err))
	}

	category, err := h.service.Create(in)
	if err != nil {
		return serviceError(c, err, "Category not found!")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Category %s registered successfully...", category.Name),
	})
}

// HandleGetCategories retrieves all categories.
func (h *CategoryHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.service.GetAll()
	if err != nil {
		return serviceError(c, err, "Category not found!")
	}
	return c.JSON(categories)
}

// HandleGetCategory retrieves a single category by name.
func (h *CategoryHandler) HandleGetCategory(c *fiber.Ctx) error {
	name := c.Params("name")
	if msg := nameParamError("name", name); msg != "" {
		return badRequest(c, msg)
	}

	category, err := h.service.Get(name)
	if err != nil {
		return serviceError(c, err, "Category not found!")
	}
	return c.JSON(category)
}

// HandleModifyCategory applies a partial update to a category.
func (h *CategoryHandler) HandleModifyCategory(c *fiber.Ctx) error {
	name := c.Params("name")

	var in services.UpdateCategoryInput
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
		return serviceError(c, err, "Category not found!")
	}
	return c.JSON(fiber.Map{"success": true, "message": "Category updated!"})
}

// HandleDeleteCategory removes a category and its image asset.
func (h *CategoryHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	name := c.Params("name")
	if msg := nameParamError("name", name); msg != "" {
		return badRequest(c, msg)
	}

	if err := h.service.Delete(name); err != nil {
		return serviceError(c, err, "Category not found!")
	}
	return c.JSON(fiber.Map{"success": true, "message": "Category deleted!"})
}
