package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"catalog/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the product routes. The count and featured routes
// must precede the :name route.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/get/count", h.HandleGetCount)
	productRoutes.Get("/get/featured/:count?", h.HandleGetFeatured)
	productRoutes.Get("/:name", h.HandleGetProduct)
	productRoutes.Post("/", h.HandleAddProduct)
	productRoutes.Put("/:name", h.HandleModifyProduct)
	productRoutes.Delete("/:name", h.HandleDeleteProduct)
}

// HandleAddProduct creates a new product. The referenced category must
// exist; a missing category is a 404, not a validation failure.
func (h *ProductHandler) HandleAddProduct(c *fiber.Ctx) error {
	var in services.CreateProductInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(in); err != nil {
		return badRequest(c, firstError(err))
	}

	product, err := h.service.Create(in)
	if err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			return notFound(c, "Category not found!")
		}
		return serviceError(c, err, "Product not found!")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Product %s registered successfully...", product.Name),
	})
}

// HandleGetProducts lists products newest-first, optionally filtered by a
// comma-separated set of category names. Every name must exist; unknown
// names fail the whole request rather than returning partial results.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	var names []string
	if categories := c.Query("categories"); categories != "" {
		names = strings.Split(categories, ",")
		for _, name := range names {
			if !nameParamRe.MatchString(name) {
				return badRequest(c, "The categories parameter must be a list of alphanumeric character strings between 3 and 50 characters long.")
			}
		}
	}

	products, err := h.service.List(names)
	if err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			return notFound(c, "One or more categories not found!")
		}
		return serviceError(c, err, "Product not found!")
	}
	if len(products) == 0 {
		return notFound(c, "Product not found!")
	}
	return c.JSON(products)
}

// HandleGetProduct retrieves a single product by name.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	name := c.Params("name")
	if msg := nameParamError("name", name); msg != "" {
		return badRequest(c, msg)
	}

	product, err := h.service.Get(name)
	if err != nil {
		return serviceError(c, err, "Product not found!")
	}
	return c.JSON(product)
}

// HandleModifyProduct applies a partial update to a product.
func (h *ProductHandler) HandleModifyProduct(c *fiber.Ctx) error {
	name := c.Params("name")

	var in services.UpdateProductInput
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
		if errors.Is(err, services.ErrCategoryNotFound) {
			return notFound(c, "Category not found!")
		}
		return serviceError(c, err, "Product not found!")
	}
	return c.JSON(fiber.Map{"success": true, "message": "Product updated!"})
}

// HandleDeleteProduct removes a product and its image asset.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	name := c.Params("name")
	if msg := nameParamError("name", name); msg != "" {
		return badRequest(c, msg)
	}

	if err := h.service.Delete(name); err != nil {
		return serviceError(c, err, "Product not found!")
	}
	return c.JSON(fiber.Map{"success": true, "message": "Product deleted!"})
}

// HandleGetCount reports the total number of products. A zero count is a
// valid value, not a missing resource.
func (h *ProductHandler) HandleGetCount(c *fiber.Ctx) error {
	total, err := h.service.Count()
	if err != nil {
		return serviceError(c, err, "Product not found!")
	}
	return c.JSON(fiber.Map{"success": true, "productCount": total})
}

// HandleGetFeatured lists featured products, optionally capped at :count.
func (h *ProductHandler) HandleGetFeatured(c *fiber.Ctx) error {
	limit := 0
	if raw := c.Params("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return badRequest(c, "\"count\" must be a non-negative integer")
		}
		limit = n
	}

	products, err := h.service.Featured(limit)
	if err != nil {
		return serviceError(c, err, "Empty featured!")
	}
	if len(products) == 0 {
		return notFound(c, "Empty featured!")
	}
	return c.JSON(fiber.Map{"success": true, "products": products})
}
