package handlers

import (
	"fmt"

	"catalog/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for user accounts.
type UserHandler struct {
	service  *services.UserService
	validate *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the user routes. The count route must precede the
// :username route so it is not captured as a username.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/", h.HandleGetUsers)
	userRoutes.Get("/get/count", h.HandleGetCount)
	userRoutes.Get("/:username", h.HandleGetUser)
	userRoutes.Post("/", h.HandleAddUser)
	userRoutes.Put("/:username", h.HandleModifyUser)
	userRoutes.Delete("/:username", h.HandleDeleteUser)
}

// HandleAddUser registers a new user (sign-up; open route).
func (h *UserHandler) HandleAddUser(c *fiber.Ctx) error {
	var in services.CreateUserInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(in); err != nil {
		return badRequest(c, firstError(err))
	}

	user, err := h.service.Create(in)
	if err != nil {
		return serviceError(c, err, "User not found!")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("User %s registered successfully...", user.Username),
	})
}

// HandleGetUsers retrieves all users. Password hashes are never serialized.
func (h *UserHandler) HandleGetUsers(c *fiber.Ctx) error {
	users, err := h.service.GetAll()
	if err != nil {
		return serviceError(c, err, "Users not found!")
	}
	return c.JSON(users)
}

// HandleGetUser retrieves a single user by username.
func (h *UserHandler) HandleGetUser(c *fiber.Ctx) error {
	username := c.Params("username")
	if msg := nameParamError("username", username); msg != "" {
		return badRequest(c, msg)
	}

	user, err := h.service.Get(username)
	if err != nil {
		return serviceError(c, err, "User not found!")
	}
	return c.JSON(user)
}

// HandleModifyUser applies a partial update to a user.
func (h *UserHandler) HandleModifyUser(c *fiber.Ctx) error {
	username := c.Params("username")

	var in services.UpdateUserInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body")
	}

	// Params and body are both validated; the first failure is reported.
	var msgs []string
	if msg := nameParamError("username", username); msg != "" {
		msgs = append(msgs, msg)
	}
	if err := h.validate.Struct(in); err != nil {
		msgs = append(msgs, firstError(err))
	}
	if len(msgs) > 0 {
		return badRequest(c, msgs[0])
	}

	if _, err := h.service.Update(username, in); err != nil {
		return serviceError(c, err, "User not found!")
	}
	return c.JSON(fiber.Map{"success": true, "message": "User updated!"})
}

// HandleDeleteUser removes a user and its image asset.
func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	username := c.Params("username")
	if msg := nameParamError("username", username); msg != "" {
		return badRequest(c, msg)
	}

	if err := h.service.Delete(username); err != nil {
		return serviceError(c, err, "User not found!")
	}
	return c.JSON(fiber.Map{"success": true, "message": "User deleted!"})
}

// HandleGetCount reports the total number of users. A zero count is a valid
// value, not a missing resource.
func (h *UserHandler) HandleGetCount(c *fiber.Ctx) error {
	total, err := h.service.Count()
	if err != nil {
		return serviceError(c, err, "Users not found!")
	}
	return c.JSON(fiber.Map{"success": true, "totalUsers": total})
}
