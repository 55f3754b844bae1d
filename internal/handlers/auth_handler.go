package handlers

import (
	"errors"
	"log"

	"catalog/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    newValidator(),
	}
}

// RegisterRoutes registers the authentication routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/", h.HandleSignIn)
}

// SignInRequest is the sign-in body: exactly one of username or email plus
// the password.
type SignInRequest struct {
	Username string `json:"username" validate:"required_without=Email,excluded_with=Email,omitempty,min=3,max=50"`
	Email    string `json:"email" validate:"required_without=Username,excluded_with=Username,omitempty,email"`
	Password string `json:"password" validate:"required"`
}

// HandleSignIn authenticates a user and issues an access token.
func (h *AuthHandler) HandleSignIn(c *fiber.Ctx) error {
	var req SignInRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, firstError(err))
	}

	user, token, err := h.authService.Login(req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownIdentity):
			return badRequest(c, "Invalid username or email!")
		case errors.Is(err, services.ErrInvalidPassword):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Invalid password!",
			})
		case errors.Is(err, services.ErrInactiveUser):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Unauthorized!",
			})
		}
		log.Printf("Sign-in failed: %v", err)
		return internalError(c)
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"username":    user.Username,
		"accessToken": token,
		"message":     "Authentication successful...",
	})
}
