package middleware

import (
	"strings"

	"catalog/internal/models"
	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
)

type rule struct {
	path   string
	method string
	prefix bool
}

func openRules(api string) []rule {
	return []rule{
		{path: api + "/auth", method: fiber.MethodPost},
		{path: api + "/users", method: fiber.MethodPost},
		{path: api + "/categories", method: fiber.MethodGet, prefix: true},
		{path: api + "/products", method: fiber.MethodGet, prefix: true},
	}
}

// Open reports whether a request may pass the access gate without
// credentials: sign-in, sign-up, and any read on categories or products.
// It is a pure decision over (path, method).
func Open(api, path, method string) bool {
	for _, r := range openRules(api) {
		if r.method != method {
			continue
		}
		if path == r.path || path == r.path+"/" {
			return true
		}
		if r.prefix && strings.HasPrefix(path, r.path+"/") {
			return true
		}
	}
	return false
}

// AccessGate guards every route outside the open set: the bearer token must
// be valid and unexpired, and the claimed role must be ROOT or ADMIN. A
// valid token with a plain USER role is still rejected.
func AccessGate(api string, authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if Open(api, c.Path(), c.Method()) {
			return c.Next()
		}

		header := c.Get(fiber.HeaderAuthorization)
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return unauthenticated(c)
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			return unauthenticated(c)
		}

		role, _ := claims["role"].(string)
		if role != models.RoleRoot && role != models.RoleAdmin {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Unauthorized user!",
			})
		}

		c.Locals("userId", claims["userId"])
		c.Locals("username", claims["username"])
		c.Locals("role", role)
		return c.Next()
	}
}

func unauthenticated(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"message": "Unauthenticated user!",
	})
}
