package exts

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/kumalab/prompt-manager/pkg/internal/models"
	"github.com/kumalab/prompt-manager/pkg/internal/services"
)

// AuthMiddleware resolves the bearer token into an account when one is
// presented; anonymous requests pass through untouched.
func AuthMiddleware(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if len(header) > 0 && strings.HasPrefix(header, "Bearer ") {
		raw := strings.TrimPrefix(header, "Bearer ")
		if account, err := services.ParseAccessToken(raw); err == nil {
			c.Locals("user", account)
		}
	}

	return c.Next()
}

func EnsureAuthenticated(c *fiber.Ctx) error {
	if _, ok := c.Locals("user").(models.Account); !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
	}
	return nil
}
