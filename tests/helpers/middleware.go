package helpers

import (
	"github.com/cardkeep/cardkeep-api/internal/middleware"
	"github.com/cardkeep/cardkeep-api/internal/types"
	"github.com/gofiber/fiber/v2"
)

// AuthAs returns a middleware that injects an authenticated identity,
// standing in for the session middleware in handler tests
func AuthAs(userID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(middleware.UserLocalKey, &types.AuthUser{
			ID:    userID,
			Email: userID + "@example.com",
		})
		return c.Next()
	}
}
