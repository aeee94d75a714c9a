package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sunstate-labs/agentcrm/internal/token"
	"github.com/sunstate-labs/agentcrm/internal/types"
)

// Auth validates the bearer token and stores the caller's user ID in the
// request context under "userId".
func Auth(tokens *token.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			return types.NewAuthError("Authentication required")
		}

		claims, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil || claims.UserID == "" {
			return types.NewAuthError("Invalid token")
		}

		c.Locals("userId", claims.UserID)

		return c.Next()
	}
}
