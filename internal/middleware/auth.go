package middleware

import (
	"strings"

	"taskmanager/internal/models"
	"taskmanager/internal/token"
	"taskmanager/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// UseToken verifies the bearer token and stores the resolved principal and
// claims in the request locals for the handlers to pass on explicitly.
func UseToken(tokens *token.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, "No token provided")
		}
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return unauthorized(c, "Invalid token format")
		}

		claims, err := tokens.Verify(c.UserContext(), parts[1])
		if err != nil {
			logger.SecurityLogger.Warn("Token rejected", zap.Error(err))
			return unauthorized(c, "Invalid token")
		}

		c.Locals("principal", models.Principal{ID: claims.UserID, Email: claims.Email})
		c.Locals("claims", claims)
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": message,
		"success": false,
		"status":  fiber.StatusUnauthorized,
	})
}
