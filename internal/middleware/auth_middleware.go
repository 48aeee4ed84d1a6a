package middleware

import (
	"strings"

	"go-stocktrack/internal/model"
	"go-stocktrack/internal/policy"
	"go-stocktrack/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth validates the bearer JWT and sets the identity in context.
// Requests without a valid identity fail here with 401 before any store access.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := jwt.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		c.Locals("user_id", claims.UserID.String())
		c.Locals("user_email", claims.Email)
		c.Locals("user_name", claims.Name)
		c.Locals("user_role", claims.Role)

		return c.Next()
	}
}

// RequirePermission consults the role policy before the handler runs.
// A denied action never reaches the entity store.
func RequirePermission(action policy.Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("user_role").(model.Role)
		if !ok {
			return c.Status(403).JSON(fiber.Map{"error": "No role found"})
		}

		if !policy.Allow(role, action) {
			return c.Status(403).JSON(fiber.Map{
				"error": "Forbidden: role '" + string(role) + "' may not perform '" + string(action) + "'",
			})
		}

		return c.Next()
	}
}
