package handler

import (
	"go-stocktrack/internal/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// getActorID extracts the authenticated user's ID from context
// (set by the auth middleware)
func getActorID(c *fiber.Ctx) uuid.UUID {
	raw, ok := c.Locals("user_id").(string)
	if !ok {
		return uuid.Nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}

// respondError maps the service error taxonomy to HTTP status codes
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusBadGateway
	switch apperror.KindOf(err) {
	case apperror.KindNotFound:
		status = fiber.StatusNotFound
	case apperror.KindValidation:
		status = fiber.StatusBadRequest
	case apperror.KindAuthorization:
		status = fiber.StatusForbidden
	case apperror.KindAuthentication:
		status = fiber.StatusUnauthorized
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
