package handlers

import (
	"errors"
	"fmt"

	"github.com/amaumene/gowatcharr/internal/models"
	"github.com/amaumene/gowatcharr/internal/services/tmdb"
	"github.com/gofiber/fiber/v2"
)

// respondError maps the service error taxonomy to HTTP responses
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": err.Error()})
	case errors.Is(err, models.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": err.Error()})
	case errors.Is(err, models.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"detail": err.Error()})
	case errors.Is(err, models.ErrNotImplemented):
		return c.Status(fiber.StatusNotImplemented).JSON(fiber.Map{"detail": err.Error()})
	case errors.Is(err, tmdb.ErrNotConfigured):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"detail": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "internal server error"})
	}
}

// parseID extracts a positive record id from a route parameter
func parseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: invalid %s %q", models.ErrValidation, name, c.Params(name))
	}
	return uint(id), nil
}
