package handler

import (
	"errors"
	"strconv"
	"strings"

	"go-suministros-api/internal/model"
	"go-suministros-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// actor returns the authenticated user loaded by the auth middleware.
func actor(c *fiber.Ctx) *model.User {
	user, _ := c.Locals("actor").(*model.User)
	return user
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	return uint(id), err
}

// fail maps service errors to an HTTP status with a short message; raw
// internal errors never reach the client.
func fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNotAuthorized):
		return c.Status(403).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrSupplierNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInsufficientStock):
		return c.Status(409).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrReferenceTaken),
		errors.Is(err, service.ErrCompanyNameTaken),
		errors.Is(err, service.ErrTaxIDTaken),
		errors.Is(err, service.ErrSelfDemotion):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}
	if msg := err.Error(); strings.HasPrefix(msg, "validation failed:") {
		return c.Status(400).JSON(fiber.Map{"error": msg})
	}
	return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
}
