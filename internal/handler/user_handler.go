package handler

import (
	"go-suministros-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetUsers lists all accounts (admin only)
// GET /api/v1/users
func (h *UserHandler) GetUsers(c *fiber.Ctx) error {
	users, err := h.userService.GetAllUsers(actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(users)
}

// GetUser fetches one account (admin only)
// GET /api/v1/users/:id
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	user, err := h.userService.GetUserByID(actor(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(user)
}

// UpdateUser renames an account or changes its role (admin only)
// PUT /api/v1/users/:id
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	var req service.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	user, err := h.userService.UpdateUser(actor(c), id, &req)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "User updated", "data": user})
}
