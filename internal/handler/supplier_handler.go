package handler

import (
	"go-suministros-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SupplierHandler struct {
	supplierService service.SupplierService
}

func NewSupplierHandler(supplierService service.SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierService: supplierService}
}

// GET /api/v1/suppliers
func (h *SupplierHandler) GetSuppliers(c *fiber.Ctx) error {
	suppliers, err := h.supplierService.GetAllSuppliers()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(suppliers)
}

// GET /api/v1/suppliers/:id
func (h *SupplierHandler) GetSupplier(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid supplier ID"})
	}

	supplier, err := h.supplierService.GetSupplier(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(supplier)
}

// POST /api/v1/suppliers (admin only)
func (h *SupplierHandler) CreateSupplier(c *fiber.Ctx) error {
	var req service.SupplierRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	supplier, err := h.supplierService.CreateSupplier(actor(c), &req)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Supplier created", "data": supplier})
}

// PUT /api/v1/suppliers/:id (admin only)
func (h *SupplierHandler) UpdateSupplier(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid supplier ID"})
	}

	var req service.SupplierRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	supplier, err := h.supplierService.UpdateSupplier(actor(c), id, &req)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Supplier updated", "data": supplier})
}

// DELETE /api/v1/suppliers/:id (admin only)
func (h *SupplierHandler) DeleteSupplier(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid supplier ID"})
	}

	if err := h.supplierService.DeleteSupplier(actor(c), id); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Supplier deleted"})
}
