package handler

import (
	"go-suministros-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SaleHandler struct {
	saleService service.SaleService
}

func NewSaleHandler(saleService service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// PurchaseRequest represents the purchase request body
type PurchaseRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// Purchase records a sale for the authenticated user
// POST /api/v1/sales
func (h *SaleHandler) Purchase(c *fiber.Ctx) error {
	var req PurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if req.Quantity < 1 {
		return c.Status(400).JSON(fiber.Map{"error": "Quantity must be at least 1"})
	}

	sale, err := h.saleService.ProcessSale(actor(c).ID, req.ProductID, req.Quantity)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Purchase completed successfully", "data": sale})
}

// GetMySales returns the authenticated user's purchase history
// GET /api/v1/sales/mine
func (h *SaleHandler) GetMySales(c *fiber.Ctx) error {
	sales, err := h.saleService.SalesByUser(actor(c).ID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(sales)
}

// GetSales returns every sale in the ledger (admin only)
// GET /api/v1/sales
func (h *SaleHandler) GetSales(c *fiber.Ctx) error {
	sales, err := h.saleService.AllSales(actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(sales)
}
