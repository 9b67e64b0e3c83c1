package handler

import (
	"go-suministros-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	catalogService service.CatalogService
	reportService  service.ReportService
}

func NewProductHandler(catalogService service.CatalogService, reportService service.ReportService) *ProductHandler {
	return &ProductHandler{
		catalogService: catalogService,
		reportService:  reportService,
	}
}

// GetProducts lists the catalog; with ?q= it becomes a case-insensitive
// substring search over name or reference.
// GET /api/v1/products
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.catalogService.SearchProducts(c.Query("q"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(products)
}

// GetProduct fetches one product
// GET /api/v1/products/:id
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	product, err := h.catalogService.GetProduct(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(product)
}

// CreateProduct adds a catalog entry (admin only)
// POST /api/v1/products
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req service.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.catalogService.CreateProduct(actor(c), &req)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Product created", "data": product})
}

// UpdateProduct overwrites a catalog entry and its supplier set (admin only)
// PUT /api/v1/products/:id
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var req service.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.catalogService.UpdateProduct(actor(c), id, &req)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Product updated", "data": product})
}

// DeleteProduct removes a catalog entry (admin only)
// DELETE /api/v1/products/:id
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	if err := h.catalogService.DeleteProduct(actor(c), id); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Product deleted"})
}

// GetStockAlerts lists products at or below their depletion threshold
// GET /api/v1/products/alerts
func (h *ProductHandler) GetStockAlerts(c *fiber.Ctx) error {
	alerts, err := h.catalogService.StockAlerts()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(alerts)
}

// GetStatistics returns the dashboard chart data
// GET /api/v1/products/statistics
func (h *ProductHandler) GetStatistics(c *fiber.Ctx) error {
	stats, err := h.catalogService.InventoryStatistics()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(stats)
}

// GetProductReport streams the product list as a PDF download
// GET /api/v1/products/report
func (h *ProductHandler) GetProductReport(c *fiber.Ctx) error {
	pdf, err := h.reportService.ProductListPDF()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to generate PDF"})
	}

	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", "attachment; filename=inventario.pdf")
	return c.Send(pdf)
}
