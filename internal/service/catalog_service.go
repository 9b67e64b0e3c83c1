package service

import (
	"errors"
	"fmt"

	"go-suministros-api/internal/model"
	"go-suministros-api/internal/repository"
	"go-suministros-api/internal/ws"
	"go-suministros-api/pkg/validator"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrReferenceTaken = errors.New("reference code already exists")

type CatalogService interface {
	CreateProduct(actor *model.User, req *ProductRequest) (*model.Product, error)
	UpdateProduct(actor *model.User, id uint, req *ProductRequest) (*model.Product, error)
	DeleteProduct(actor *model.User, id uint) error
	GetProduct(id uint) (*model.Product, error)
	GetAllProducts() ([]model.Product, error)
	SearchProducts(query string) ([]model.Product, error)
	StockAlerts() ([]model.Product, error)
	InventoryStatistics() (*InventoryStatistics, error)
}

type ProductRequest struct {
	Name        string          `json:"name" validate:"required"`
	Reference   string          `json:"reference"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" validate:"dec_positive"`
	Location    string          `json:"location"`
	Stock       int             `json:"stock" validate:"gte=0"`
	TargetStock int             `json:"target_stock" validate:"gt=0"`
	SupplierIDs []uint          `json:"supplier_ids"`
}

// InventoryStatistics feeds the dashboard chart: three parallel slices,
// one entry per product.
type InventoryStatistics struct {
	Names        []string `json:"names"`
	CurrentStock []int    `json:"current_stock"`
	TargetStock  []int    `json:"target_stock"`
}

type catalogService struct {
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	wsHub        *ws.Hub
}

func NewCatalogService(pRepo repository.ProductRepository, sRepo repository.SupplierRepository, hub *ws.Hub) CatalogService {
	return &catalogService{
		productRepo:  pRepo,
		supplierRepo: sRepo,
		wsHub:        hub,
	}
}

func (s *catalogService) CreateProduct(actor *model.User, req *ProductRequest) (*model.Product, error) {
	if !actor.IsAdmin() {
		return nil, ErrNotAuthorized
	}

	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	if err := s.checkReference(req.Reference, 0); err != nil {
		return nil, err
	}

	suppliers, err := s.supplierRepo.FindByIDs(req.SupplierIDs)
	if err != nil {
		return nil, err
	}

	product := &model.Product{
		Name:        req.Name,
		Reference:   req.Reference,
		Description: req.Description,
		Price:       req.Price,
		Location:    req.Location,
		Stock:       req.Stock,
		TargetStock: req.TargetStock,
		Suppliers:   suppliers,
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	s.publishChange("product_created", product)
	return product, nil
}

// UpdateProduct overwrites the product fields and replaces the whole
// supplier set (clear-then-add), never a partial merge.
func (s *catalogService) UpdateProduct(actor *model.User, id uint, req *ProductRequest) (*model.Product, error) {
	if !actor.IsAdmin() {
		return nil, ErrNotAuthorized
	}

	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	if err := s.checkReference(req.Reference, product.ID); err != nil {
		return nil, err
	}

	suppliers, err := s.supplierRepo.FindByIDs(req.SupplierIDs)
	if err != nil {
		return nil, err
	}

	product.Name = req.Name
	product.Reference = req.Reference
	product.Description = req.Description
	product.Price = req.Price
	product.Location = req.Location
	product.Stock = req.Stock
	product.TargetStock = req.TargetStock

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	if err := s.productRepo.ReplaceSuppliers(product, suppliers); err != nil {
		return nil, err
	}
	product.Suppliers = suppliers

	s.publishChange("product_updated", product)
	return product, nil
}

func (s *catalogService) DeleteProduct(actor *model.User, id uint) error {
	if !actor.IsAdmin() {
		return ErrNotAuthorized
	}
	if err := s.productRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	s.wsHub.Publish(ws.EventCatalogChanged, map[string]interface{}{
		"action":     "product_deleted",
		"product_id": id,
	})
	return nil
}

func (s *catalogService) GetProduct(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *catalogService) GetAllProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *catalogService) SearchProducts(query string) ([]model.Product, error) {
	if query == "" {
		return s.productRepo.FindAll()
	}
	return s.productRepo.Search(query)
}

// StockAlerts returns every product currently at or below its depletion
// threshold.
func (s *catalogService) StockAlerts() ([]model.Product, error) {
	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, err
	}
	var alerts []model.Product
	for _, p := range products {
		if p.StockAlert() {
			alerts = append(alerts, p)
		}
	}
	return alerts, nil
}

func (s *catalogService) InventoryStatistics() (*InventoryStatistics, error) {
	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, err
	}

	stats := &InventoryStatistics{
		Names:        make([]string, 0, len(products)),
		CurrentStock: make([]int, 0, len(products)),
		TargetStock:  make([]int, 0, len(products)),
	}
	for _, p := range products {
		stats.Names = append(stats.Names, p.Name)
		stats.CurrentStock = append(stats.CurrentStock, p.Stock)
		stats.TargetStock = append(stats.TargetStock, p.TargetStock)
	}
	return stats, nil
}

// checkReference rejects a non-empty reference already used by another
// product. selfID is 0 on create.
func (s *catalogService) checkReference(reference string, selfID uint) error {
	if reference == "" {
		return nil
	}
	existing, _ := s.productRepo.FindByReference(reference)
	if existing != nil && existing.ID != selfID {
		return ErrReferenceTaken
	}
	return nil
}

func (s *catalogService) publishChange(action string, product *model.Product) {
	s.wsHub.Publish(ws.EventCatalogChanged, map[string]interface{}{
		"action":     action,
		"product_id": product.ID,
		"product":    product.Name,
		"stock":      product.Stock,
	})
}
