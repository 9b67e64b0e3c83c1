package service

import (
	"errors"
	"fmt"

	"go-suministros-api/internal/model"
	"go-suministros-api/internal/notifier"
	"go-suministros-api/internal/repository"
	"go-suministros-api/internal/ws"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
)

type SaleService interface {
	ProcessSale(userID, productID uint, quantity int) (*model.Sale, error)
	SalesByUser(userID uint) ([]model.Sale, error)
	AllSales(actor *model.User) ([]model.Sale, error)
}

type saleService struct {
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	db          *gorm.DB
	notifier    notifier.Notifier
	wsHub       *ws.Hub
	log         *zap.Logger
}

func NewSaleService(pRepo repository.ProductRepository, sRepo repository.SaleRepository, db *gorm.DB, n notifier.Notifier, hub *ws.Hub, log *zap.Logger) SaleService {
	return &saleService{
		productRepo: pRepo,
		saleRepo:    sRepo,
		db:          db,
		notifier:    n,
		wsHub:       hub,
		log:         log,
	}
}

// ProcessSale is the only path that decrements stock and appends to the
// sale ledger. Both writes commit as one transaction; the alert dispatch
// runs after commit and can never fail the sale.
func (s *saleService) ProcessSale(userID, productID uint, quantity int) (*model.Sale, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	var sale *model.Sale
	var product model.Product

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		// The stock check and the decrement are one guarded statement, so
		// two concurrent purchases cannot both pass the check and overdraw.
		res := tx.Model(&model.Product{}).
			Where("id = ? AND stock >= ?", productID, quantity).
			Update("stock", gorm.Expr("stock - ?", quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: only %d units left", ErrInsufficientStock, product.Stock)
		}

		sale = &model.Sale{
			UserID:    userID,
			ProductID: productID,
			Quantity:  quantity,
			UnitPrice: product.Price, // price snapshot at sale time
		}
		if err := s.saleRepo.Create(tx, sale); err != nil {
			return err
		}

		// Re-read so the alert evaluation sees the decremented stock.
		return tx.First(&product, productID).Error
	})
	if err != nil {
		return nil, err
	}

	s.wsHub.Publish(ws.EventSaleRecorded, map[string]interface{}{
		"sale_id":    sale.ID,
		"product_id": product.ID,
		"product":    product.Name,
		"quantity":   sale.Quantity,
		"unit_price": sale.UnitPrice,
		"new_stock":  product.Stock,
	})

	if product.StockAlert() {
		s.wsHub.Publish(ws.EventStockAlert, map[string]interface{}{
			"product_id":   product.ID,
			"product":      product.Name,
			"stock":        product.Stock,
			"target_stock": product.TargetStock,
		})
		if err := s.notifier.SendStockAlert(&product); err != nil {
			// A failed alert must never fail the sale.
			s.log.Warn("stock alert dispatch failed",
				zap.Uint("product_id", product.ID),
				zap.String("product", product.Name),
				zap.Error(err))
		}
	}

	return sale, nil
}

func (s *saleService) SalesByUser(userID uint) ([]model.Sale, error) {
	return s.saleRepo.FindByUser(userID)
}

func (s *saleService) AllSales(actor *model.User) ([]model.Sale, error) {
	if !actor.IsAdmin() {
		return nil, ErrNotAuthorized
	}
	return s.saleRepo.FindAll()
}
