package repository

import (
	"go-suministros-api/internal/model"

	"gorm.io/gorm"
)

// SaleRepository is append-only: the ledger exposes no update or delete.
type SaleRepository interface {
	Create(tx *gorm.DB, sale *model.Sale) error
	FindAll() ([]model.Sale, error)
	FindByUser(userID uint) ([]model.Sale, error)
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

// Create takes the caller's *gorm.DB so the insert can join an open transaction.
func (r *saleRepo) Create(tx *gorm.DB, sale *model.Sale) error {
	return tx.Create(sale).Error
}

func (r *saleRepo) FindAll() ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Preload("Product").Preload("User").Order("created_at DESC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindByUser(userID uint) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&sales).Error
	return sales, err
}
