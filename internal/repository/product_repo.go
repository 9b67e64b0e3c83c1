package repository

import (
	"strings"

	"go-suministros-api/internal/model"

	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindByID(id uint) (*model.Product, error)
	FindByReference(reference string) (*model.Product, error)
	Search(query string) ([]model.Product, error)
	Update(product *model.Product) error
	ReplaceSuppliers(product *model.Product, suppliers []model.Supplier) error
	Delete(id uint) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Suppliers").Order("name").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uint) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Suppliers").First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindByReference(reference string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "reference = ?", reference).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Search matches the query case-insensitively as a substring of the name
// OR the reference code.
func (r *productRepo) Search(query string) ([]model.Product, error) {
	term := "%" + strings.ToLower(query) + "%"
	var products []model.Product
	err := r.db.Preload("Suppliers").
		Where("LOWER(name) LIKE ? OR LOWER(reference) LIKE ?", term, term).
		Order("name").
		Find(&products).Error
	return products, err
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

// ReplaceSuppliers swaps the entire supplier set (clear-then-add), not a merge.
func (r *productRepo) ReplaceSuppliers(product *model.Product, suppliers []model.Supplier) error {
	return r.db.Model(product).Association("Suppliers").Replace(suppliers)
}

// Delete removes the product, clearing its association rows first.
func (r *productRepo) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var product model.Product
		if err := tx.First(&product, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&product).Association("Suppliers").Clear(); err != nil {
			return err
		}
		return tx.Delete(&product).Error
	})
}
