package repository

import (
	"go-suministros-api/internal/model"

	"gorm.io/gorm"
)

type SupplierRepository interface {
	Create(supplier *model.Supplier) error
	FindAll() ([]model.Supplier, error)
	FindByID(id uint) (*model.Supplier, error)
	FindByCompanyName(name string) (*model.Supplier, error)
	FindByTaxID(taxID string) (*model.Supplier, error)
	FindByIDs(ids []uint) ([]model.Supplier, error)
	Update(supplier *model.Supplier) error
	Delete(id uint) error
}

type supplierRepo struct {
	db *gorm.DB
}

func NewSupplierRepo(db *gorm.DB) SupplierRepository {
	return &supplierRepo{db}
}

func (r *supplierRepo) Create(supplier *model.Supplier) error {
	return r.db.Create(supplier).Error
}

func (r *supplierRepo) FindAll() ([]model.Supplier, error) {
	var suppliers []model.Supplier
	err := r.db.Order("company_name").Find(&suppliers).Error
	return suppliers, err
}

func (r *supplierRepo) FindByID(id uint) (*model.Supplier, error) {
	var supplier model.Supplier
	err := r.db.Preload("Products").First(&supplier, id).Error
	if err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *supplierRepo) FindByCompanyName(name string) (*model.Supplier, error) {
	var supplier model.Supplier
	err := r.db.First(&supplier, "company_name = ?", name).Error
	if err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *supplierRepo) FindByTaxID(taxID string) (*model.Supplier, error) {
	var supplier model.Supplier
	err := r.db.First(&supplier, "tax_id = ?", taxID).Error
	if err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *supplierRepo) FindByIDs(ids []uint) ([]model.Supplier, error) {
	var suppliers []model.Supplier
	if len(ids) == 0 {
		return suppliers, nil
	}
	err := r.db.Where("id IN ?", ids).Find(&suppliers).Error
	return suppliers, err
}

func (r *supplierRepo) Update(supplier *model.Supplier) error {
	return r.db.Save(supplier).Error
}

// Delete clears the supplier's product associations before removing the
// row, so no dangling association rows survive.
func (r *supplierRepo) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var supplier model.Supplier
		if err := tx.First(&supplier, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&supplier).Association("Products").Clear(); err != nil {
			return err
		}
		return tx.Delete(&supplier).Error
	})
}
