package service

import (
	"errors"
	"fmt"

	"go-suministros-api/internal/model"
	"go-suministros-api/internal/repository"
	"go-suministros-api/pkg/validator"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrSupplierNotFound = errors.New("supplier not found")
	ErrCompanyNameTaken = errors.New("company name already exists")
	ErrTaxIDTaken       = errors.New("tax ID already exists")
)

type SupplierService interface {
	CreateSupplier(actor *model.User, req *SupplierRequest) (*model.Supplier, error)
	UpdateSupplier(actor *model.User, id uint, req *SupplierRequest) (*model.Supplier, error)
	DeleteSupplier(actor *model.User, id uint) error
	GetSupplier(id uint) (*model.Supplier, error)
	GetAllSuppliers() ([]model.Supplier, error)
}

type SupplierRequest struct {
	CompanyName string          `json:"company_name" validate:"required"`
	Phone       string          `json:"phone"`
	Address     string          `json:"address"`
	TaxID       string          `json:"tax_id"`
	BillingInfo string          `json:"billing_info"`
	DiscountPct decimal.Decimal `json:"discount_pct" validate:"dec_percentage"`
	VATPct      decimal.Decimal `json:"vat_pct" validate:"dec_percentage"`
}

type supplierService struct {
	supplierRepo repository.SupplierRepository
}

func NewSupplierService(supplierRepo repository.SupplierRepository) SupplierService {
	return &supplierService{supplierRepo: supplierRepo}
}

func (s *supplierService) CreateSupplier(actor *model.User, req *SupplierRequest) (*model.Supplier, error) {
	if !actor.IsAdmin() {
		return nil, ErrNotAuthorized
	}

	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	existing, _ := s.supplierRepo.FindByCompanyName(req.CompanyName)
	if existing != nil {
		return nil, ErrCompanyNameTaken
	}
	if err := s.checkTaxID(req.TaxID, 0); err != nil {
		return nil, err
	}

	supplier := &model.Supplier{
		CompanyName: req.CompanyName,
		Phone:       req.Phone,
		Address:     req.Address,
		TaxID:       req.TaxID,
		BillingInfo: req.BillingInfo,
		DiscountPct: req.DiscountPct,
		VATPct:      req.VATPct,
	}

	if err := s.supplierRepo.Create(supplier); err != nil {
		return nil, err
	}

	return supplier, nil
}

func (s *supplierService) UpdateSupplier(actor *model.User, id uint, req *SupplierRequest) (*model.Supplier, error) {
	if !actor.IsAdmin() {
		return nil, ErrNotAuthorized
	}

	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	supplier, err := s.supplierRepo.FindByID(id)
	if err != nil {
		return nil, ErrSupplierNotFound
	}

	if req.CompanyName != supplier.CompanyName {
		existing, _ := s.supplierRepo.FindByCompanyName(req.CompanyName)
		if existing != nil && existing.ID != supplier.ID {
			return nil, ErrCompanyNameTaken
		}
	}
	if err := s.checkTaxID(req.TaxID, supplier.ID); err != nil {
		return nil, err
	}

	supplier.CompanyName = req.CompanyName
	supplier.Phone = req.Phone
	supplier.Address = req.Address
	supplier.TaxID = req.TaxID
	supplier.BillingInfo = req.BillingInfo
	supplier.DiscountPct = req.DiscountPct
	supplier.VATPct = req.VATPct

	if err := s.supplierRepo.Update(supplier); err != nil {
		return nil, err
	}

	return supplier, nil
}

// checkTaxID rejects a tax ID already held by a different supplier.
// Empty tax IDs are exempt; the supplier's own value is not a conflict.
func (s *supplierService) checkTaxID(taxID string, selfID uint) error {
	if taxID == "" {
		return nil
	}
	existing, _ := s.supplierRepo.FindByTaxID(taxID)
	if existing != nil && existing.ID != selfID {
		return ErrTaxIDTaken
	}
	return nil
}

// DeleteSupplier removes the supplier; the repository clears the product
// associations first so associated products survive intact.
func (s *supplierService) DeleteSupplier(actor *model.User, id uint) error {
	if !actor.IsAdmin() {
		return ErrNotAuthorized
	}
	if err := s.supplierRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSupplierNotFound
		}
		return err
	}
	return nil
}

func (s *supplierService) GetSupplier(id uint) (*model.Supplier, error) {
	supplier, err := s.supplierRepo.FindByID(id)
	if err != nil {
		return nil, ErrSupplierNotFound
	}
	return supplier, nil
}

func (s *supplierService) GetAllSuppliers() ([]model.Supplier, error) {
	return s.supplierRepo.FindAll()
}
