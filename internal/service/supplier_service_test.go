package service

import (
	"testing"

	"go-suministros-api/internal/model"
	"go-suministros-api/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func supplierRequest(name string) *SupplierRequest {
	return &SupplierRequest{
		CompanyName: name,
		Phone:       "600123456",
		DiscountPct: decimal.NewFromInt(5),
		VATPct:      decimal.NewFromInt(21),
	}
}

func TestSupplierCRUDRequiresAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := NewSupplierService(repository.NewSupplierRepo(db))

	customer := seedUser(t, db, "carlos", model.RoleCustomer)

	_, err := svc.CreateSupplier(customer, supplierRequest("Acme SL"))
	assert.ErrorIs(t, err, ErrNotAuthorized)

	err = svc.DeleteSupplier(customer, 1)
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestCreateSupplierDuplicateName(t *testing.T) {
	db := newTestDB(t)
	svc := NewSupplierService(repository.NewSupplierRepo(db))

	admin := seedUser(t, db, "alice", model.RoleAdmin)

	_, err := svc.CreateSupplier(admin, supplierRequest("Acme SL"))
	require.NoError(t, err)

	_, err = svc.CreateSupplier(admin, supplierRequest("Acme SL"))
	assert.ErrorIs(t, err, ErrCompanyNameTaken)
}

func TestSupplierTaxIDMustBeUnique(t *testing.T) {
	db := newTestDB(t)
	svc := NewSupplierService(repository.NewSupplierRepo(db))

	admin := seedUser(t, db, "alice", model.RoleAdmin)

	req := supplierRequest("Acme SL")
	req.TaxID = "B12345678"
	acme, err := svc.CreateSupplier(admin, req)
	require.NoError(t, err)

	// A second supplier may not reuse the tax ID.
	dup := supplierRequest("Otra SA")
	dup.TaxID = "B12345678"
	_, err = svc.CreateSupplier(admin, dup)
	assert.ErrorIs(t, err, ErrTaxIDTaken)

	// Nor may an update steal it from its current holder.
	otra, err := svc.CreateSupplier(admin, supplierRequest("Otra SA"))
	require.NoError(t, err)
	upd := supplierRequest("Otra SA")
	upd.TaxID = "B12345678"
	_, err = svc.UpdateSupplier(admin, otra.ID, upd)
	assert.ErrorIs(t, err, ErrTaxIDTaken)

	// Updating the holder with its own tax ID is not a conflict.
	self := supplierRequest("Acme SL")
	self.TaxID = "B12345678"
	self.Phone = "911222333"
	_, err = svc.UpdateSupplier(admin, acme.ID, self)
	assert.NoError(t, err)
}

func TestSupplierEmptyTaxIDNotUnique(t *testing.T) {
	db := newTestDB(t)
	svc := NewSupplierService(repository.NewSupplierRepo(db))

	admin := seedUser(t, db, "alice", model.RoleAdmin)

	_, err := svc.CreateSupplier(admin, supplierRequest("Acme SL"))
	require.NoError(t, err)

	// Suppliers without a tax ID can coexist.
	_, err = svc.CreateSupplier(admin, supplierRequest("Otra SA"))
	assert.NoError(t, err)
}

func TestCreateSupplierRejectsOutOfRangePercentages(t *testing.T) {
	db := newTestDB(t)
	svc := NewSupplierService(repository.NewSupplierRepo(db))

	admin := seedUser(t, db, "alice", model.RoleAdmin)

	req := supplierRequest("Acme SL")
	req.DiscountPct = decimal.NewFromInt(101)
	_, err := svc.CreateSupplier(admin, req)
	assert.Error(t, err)

	req = supplierRequest("Acme SL")
	req.VATPct = decimal.NewFromInt(-1)
	_, err = svc.CreateSupplier(admin, req)
	assert.Error(t, err)

	// Boundaries are inclusive.
	req = supplierRequest("Acme SL")
	req.DiscountPct = decimal.NewFromInt(100)
	req.VATPct = decimal.Zero
	_, err = svc.CreateSupplier(admin, req)
	assert.NoError(t, err)
}

func TestDeleteSupplierLeavesProductsIntact(t *testing.T) {
	db := newTestDB(t)
	supplierSvc := NewSupplierService(repository.NewSupplierRepo(db))
	catalogSvc := newCatalogService(db)

	admin := seedUser(t, db, "alice", model.RoleAdmin)
	supplier, err := supplierSvc.CreateSupplier(admin, supplierRequest("Acme SL"))
	require.NoError(t, err)

	p1, err := catalogSvc.CreateProduct(admin, productRequest("Teclado", "TEC-01", supplier.ID))
	require.NoError(t, err)
	p2, err := catalogSvc.CreateProduct(admin, productRequest("Monitor", "MON-20", supplier.ID))
	require.NoError(t, err)

	require.NoError(t, supplierSvc.DeleteSupplier(admin, supplier.ID))

	// Both products survive, but without the supplier.
	for _, id := range []uint{p1.ID, p2.ID} {
		stored, err := catalogSvc.GetProduct(id)
		require.NoError(t, err)
		assert.Empty(t, stored.Suppliers)
	}
}

func TestDeleteSupplierNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewSupplierService(repository.NewSupplierRepo(db))

	admin := seedUser(t, db, "alice", model.RoleAdmin)

	err := svc.DeleteSupplier(admin, 9999)
	assert.ErrorIs(t, err, ErrSupplierNotFound)
}
