package service

import (
	"testing"

	"go-suministros-api/internal/model"
	"go-suministros-api/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCatalogService(db *gorm.DB) CatalogService {
	return NewCatalogService(repository.NewProductRepo(db), repository.NewSupplierRepo(db), nil)
}

func seedSupplier(t *testing.T, db *gorm.DB, name string) *model.Supplier {
	t.Helper()

	supplier := &model.Supplier{
		CompanyName: name,
		DiscountPct: decimal.Zero,
		VATPct:      decimal.NewFromInt(21),
	}
	require.NoError(t, repository.NewSupplierRepo(db).Create(supplier))
	return supplier
}

func productRequest(name, reference string, supplierIDs ...uint) *ProductRequest {
	return &ProductRequest{
		Name:        name,
		Reference:   reference,
		Price:       decimal.RequireFromString("10.00"),
		Stock:       50,
		TargetStock: 100,
		SupplierIDs: supplierIDs,
	}
}

func TestCreateProductRequiresAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(db)

	customer := seedUser(t, db, "carlos", model.RoleCustomer)

	_, err := svc.CreateProduct(customer, productRequest("Teclado", "TEC-01"))
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestCreateProductWithSuppliers(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(db)

	admin := seedUser(t, db, "alice", model.RoleAdmin)
	s1 := seedSupplier(t, db, "Acme SL")
	s2 := seedSupplier(t, db, "Informatica Norte")

	product, err := svc.CreateProduct(admin, productRequest("Teclado", "TEC-01", s1.ID, s2.ID))
	require.NoError(t, err)

	stored, err := svc.GetProduct(product.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Suppliers, 2)
}

func TestCreateProductRejectsInvalidRequest(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(db)

	admin := seedUser(t, db, "alice", model.RoleAdmin)

	// Non-positive price.
	req := productRequest("Teclado", "")
	req.Price = decimal.Zero
	_, err := svc.CreateProduct(admin, req)
	assert.Error(t, err)

	// Zero target stock.
	req = productRequest("Teclado", "")
	req.TargetStock = 0
	_, err = svc.CreateProduct(admin, req)
	assert.Error(t, err)

	// Negative stock.
	req = productRequest("Teclado", "")
	req.Stock = -1
	_, err = svc.CreateProduct(admin, req)
	assert.Error(t, err)
}

func TestCreateProductDuplicateReference(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(db)

	admin := seedUser(t, db, "alice", model.RoleAdmin)

	_, err := svc.CreateProduct(admin, productRequest("Teclado", "TEC-01"))
	require.NoError(t, err)

	_, err = svc.CreateProduct(admin, productRequest("Otro Teclado", "TEC-01"))
	assert.ErrorIs(t, err, ErrReferenceTaken)
}

func TestUpdateProductReplacesSupplierSet(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(db)

	admin := seedUser(t, db, "alice", model.RoleAdmin)
	s1 := seedSupplier(t, db, "Acme SL")
	s2 := seedSupplier(t, db, "Informatica Norte")
	s3 := seedSupplier(t, db, "Suministros Sur")

	product, err := svc.CreateProduct(admin, productRequest("Teclado", "TEC-01", s1.ID, s2.ID))
	require.NoError(t, err)

	// The new set wholly replaces the old one: s3 only, no merge with s1/s2.
	_, err = svc.UpdateProduct(admin, product.ID, productRequest("Teclado", "TEC-01", s3.ID))
	require.NoError(t, err)

	stored, err := svc.GetProduct(product.ID)
	require.NoError(t, err)
	require.Len(t, stored.Suppliers, 1)
	assert.Equal(t, s3.ID, stored.Suppliers[0].ID)
}

func TestSearchProductsCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(db)

	admin := seedUser(t, db, "alice", model.RoleAdmin)
	_, err := svc.CreateProduct(admin, productRequest("Teclado Mecanico", "TEC-01"))
	require.NoError(t, err)
	_, err = svc.CreateProduct(admin, productRequest("Monitor", "MON-20"))
	require.NoError(t, err)

	// Substring of the name, different case.
	results, err := svc.SearchProducts("TECLADO")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Teclado Mecanico", results[0].Name)

	// Substring of the reference code.
	results, err = svc.SearchProducts("mon-")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Monitor", results[0].Name)

	// Empty query lists everything.
	results, err = svc.SearchProducts("")
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestDeleteProductClearsAssociations(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(db)

	admin := seedUser(t, db, "alice", model.RoleAdmin)
	s1 := seedSupplier(t, db, "Acme SL")

	product, err := svc.CreateProduct(admin, productRequest("Teclado", "TEC-01", s1.ID))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(admin, product.ID))

	_, err = svc.GetProduct(product.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)

	var joinRows int64
	require.NoError(t, db.Table("product_suppliers").Count(&joinRows).Error)
	assert.Zero(t, joinRows)
}

func TestStockAlertsListsOnlyDepletedProducts(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(db)

	seedProduct(t, db, "Casi agotado", "5.00", 8, 100)
	seedProduct(t, db, "Bien surtido", "5.00", 90, 100)

	alerts, err := svc.StockAlerts()
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "Casi agotado", alerts[0].Name)
}

func TestInventoryStatistics(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(db)

	seedProduct(t, db, "Monitor", "120.00", 40, 60)
	seedProduct(t, db, "Teclado", "30.00", 15, 50)

	stats, err := svc.InventoryStatistics()
	require.NoError(t, err)

	// FindAll orders by name.
	assert.Equal(t, []string{"Monitor", "Teclado"}, stats.Names)
	assert.Equal(t, []int{40, 15}, stats.CurrentStock)
	assert.Equal(t, []int{60, 50}, stats.TargetStock)
}
