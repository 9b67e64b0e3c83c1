package service

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"go-suministros-api/internal/model"
	"go-suministros-api/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a uniquely named shared in-memory sqlite database so
// the connection pool sees one store per test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Product{}, &model.Supplier{}, &model.Sale{}))
	return db
}

// fakeNotifier records alert dispatches instead of sending mail.
// Safe for concurrent dispatch.
type fakeNotifier struct {
	mu      sync.Mutex
	alerted []string
	fail    bool
}

func (f *fakeNotifier) SendStockAlert(product *model.Product) error {
	f.mu.Lock()
	f.alerted = append(f.alerted, product.Name)
	f.mu.Unlock()
	if f.fail {
		return errors.New("smtp down")
	}
	return nil
}

func newSaleService(db *gorm.DB, n *fakeNotifier) SaleService {
	return NewSaleService(
		repository.NewProductRepo(db),
		repository.NewSaleRepo(db),
		db,
		n,
		nil, // no hub in tests
		zap.NewNop(),
	)
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price string, stock, target int) *model.Product {
	t.Helper()

	product := &model.Product{
		Name:        name,
		Price:       decimal.RequireFromString(price),
		Stock:       stock,
		TargetStock: target,
	}
	require.NoError(t, repository.NewProductRepo(db).Create(product))
	return product
}

func seedUser(t *testing.T, db *gorm.DB, username, role string) *model.User {
	t.Helper()

	user := &model.User{Username: username, Role: role}
	require.NoError(t, user.SetPassword("secret123"))
	require.NoError(t, repository.NewUserRepo(db).Create(user))
	return user
}
