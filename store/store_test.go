package store

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/roboarena/storefront-api/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// File-backed SQLite: shared-cache in-memory DBs fail immediately under
	// concurrent writers, a file with a busy timeout just waits.
	dsn := "file:" + filepath.Join(t.TempDir(), "store.db") + "?_busy_timeout=10000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(newTestDB(t), decimal.Zero)
}

func seedProduct(t *testing.T, s *Store, slug, price string) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:        slug,
		Slug:        slug,
		SKU:         "SKU-" + slug,
		Price:       decimal.RequireFromString(price),
		StockStatus: models.StockStatusInStock,
	}
	require.NoError(t, s.db.Create(product).Error)
	return product
}

func countRows(t *testing.T, s *Store, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, s.db.Model(model).Count(&n).Error)
	return n
}
