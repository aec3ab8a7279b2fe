package stock

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/machzaul/Tubes-Pemweb/internal/models"
	apperrors "github.com/machzaul/Tubes-Pemweb/pkg/errors"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Product{}))
	return db
}

func createProduct(t *testing.T, db *gorm.DB, title string, price float64, stockLevel int) models.Product {
	t.Helper()
	p := models.Product{Title: title, Price: price, Stock: stockLevel}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func TestReserve(t *testing.T) {
	db := setupDB(t)
	p := createProduct(t, db, "Keyboard", 49.99, 5)

	assert.NoError(t, Reserve(db, p.ID, 5))

	err := Reserve(db, p.ID, 6)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrInsufficientStock))
	assert.Contains(t, err.Error(), "Keyboard")
	assert.Contains(t, err.Error(), "Available: 5")

	err = Reserve(db, 999, 1)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))

	// Reserve never mutates stock.
	var got models.Product
	require.NoError(t, db.First(&got, p.ID).Error)
	assert.Equal(t, 5, got.Stock)
}

func TestDecrement(t *testing.T) {
	db := setupDB(t)
	p := createProduct(t, db, "Mouse", 19.99, 3)

	require.NoError(t, Decrement(db, p.ID, 2))

	var got models.Product
	require.NoError(t, db.First(&got, p.ID).Error)
	assert.Equal(t, 1, got.Stock)

	// Taking more than what is left matches zero rows and fails.
	err := Decrement(db, p.ID, 2)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrInsufficientStock))

	require.NoError(t, db.First(&got, p.ID).Error)
	assert.Equal(t, 1, got.Stock)

	err = Decrement(db, 999, 1)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestDecrementNeverGoesNegative(t *testing.T) {
	db := setupDB(t)
	p := createProduct(t, db, "Cable", 4.99, 1)

	require.NoError(t, Decrement(db, p.ID, 1))
	require.Error(t, Decrement(db, p.ID, 1))

	var got models.Product
	require.NoError(t, db.First(&got, p.ID).Error)
	assert.Equal(t, 0, got.Stock)
}

func TestRestore(t *testing.T) {
	db := setupDB(t)
	p := createProduct(t, db, "Monitor", 299.00, 2)

	require.NoError(t, Restore(db, p.ID, 3))

	var got models.Product
	require.NoError(t, db.First(&got, p.ID).Error)
	assert.Equal(t, 5, got.Stock)

	// Restore is additive on top of whatever the current level is.
	require.NoError(t, db.Model(&got).Update("stock", 10).Error)
	require.NoError(t, Restore(db, p.ID, 2))
	require.NoError(t, db.First(&got, p.ID).Error)
	assert.Equal(t, 12, got.Stock)

	err := Restore(db, 999, 1)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}
