// Package stock gates and applies inventory changes. All operations run on the
// caller's transaction handle so stock movement commits or rolls back together
// with the order rows that caused it.
package stock

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/machzaul/Tubes-Pemweb/internal/models"
	apperrors "github.com/machzaul/Tubes-Pemweb/pkg/errors"
)

// Reserve checks that qty units of a product are available. It never mutates
// state: the authoritative guard is the conditional update in Decrement, which
// must run in the same transaction as the order writes.
func Reserve(tx *gorm.DB, productID uint, qty int) error {
	var product models.Product
	if err := tx.First(&product, productID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.NewNotFoundError(fmt.Sprintf("Product with id %d not found", productID))
		}
		return apperrors.NewInternalError("Failed to look up product")
	}

	if product.Stock < qty {
		return apperrors.NewInsufficientStockError(
			fmt.Sprintf("Insufficient stock for %s. Available: %d, Requested: %d", product.Title, product.Stock, qty),
			nil,
		)
	}
	return nil
}

// Decrement atomically reduces a product's stock by qty. The conditional
// UPDATE (stock >= qty) is what excludes concurrent over-sell: if another
// transaction took the last units first, zero rows match and the caller must
// roll back.
func Decrement(tx *gorm.DB, productID uint, qty int) error {
	res := tx.Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, qty).
		Update("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return apperrors.NewInternalError("Failed to update stock")
	}
	if res.RowsAffected == 0 {
		// Distinguish a vanished product from a lost race on stock.
		var product models.Product
		if err := tx.First(&product, productID).Error; err != nil {
			return apperrors.NewNotFoundError(fmt.Sprintf("Product with id %d not found", productID))
		}
		return apperrors.NewInsufficientStockError(
			fmt.Sprintf("Stock changed for %s. Please refresh and try again.", product.Title),
			nil,
		)
	}
	return nil
}

// Restore adds qty units back to a product. Used when an order is cancelled or
// deleted; the restore is additive, not an absolute set, so stock changes made
// in the meantime are preserved.
func Restore(tx *gorm.DB, productID uint, qty int) error {
	res := tx.Model(&models.Product{}).
		Where("id = ?", productID).
		Update("stock", gorm.Expr("stock + ?", qty))
	if res.Error != nil {
		return apperrors.NewInternalError("Failed to restore stock")
	}
	if res.RowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("Product with id %d not found", productID))
	}
	return nil
}
