// Package service holds the order workflow engine: the multi-step,
// transactional create/cancel/delete logic that keeps stock, orders and line
// items consistent with each other.
package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/machzaul/Tubes-Pemweb/internal/models"
	"github.com/machzaul/Tubes-Pemweb/internal/stock"
	apperrors "github.com/machzaul/Tubes-Pemweb/pkg/errors"
)

type OrderService struct {
	DB *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{DB: db}
}

type CustomerInput struct {
	FullName    string
	Email       string
	Address     string
	PhoneNumber string
}

type OrderItemInput struct {
	ProductID uint
	Quantity  int
}

type CreateOrderInput struct {
	OrderID      string // optional; generated when empty
	CustomerInfo CustomerInput
	Items        []OrderItemInput
	Subtotal     float64
	Shipping     float64
	Total        float64
}

// GenerateOrderID produces the external order identifier: ORD- followed by
// 8 uppercase hex characters.
func GenerateOrderID() string {
	return "ORD-" + strings.ToUpper(uuid.New().String()[:8])
}

// Create runs the full order-creation workflow in one transaction:
// validate customer fields, validate stock for every item (collecting the
// complete error report), persist customer and order, then per item snapshot
// the current price and decrement stock. Any failure rolls back every write.
func (s *OrderService) Create(input CreateOrderInput) (*models.Order, error) {
	cust := input.CustomerInfo
	if cust.FullName == "" || cust.Email == "" || cust.Address == "" || cust.PhoneNumber == "" {
		return nil, apperrors.NewValidationError("All customer information fields are required")
	}
	if len(input.Items) == 0 {
		return nil, apperrors.NewValidationError("Order must contain at least one item")
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, apperrors.NewValidationError(fmt.Sprintf("Invalid quantity for product %d", item.ProductID))
		}
	}

	var created models.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		// Validate every item before writing anything, so the caller gets
		// the complete report instead of the first failure.
		var stockErrors []string
		for _, item := range input.Items {
			if err := stock.Reserve(tx, item.ProductID, item.Quantity); err != nil {
				stockErrors = append(stockErrors, err.Error())
			}
		}
		if len(stockErrors) > 0 {
			return apperrors.NewInsufficientStockError("Stock validation failed", stockErrors)
		}

		subtotal, err := s.reconcileTotals(tx, input)
		if err != nil {
			return err
		}
		shipping := decimal.NewFromFloat(input.Shipping)
		total := decimal.NewFromFloat(input.Total)
		if total.IsZero() {
			total = subtotal.Add(shipping)
		}

		customer := models.CustomerInfo{
			FullName:    cust.FullName,
			Email:       cust.Email,
			Address:     cust.Address,
			PhoneNumber: cust.PhoneNumber,
		}
		if err := tx.Create(&customer).Error; err != nil {
			return apperrors.NewInternalError("Failed to create customer record")
		}

		orderID := input.OrderID
		if orderID == "" {
			orderID = GenerateOrderID()
		}

		order := models.Order{
			OrderID:        orderID,
			CustomerInfoID: customer.ID,
			Subtotal:       subtotal.InexactFloat64(),
			Shipping:       input.Shipping,
			Total:          total.InexactFloat64(),
			Status:         models.StatusPending,
			StatusHistory:  models.StatusHistory{},
			OrderDate:      time.Now(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return apperrors.NewInternalError("Failed to create order record")
		}

		for _, item := range input.Items {
			var product models.Product
			if err := tx.First(&product, item.ProductID).Error; err != nil {
				return apperrors.NewNotFoundError(fmt.Sprintf("Product with id %d not found", item.ProductID))
			}

			orderItem := models.OrderItem{
				OrderRef:  order.ID,
				ProductID: product.ID,
				Quantity:  item.Quantity,
				Price:     product.Price, // snapshot, decoupled from later price changes
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return apperrors.NewInternalError("Failed to create order item")
			}

			// The conditional decrement is the real race guard; a concurrent
			// order that got here first makes this fail and the whole
			// transaction unwinds.
			if err := stock.Decrement(tx, product.ID, item.Quantity); err != nil {
				return err
			}
		}

		return tx.Preload("CustomerInfo").Preload("Items").Preload("Items.Product").
			First(&created, order.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// reconcileTotals verifies caller-supplied subtotal/total against the current
// product prices. Zero values are treated as "compute for me" since the
// storefront omits them on some paths; non-zero values must match.
func (s *OrderService) reconcileTotals(tx *gorm.DB, input CreateOrderInput) (decimal.Decimal, error) {
	computed := decimal.Zero
	for _, item := range input.Items {
		var product models.Product
		if err := tx.First(&product, item.ProductID).Error; err != nil {
			return decimal.Zero, apperrors.NewNotFoundError(fmt.Sprintf("Product with id %d not found", item.ProductID))
		}
		line := decimal.NewFromFloat(product.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		computed = computed.Add(line)
	}

	given := decimal.NewFromFloat(input.Subtotal)
	if !given.IsZero() && !given.Equal(computed) {
		return decimal.Zero, apperrors.NewValidationError("Order subtotal does not match item prices")
	}

	if total := decimal.NewFromFloat(input.Total); !total.IsZero() {
		expected := computed.Add(decimal.NewFromFloat(input.Shipping))
		if !total.Equal(expected) {
			return decimal.Zero, apperrors.NewValidationError("Order total does not match subtotal plus shipping")
		}
	}
	return computed, nil
}

// UpdateStatus appends one entry to the order's status history and sets the
// new status. Transitioning into cancelled also restores item stock, once per
// order lifetime.
func (s *OrderService) UpdateStatus(id uint, newStatus, note, updatedBy string) (*models.Order, error) {
	if newStatus == "" {
		return nil, apperrors.NewValidationError("Status is required")
	}
	if updatedBy == "" {
		updatedBy = "admin"
	}

	var updated models.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Preload("Items").First(&order, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.NewNotFoundError("Order not found")
			}
			return apperrors.NewInternalError("Failed to fetch order")
		}

		order.StatusHistory = append(order.StatusHistory, models.StatusUpdate{
			Status:    newStatus,
			Timestamp: time.Now(),
			UpdatedBy: updatedBy,
			Note:      note,
		})
		order.Status = newStatus

		if newStatus == models.StatusCancelled && !order.StockRestored {
			if err := s.restoreItems(tx, order.Items); err != nil {
				return err
			}
			order.StockRestored = true
		}

		// Column-scoped update so the preloaded items are not re-saved.
		changes := models.Order{
			Status:        order.Status,
			StatusHistory: order.StatusHistory,
			StockRestored: order.StockRestored,
		}
		if err := tx.Model(&order).Select("Status", "StatusHistory", "StockRestored").
			Updates(changes).Error; err != nil {
			return apperrors.NewInternalError("Failed to update order status")
		}

		return tx.Preload("CustomerInfo").Preload("Items").Preload("Items.Product").
			First(&updated, order.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes an order and its items, restoring stock for each item unless
// cancellation already did. Restore and delete share one transaction.
func (s *OrderService) Delete(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Preload("Items").First(&order, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.NewNotFoundError("Order not found")
			}
			return apperrors.NewInternalError("Failed to fetch order")
		}

		if !order.StockRestored {
			if err := s.restoreItems(tx, order.Items); err != nil {
				return err
			}
		}

		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return apperrors.NewInternalError("Failed to delete order items")
		}
		if err := tx.Delete(&order).Error; err != nil {
			return apperrors.NewInternalError("Failed to delete order")
		}
		return nil
	})
}

// restoreItems puts each line item's quantity back on its product. Items whose
// product has since been deleted are skipped.
func (s *OrderService) restoreItems(tx *gorm.DB, items []models.OrderItem) error {
	for _, item := range items {
		err := stock.Restore(tx, item.ProductID, item.Quantity)
		if err != nil {
			if apperrors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return err
		}
	}
	return nil
}

func (s *OrderService) Get(id uint) (*models.Order, error) {
	var order models.Order
	err := s.DB.Preload("CustomerInfo").Preload("Items").Preload("Items.Product").
		First(&order, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFoundError("Order not found")
		}
		return nil, apperrors.NewInternalError("Failed to fetch order")
	}
	return &order, nil
}

// GetByOrderID looks an order up by its external identifier.
func (s *OrderService) GetByOrderID(orderID string) (*models.Order, error) {
	var order models.Order
	err := s.DB.Preload("CustomerInfo").Preload("Items").Preload("Items.Product").
		Where("order_id = ?", orderID).First(&order).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFoundError("Order not found")
		}
		return nil, apperrors.NewInternalError("Failed to fetch order")
	}
	return &order, nil
}

func (s *OrderService) List() ([]models.Order, error) {
	var orders []models.Order
	err := s.DB.Preload("CustomerInfo").Preload("Items").Preload("Items.Product").
		Order("order_date desc").Find(&orders).Error
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to fetch orders")
	}
	return orders, nil
}
