package models

import (
	"time"
)

// Well-known order statuses. The status column is intentionally an open string:
// these are the values the storefront understands, not a closed set.
const (
	StatusPending   = "pending"
	StatusShipped   = "shipped"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// StatusUpdate is one entry in an order's append-only status history.
type StatusUpdate struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	UpdatedBy string    `json:"updatedBy"`
	Note      string    `json:"note"`
}

type StatusHistory []StatusUpdate

type Order struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	OrderID        string        `gorm:"size:50;unique;not null" json:"orderId"` // external, human-readable id
	CustomerInfoID uint          `gorm:"not null" json:"-"`
	CustomerInfo   CustomerInfo  `gorm:"foreignKey:CustomerInfoID" json:"customerInfo"`
	Items          []OrderItem   `gorm:"foreignKey:OrderRef;constraint:OnDelete:CASCADE" json:"items"`
	Subtotal       float64       `gorm:"type:decimal(12,3);not null" json:"subtotal"`
	Shipping       float64       `gorm:"type:decimal(10,2);not null;default:0" json:"shipping"`
	Total          float64       `gorm:"type:decimal(12,3);not null" json:"total"`
	Status         string        `gorm:"size:50;not null;default:'pending'" json:"status"`
	StatusHistory  StatusHistory `gorm:"serializer:json" json:"statusHistory"`
	// StockRestored guards against restoring item stock twice when an order
	// is cancelled and later deleted.
	StockRestored bool      `gorm:"default:false" json:"-"`
	OrderDate     time.Time `json:"orderDate"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderRef  uint    `gorm:"column:order_id;not null" json:"-"`
	ProductID uint    `gorm:"not null" json:"productId"`
	Product   Product `gorm:"foreignKey:ProductID" json:"product"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	Price     float64 `gorm:"type:decimal(10,2);not null" json:"price"` // snapshot of product price at order time
}
