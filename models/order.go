package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusNew       OrderStatus = "new"       // Order placed, awaiting fulfillment
	OrderStatusAccepted  OrderStatus = "accepted"  // Picked up by fulfillment
	OrderStatusCompleted OrderStatus = "completed" // Delivered
	OrderStatusCancelled OrderStatus = "cancelled" // Cancelled by fulfillment
)

type Order struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	FullName    string      `gorm:"not null" json:"full_name"`
	PhoneNumber string      `gorm:"not null" json:"phone_number"`
	Address     string      `gorm:"not null" json:"address"`
	Location    string      `json:"location"`
	Status      OrderStatus `gorm:"type:VARCHAR(20);default:'new'" json:"status"`
	Items       []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// TotalPrice is derived from the line items and never stored.
func (o *Order) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// OrderItem snapshots the product price at checkout time. Price and quantity
// are never mutated after creation, no matter what the catalog does later.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderID   uint            `gorm:"index" json:"order_id"`
	ProductID uint            `json:"product_id"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity  int             `gorm:"not null" json:"quantity"`
}
