package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type StockStatus string

const (
	StockStatusInStock      StockStatus = "in_stock"
	StockStatusOutOfStock   StockStatus = "out_of_stock"
	StockStatusPreOrder     StockStatus = "pre_order"
	StockStatusDiscontinued StockStatus = "discontinued"
)

type Category struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Slug        string `gorm:"uniqueIndex;not null" json:"slug"`
	Icon        string `json:"icon"` // Feather icon name, e.g. "cpu"
	Description string `json:"description"`
}

type Product struct {
	ID               uint                `gorm:"primaryKey;autoIncrement" json:"id"`
	Name             string              `gorm:"not null" json:"name"`
	Slug             string              `gorm:"uniqueIndex;not null" json:"slug"`
	SKU              string              `gorm:"uniqueIndex;not null" json:"sku"`
	CategoryID       uint                `gorm:"index" json:"category_id"`
	Category         Category            `gorm:"foreignKey:CategoryID" json:"category"`
	Price            decimal.Decimal     `gorm:"type:decimal(10,2);not null" json:"price"`
	OriginalPrice    decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"original_price"`
	ShortDescription string              `json:"short_description"`
	IsFeatured       bool                `gorm:"default:false" json:"is_featured"`
	IsNew            bool                `gorm:"default:false" json:"is_new"`
	IsBestseller     bool                `gorm:"default:false" json:"is_bestseller"`
	// Informational only: checkout never mutates stock.
	StockStatus StockStatus    `gorm:"type:VARCHAR(20);default:'in_stock'" json:"stock_status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// HasDiscount reports whether the product is currently marked down.
func (p *Product) HasDiscount() bool {
	return p.OriginalPrice.Valid && p.OriginalPrice.Decimal.GreaterThan(p.Price)
}
