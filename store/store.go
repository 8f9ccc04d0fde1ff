package store

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Store owns all cart and order state. Handlers get one injected rather than
// reaching for a global DB handle.
type Store struct {
	db      *gorm.DB
	taxRate decimal.Decimal
}

// New wraps a GORM connection. taxRate is the fraction applied on top of the
// cart subtotal (0 disables tax entirely).
func New(db *gorm.DB, taxRate decimal.Decimal) *Store {
	return &Store{db: db, taxRate: taxRate}
}
