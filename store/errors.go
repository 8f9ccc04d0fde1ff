package store

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrCartNotFound    = errors.New("cart not found")
	ErrProductNotFound = errors.New("product not found")
	ErrItemNotFound    = errors.New("cart item not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrUnknownStatus   = errors.New("unknown order status")

	// ErrConflict wraps a lost cart-creation race that could not be resolved
	// by re-reading the winner's row.
	ErrConflict = errors.New("concurrent cart creation conflict")
)

// ValidationError lists the checkout fields that were missing or invalid.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}
