package store

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/roboarena/storefront-api/models"
)

// Totals is the running cart summary shown on the cart and checkout views.
type Totals struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	Tax        decimal.Decimal `json:"tax"`
	GrandTotal decimal.Decimal `json:"grand_total"`
	ItemCount  int             `json:"item_count"`
}

// CartLine pairs a line item with its product at the catalog's current price.
type CartLine struct {
	ProductID   uint            `json:"product_id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	StockStatus models.StockStatus `json:"stock_status"`
}

// CartSummary aggregates the session's cart using live catalog prices,
// re-fetched on every call. An absent or empty cart is the normal starting
// state and yields zero totals, not an error.
func (s *Store) CartSummary(sessionID string) ([]CartLine, Totals, error) {
	zero := Totals{
		Subtotal:   decimal.Zero,
		Tax:        decimal.Zero,
		GrandTotal: decimal.Zero,
	}

	cart, err := s.CartBySession(sessionID)
	if err != nil {
		if errors.Is(err, ErrCartNotFound) {
			return nil, zero, nil
		}
		return nil, zero, err
	}

	items, err := s.Items(cart)
	if err != nil {
		return nil, zero, err
	}

	lines := make([]CartLine, 0, len(items))
	subtotal := decimal.Zero
	count := 0
	for _, item := range items {
		product, err := s.ProductByID(item.ProductID)
		if err != nil {
			return nil, zero, err
		}
		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		lines = append(lines, CartLine{
			ProductID:   product.ID,
			Name:        product.Name,
			Slug:        product.Slug,
			Price:       product.Price,
			Quantity:    item.Quantity,
			Subtotal:    lineTotal,
			StockStatus: product.StockStatus,
		})
		subtotal = subtotal.Add(lineTotal)
		count += item.Quantity
	}

	tax := subtotal.Mul(s.taxRate).Round(2)
	return lines, Totals{
		Subtotal:   subtotal,
		Tax:        tax,
		GrandTotal: subtotal.Add(tax),
		ItemCount:  count,
	}, nil
}
