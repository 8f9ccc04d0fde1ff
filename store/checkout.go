package store

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/roboarena/storefront-api/models"
)

// CustomerInfo is the checkout form payload.
type CustomerInfo struct {
	FullName    string `json:"full_name" form:"full_name"`
	PhoneNumber string `json:"phone_number" form:"phone_number"`
	Address     string `json:"address" form:"address"`
	Location    string `json:"location" form:"location"` // optional free text
}

func (info CustomerInfo) validate() error {
	var missing []string
	if strings.TrimSpace(info.FullName) == "" {
		missing = append(missing, "full_name")
	}
	if strings.TrimSpace(info.PhoneNumber) == "" {
		missing = append(missing, "phone_number")
	}
	if strings.TrimSpace(info.Address) == "" {
		missing = append(missing, "address")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// Checkout materializes the session's cart into an order. The whole
// transition runs in one transaction: create the order, snapshot every line
// item at the product's current price, then delete the cart. Any failure
// rolls the lot back, leaving no order and the cart untouched, so a retry is
// safe. Prices are read exactly once, here; later catalog changes never
// touch the order. Stock is deliberately not decremented.
func (s *Store) Checkout(sessionID string, info CustomerInfo) (*models.Order, error) {
	if err := info.validate(); err != nil {
		return nil, err
	}

	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Read the cart on the transaction connection so the snapshot and
		// the cleanup below see the same line items.
		var cart models.Cart
		err := tx.Preload("Items").Where("session_id = ?", sessionID).First(&cart).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEmptyCart
			}
			return err
		}
		if len(cart.Items) == 0 {
			return ErrEmptyCart
		}

		var orderItems []models.OrderItem
		for _, item := range cart.Items {
			var product models.Product
			if err := tx.First(&product, "id = ?", item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrProductNotFound
				}
				return err
			}
			orderItems = append(orderItems, models.OrderItem{
				ProductID: product.ID,
				Price:     product.Price, // frozen from here on
				Quantity:  item.Quantity,
			})
		}

		order = models.Order{
			FullName:    strings.TrimSpace(info.FullName),
			PhoneNumber: strings.TrimSpace(info.PhoneNumber),
			Address:     strings.TrimSpace(info.Address),
			Location:    strings.TrimSpace(info.Location),
			Status:      models.OrderStatusNew,
			Items:       orderItems,
			CreatedAt:   time.Now(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		if err := tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&cart).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}
