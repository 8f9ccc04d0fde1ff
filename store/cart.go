package store

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/roboarena/storefront-api/models"
)

// ResolveOrCreateCart fetches the session's cart, creating it on first use.
// Two concurrent first-adds can both see "no cart" and race on the insert;
// the unique index on session_id rejects the loser, which then re-reads the
// winner's row instead of failing the request.
func (s *Store) ResolveOrCreateCart(sessionID string) (*models.Cart, error) {
	var cart models.Cart
	err := s.db.Where("session_id = ?", sessionID).First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cart = models.Cart{SessionID: sessionID}
	if err := s.db.Create(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			var existing models.Cart
			if ferr := s.db.Where("session_id = ?", sessionID).First(&existing).Error; ferr != nil {
				return nil, fmt.Errorf("%w: %v", ErrConflict, ferr)
			}
			return &existing, nil
		}
		return nil, err
	}
	return &cart, nil
}

// CartBySession fetches an existing cart without creating one.
func (s *Store) CartBySession(sessionID string) (*models.Cart, error) {
	var cart models.Cart
	if err := s.db.Where("session_id = ?", sessionID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}
	return &cart, nil
}

// AddItem adds quantity of a product to the cart, accumulating onto an
// existing line item if one is present. The increment happens server-side in
// a single upsert so concurrent adds for the same session+product never lose
// updates. No upper bound is enforced on the resulting quantity.
func (s *Store) AddItem(cart *models.Cart, productID uint, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be a positive integer, got %d", quantity)
	}
	if _, err := s.ProductByID(productID); err != nil {
		return nil, err
	}

	item := models.CartItem{
		CartID:    cart.CartID,
		ProductID: productID,
		Quantity:  quantity,
		AddedAt:   time.Now(),
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("cart_items.quantity + excluded.quantity"),
			"added_at": time.Now(),
		}),
	}).Create(&item).Error
	if err != nil {
		return nil, err
	}

	// Re-read: on the conflict path the struct above still holds the caller's
	// delta, not the accumulated quantity.
	var saved models.CartItem
	if err := s.db.Where("cart_id = ? AND product_id = ?", cart.CartID, productID).First(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

// DecrementItem lowers the line item's quantity by one, deleting the row
// outright when the quantity would drop to zero.
func (s *Store) DecrementItem(cart *models.Cart, productID uint) error {
	var item models.CartItem
	err := s.db.Where("cart_id = ? AND product_id = ?", cart.CartID, productID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		return err
	}

	if item.Quantity <= 1 {
		return s.db.Delete(&item).Error
	}
	return s.db.Model(&item).Update("quantity", gorm.Expr("quantity - 1")).Error
}

// RemoveItem deletes the line item regardless of quantity.
func (s *Store) RemoveItem(cart *models.Cart, productID uint) error {
	result := s.db.Where("cart_id = ? AND product_id = ?", cart.CartID, productID).Delete(&models.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

// Items lists the cart's line items. Removal is always a hard delete, so
// every row here is live.
func (s *Store) Items(cart *models.Cart) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := s.db.Where("cart_id = ?", cart.CartID).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CartCount returns the total quantity across the session's cart, zero when
// no cart exists.
func (s *Store) CartCount(sessionID string) (int, error) {
	cart, err := s.CartBySession(sessionID)
	if err != nil {
		if errors.Is(err, ErrCartNotFound) {
			return 0, nil
		}
		return 0, err
	}

	var count int64
	err = s.db.Model(&models.CartItem{}).
		Where("cart_id = ?", cart.CartID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}
