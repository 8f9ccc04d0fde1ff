package store

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/roboarena/storefront-api/models"
)

// ParseOrderStatus maps a raw status string to a known status value.
func ParseOrderStatus(status string) (models.OrderStatus, error) {
	switch strings.ToLower(status) {
	case string(models.OrderStatusNew):
		return models.OrderStatusNew, nil
	case string(models.OrderStatusAccepted):
		return models.OrderStatusAccepted, nil
	case string(models.OrderStatusCompleted):
		return models.OrderStatusCompleted, nil
	case string(models.OrderStatusCancelled):
		return models.OrderStatusCancelled, nil
	default:
		return "", ErrUnknownStatus
	}
}

// Orders lists all orders newest first with their line items.
func (s *Store) Orders() ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Order fetches a single order with its items.
func (s *Store) Order(id uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus sets the order's status. The value must be a known
// status, but transitions are deliberately permissive: fulfillment may move
// an order between any two states.
func (s *Store) UpdateOrderStatus(id uint, status models.OrderStatus) (*models.Order, error) {
	order, err := s.Order(id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(order).Update("status", status).Error; err != nil {
		return nil, err
	}
	order.Status = status
	return order, nil
}
