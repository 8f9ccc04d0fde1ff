package orderControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/roboarena/storefront-api/models"
	"github.com/roboarena/storefront-api/store"
)

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderResponse is the fulfillment view of an order. The total is derived
// from the frozen line items, never stored.
type OrderResponse struct {
	ID          uint               `json:"id"`
	FullName    string             `json:"full_name"`
	PhoneNumber string             `json:"phone_number"`
	Address     string             `json:"address"`
	Location    string             `json:"location"`
	Status      models.OrderStatus `json:"status"`
	TotalPrice  decimal.Decimal    `json:"total_price"`
	Items       []models.OrderItem `json:"items"`
	CreatedAt   time.Time          `json:"created_at"`
}

func toOrderResponse(order *models.Order) OrderResponse {
	return OrderResponse{
		ID:          order.ID,
		FullName:    order.FullName,
		PhoneNumber: order.PhoneNumber,
		Address:     order.Address,
		Location:    order.Location,
		Status:      order.Status,
		TotalPrice:  order.TotalPrice(),
		Items:       order.Items,
		CreatedAt:   order.CreatedAt,
	}
}

func parseOrderID(c *gin.Context) (uint, bool) {
	raw := c.Param("order_id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order_id"})
		return 0, false
	}
	return uint(id), true
}

// GET /orders
func GetAllOrdersHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := s.Orders()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		resp := make([]OrderResponse, 0, len(orders))
		for i := range orders {
			resp = append(resp, toOrderResponse(&orders[i]))
		}
		c.JSON(http.StatusOK, resp)
	}
}

// GET /orders/:order_id
func GetOrderHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseOrderID(c)
		if !ok {
			return
		}
		order, err := s.Order(id)
		if err != nil {
			if errors.Is(err, store.ErrOrderNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}
		c.JSON(http.StatusOK, toOrderResponse(order))
	}
}

// PUT /orders/:order_id/status
func UpdateOrderStatusHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseOrderID(c)
		if !ok {
			return
		}
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		status, err := store.ParseOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order status"})
			return
		}

		order, err := s.UpdateOrderStatus(id, status)
		if err != nil {
			if errors.Is(err, store.ErrOrderNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
			return
		}
		c.JSON(http.StatusOK, toOrderResponse(order))
	}
}
