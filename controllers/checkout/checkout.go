package checkoutControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	orderControllers "github.com/roboarena/storefront-api/controllers/order"
	"github.com/roboarena/storefront-api/middleware"
	"github.com/roboarena/storefront-api/store"
)

func isAJAX(c *gin.Context) bool {
	return c.GetHeader("X-Requested-With") == "XMLHttpRequest"
}

// GET /checkout
//
// Returns the order summary for the checkout form. An empty cart means there
// is nothing to check out, so the caller is sent back to browsing.
func ShowCheckout(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := middleware.SessionID(c)
		lines, totals, err := s.CartSummary(sessionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		if len(lines) == 0 {
			if isAJAX(c) {
				c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Your cart is empty"})
			} else {
				c.Redirect(http.StatusSeeOther, "/shop")
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"items":       lines,
			"subtotal":    totals.Subtotal,
			"tax":         totals.Tax,
			"grand_total": totals.GrandTotal,
			"item_count":  totals.ItemCount,
		})
	}
}

// POST /checkout
func SubmitCheckout(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var info store.CustomerInfo
		if err := c.ShouldBind(&info); err != nil {
			middleware.RecordCheckout(false)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		sessionID := middleware.SessionID(c)
		order, err := s.Checkout(sessionID, info)
		if err != nil {
			middleware.RecordCheckout(false)

			var verr *store.ValidationError
			switch {
			case errors.As(err, &verr):
				// Field-level messages so the form can re-render with them.
				fields := make(gin.H, len(verr.Fields))
				for _, f := range verr.Fields {
					fields[f] = "This field is required"
				}
				c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "errors": fields})
			case errors.Is(err, store.ErrEmptyCart):
				if isAJAX(c) {
					c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Your cart is empty"})
				} else {
					c.Redirect(http.StatusSeeOther, "/shop")
				}
			default:
				// Transaction rolled back; the cart is intact and retry is safe.
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
			}
			return
		}

		middleware.RecordCheckout(true)
		orderControllers.BroadcastNewOrder(order)

		if isAJAX(c) {
			c.JSON(http.StatusOK, gin.H{
				"success":  true,
				"message":  "Order placed successfully",
				"order_id": order.ID,
			})
			return
		}
		c.Redirect(http.StatusSeeOther, "/")
	}
}
