package cartControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/roboarena/storefront-api/middleware"
	"github.com/roboarena/storefront-api/store"
)

// isAJAX reports whether the storefront JS made the request; those callers
// get JSON back instead of a redirect.
func isAJAX(c *gin.Context) bool {
	return c.GetHeader("X-Requested-With") == "XMLHttpRequest"
}

func parseProductID(c *gin.Context) (uint, bool) {
	raw := c.Param("product_id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product_id"})
		return 0, false
	}
	return uint(id), true
}

// parseQuantity reads the optional quantity from a form or JSON body,
// defaulting to 1.
func parseQuantity(c *gin.Context) (int, bool) {
	if raw := c.PostForm("quantity"); raw != "" {
		qty, err := strconv.Atoi(raw)
		if err != nil || qty < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be a positive integer"})
			return 0, false
		}
		return qty, true
	}
	if c.ContentType() == "application/json" {
		var body struct {
			Quantity int `json:"quantity"`
		}
		if err := c.ShouldBindJSON(&body); err == nil && body.Quantity != 0 {
			if body.Quantity < 1 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be a positive integer"})
				return 0, false
			}
			return body.Quantity, true
		}
	}
	return 1, true
}

// POST /cart/add/:product_id
func AddToCart(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, ok := parseProductID(c)
		if !ok {
			return
		}
		quantity, ok := parseQuantity(c)
		if !ok {
			return
		}

		sessionID := middleware.SessionID(c)
		cart, err := s.ResolveOrCreateCart(sessionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve cart"})
			return
		}

		if _, err := s.AddItem(cart, productID, quantity); err != nil {
			if errors.Is(err, store.ErrProductNotFound) {
				if isAJAX(c) {
					c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product does not exist"})
				} else {
					c.Redirect(http.StatusSeeOther, "/shop")
				}
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
			return
		}

		if !isAJAX(c) {
			c.Redirect(http.StatusSeeOther, "/cart")
			return
		}

		product, err := s.ProductByID(productID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}
		count, err := s.CartCount(sessionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":      true,
			"message":      product.Name + " added to cart",
			"cart_count":   count,
			"product_name": product.Name,
		})
	}
}

// POST /cart/remove/:product_id
//
// Decrements the line item by one, removing it when the quantity hits zero.
func RemoveFromCart(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, ok := parseProductID(c)
		if !ok {
			return
		}

		sessionID := middleware.SessionID(c)
		cart, err := s.CartBySession(sessionID)
		if err == nil {
			err = s.DecrementItem(cart, productID)
		}
		respondCartMutation(c, s, sessionID, err, "Item removed from cart")
	}
}

// POST /cart/remove_item/:product_id
//
// Deletes the line item outright regardless of quantity.
func RemoveCartItem(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, ok := parseProductID(c)
		if !ok {
			return
		}

		sessionID := middleware.SessionID(c)
		cart, err := s.CartBySession(sessionID)
		if err == nil {
			err = s.RemoveItem(cart, productID)
		}
		respondCartMutation(c, s, sessionID, err, "Item removed from cart")
	}
}

// respondCartMutation maps a cart mutation result onto the redirect/JSON
// policy: a missing cart or item fails only that action.
func respondCartMutation(c *gin.Context, s *store.Store, sessionID string, err error, message string) {
	if err != nil {
		if errors.Is(err, store.ErrCartNotFound) || errors.Is(err, store.ErrItemNotFound) {
			if isAJAX(c) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Cart item not found"})
			} else {
				c.Redirect(http.StatusSeeOther, "/cart")
			}
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}

	if !isAJAX(c) {
		c.Redirect(http.StatusSeeOther, "/cart")
		return
	}
	count, err := s.CartCount(sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message, "cart_count": count})
}

// GET /cart
func GetCart(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := middleware.SessionID(c)
		lines, totals, err := s.CartSummary(sessionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		if lines == nil {
			lines = []store.CartLine{}
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
