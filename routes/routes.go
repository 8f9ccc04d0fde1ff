package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/roboarena/storefront-api/store"
)

// SetupRoutes is the single entry-point that wires up the storefront,
// checkout, and fulfillment route groups.
func SetupRoutes(r *gin.Engine, s *store.Store) {
	// Public catalog routes
	SetupProductRoutes(r, s)

	// Session-scoped cart and checkout routes
	SetupCartRoutes(r, s)

	// Fulfillment routes (API-key-protected)
	SetupOrderRoutes(r, s)
}
