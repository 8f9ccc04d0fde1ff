package routes

import (
	"github.com/gin-gonic/gin"

	orderControllers "github.com/roboarena/storefront-api/controllers/order"
	"github.com/roboarena/storefront-api/middleware"
	"github.com/roboarena/storefront-api/store"
)

func SetupOrderRoutes(r *gin.Engine, s *store.Store) {
	orders := r.Group("/orders")
	orders.Use(middleware.ValidateAPIKey)
	{
		// Fetch all orders with derived totals
		orders.GET("", orderControllers.GetAllOrdersHandler(s))

		// Fetch a single order
		orders.GET("/:order_id", orderControllers.GetOrderHandler(s))

		// Update order status (e.g. accepted, cancelled)
		orders.PUT("/:order_id/status", orderControllers.UpdateOrderStatusHandler(s))

		// Spreadsheet export for the fulfillment team
		orders.GET("/export", orderControllers.ExportOrdersToExcel(s))
	}

	// websocket endpoint for real-time order updates. Registered outside the
	// group because WebSocket browser clients cannot send the X-API-KEY
	// header; the handler validates the key itself (header or query param)
	// before upgrading.
	r.GET("/orders/ws", orderControllers.OrderWebSocketHandler)
}
