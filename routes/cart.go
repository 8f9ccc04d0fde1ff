package routes

import (
	"github.com/gin-gonic/gin"

	cartControllers "github.com/roboarena/storefront-api/controllers/cart"
	checkoutControllers "github.com/roboarena/storefront-api/controllers/checkout"
	"github.com/roboarena/storefront-api/middleware"
	"github.com/roboarena/storefront-api/store"
)

func SetupCartRoutes(r *gin.Engine, s *store.Store) {
	cart := r.Group("/cart")
	cart.Use(middleware.Session())
	{
		cart.GET("", cartControllers.GetCart(s))
		cart.POST("/add/:product_id", cartControllers.AddToCart(s))
		cart.POST("/remove/:product_id", cartControllers.RemoveFromCart(s))
		cart.POST("/remove_item/:product_id", cartControllers.RemoveCartItem(s))
	}

	checkout := r.Group("/checkout")
	checkout.Use(middleware.Session())
	{
		checkout.GET("", checkoutControllers.ShowCheckout(s))
		checkout.POST("", checkoutControllers.SubmitCheckout(s))
	}
}
