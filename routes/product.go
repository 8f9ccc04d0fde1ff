package routes

import (
	"github.com/gin-gonic/gin"

	productControllers "github.com/roboarena/storefront-api/controllers/product"
	"github.com/roboarena/storefront-api/store"
)

func SetupProductRoutes(r *gin.Engine, s *store.Store) {
	r.GET("/shop", productControllers.ListProducts(s))
	r.GET("/product/:slug", productControllers.GetProduct(s))
}
