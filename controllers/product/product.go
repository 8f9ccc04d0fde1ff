package productControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/roboarena/storefront-api/store"
)

const productsPerPage = 6

// GET /shop
//
// Catalog listing, newest first. Optional ?category=<slug> filter and ?page=
// pagination.
func ListProducts(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := 1
		if raw := c.Query("page"); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
				page = parsed
			}
		}

		result, err := s.Products(c.Query("category"), page, productsPerPage)
		if err != nil {
			if errors.Is(err, store.ErrProductNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		categories, err := s.Categories()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"products":    result.Products,
			"categories":  categories,
			"page":        result.Page,
			"total_pages": result.TotalPages,
			"total_count": result.TotalCount,
		})
	}
}

// GET /product/:slug
func GetProduct(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := s.ProductBySlug(c.Param("slug"))
		if err != nil {
			if errors.Is(err, store.ErrProductNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
