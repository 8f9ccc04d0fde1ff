package middleware

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// APIKeyValid checks a candidate key against the configured admin key.
func APIKeyValid(key string) bool {
	return key != "" && key == os.Getenv("ADMIN_API_KEY")
}

// ValidateAPIKey guards the fulfillment routes. The key is shared with the
// admin frontend through the ADMIN_API_KEY environment variable.
func ValidateAPIKey(c *gin.Context) {
	if !APIKeyValid(c.GetHeader("X-API-KEY")) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing API key"})
		c.Abort()
		return
	}
	c.Next()
}
