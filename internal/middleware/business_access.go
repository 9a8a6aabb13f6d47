package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// BusinessAccessRequired vérifie que le business_id du token correspond
// au commerce visé par la route. Se place après AuthRequired.
func BusinessAccessRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		businessID := c.GetString("business_id")
		requested := c.Param("businessId")

		if businessID == "" || requested == "" || businessID != requested {
			log.Printf("❌ Accès refusé au commerce %s (token: %s)", requested, businessID)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Accès refusé à ce commerce"})
			c.Abort()
			return
		}

		c.Next()
	}
}
