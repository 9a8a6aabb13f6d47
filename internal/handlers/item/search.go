package item

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"instock_back_end/internal/services"
)

// Search interroge Elasticsearch sur le nom, le SKU et la catégorie des
// articles du commerce.
func Search(c *gin.Context) {
	businessID := c.Param("businessId")
	query := c.Query("q")

	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Paramètre q requis"})
		return
	}

	results, err := services.SearchItems(businessID, query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Recherche indisponible"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}
