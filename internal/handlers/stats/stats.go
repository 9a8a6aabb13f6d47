package stats

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"instock_back_end/internal/cache"
	statsengine "instock_back_end/internal/stats"
)

var service = statsengine.NewService(statsengine.ScyllaSource{})

// Get calcule les statistiques et suggestions du commerce. Le résultat
// est mis en cache 60 secondes, invalidé à chaque mouvement de stock.
func Get(c *gin.Context) {
	businessID := c.Param("businessId")
	ctx := c.Request.Context()

	if cached := cache.GetStatsFromCache(ctx, businessID); cached != nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	allStats, diagnostics, err := service.GetStats(ctx, businessID)
	if err != nil {
		log.Println("❌ Erreur calcul statistiques:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Statistiques indisponibles"})
		return
	}

	// Les évènements à date illisible sont ignorés du calcul, pas bloquants
	for _, diag := range diagnostics {
		log.Println("⚠️ Évènement de stock ignoré:", diag.Error())
	}

	cache.SetStatsCache(ctx, businessID, allStats)
	c.JSON(http.StatusOK, allStats)
}
