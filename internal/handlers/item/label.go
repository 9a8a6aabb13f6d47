package item

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"

	"instock_back_end/internal/database"
)

// Label génère l'étiquette QR d'un article, en PNG. Le code encode le
// couple commerce/SKU, scanné par l'app mobile pour ouvrir la fiche.
func Label(c *gin.Context) {
	businessID := c.Param("businessId")
	sku := c.Param("sku")

	session, err := database.GetBusinessesSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	var name string
	if err := session.Query("SELECT name FROM items WHERE business_id = ? AND sku = ?",
		businessID, sku).Scan(&name); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article introuvable"})
		return
	}

	content := fmt.Sprintf("instock://businesses/%s/items/%s", businessID, sku)
	png, err := qrcode.Encode(content, qrcode.Medium, 256)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération QR"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%s.png", sku))
	c.Data(http.StatusOK, "image/png", png)
}
