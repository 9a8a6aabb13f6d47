package milestone

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"instock_back_end/internal/database"
	"instock_back_end/internal/models"
	"instock_back_end/internal/services"
)

const signedURLDuration = 15 * time.Minute

// List retourne les jalons visibles du commerce, avec URL signée pour
// l'image de l'article.
func List(c *gin.Context) {
	businessID := c.Param("businessId")

	session, err := database.GetBusinessesSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	iter := session.Query(`SELECT milestone_id, item_sku, item_name, image_filename, total_sales, date_time, display_milestone
		FROM milestones WHERE business_id = ?`, businessID).Iter()

	milestones := []models.Milestone{}
	var m models.Milestone
	for iter.Scan(&m.MilestoneID, &m.ItemSKU, &m.ItemName, &m.ImageFilename,
		&m.TotalSales, &m.DateTime, &m.DisplayMilestone) {
		if !m.DisplayMilestone {
			continue
		}
		m.BusinessID = businessID
		if m.ImageFilename != "" {
			signedURL, err := services.GenerateSignedURL(c.Request.Context(),
				database.ItemImagesBucket, m.ImageFilename, signedURLDuration)
			if err == nil {
				m.ImageURL = signedURL
			}
		}
		milestones = append(milestones, m)
		m = models.Milestone{}
	}

	if err := iter.Close(); err != nil {
		log.Println("❌ Erreur lecture jalons:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"milestones": milestones})
}

// Hide masque un jalon du tableau de bord sans le supprimer. Le commerce
// vient du token, la route ne porte que l'identifiant du jalon.
func Hide(c *gin.Context) {
	businessID := c.GetString("business_id")
	if businessID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Aucun commerce rattaché à ce compte"})
		return
	}

	milestoneID, err := gocql.ParseUUID(c.Param("milestoneId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant de jalon invalide"})
		return
	}

	session, err := database.GetBusinessesSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	var existing gocql.UUID
	err = session.Query("SELECT milestone_id FROM milestones WHERE business_id = ? AND milestone_id = ?",
		businessID, milestoneID).Scan(&existing)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Jalon introuvable"})
		return
	}

	err = session.Query("UPDATE milestones SET display_milestone = ? WHERE business_id = ? AND milestone_id = ?",
		false, businessID, milestoneID).Exec()
	if err != nil {
		log.Println("❌ Erreur masquage jalon:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Jalon masqué"})
}
