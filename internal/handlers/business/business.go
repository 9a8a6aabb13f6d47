package business

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"instock_back_end/internal/cache"
	"instock_back_end/internal/database"
	"instock_back_end/internal/models"
	"instock_back_end/internal/utils"
)

// Create crée le commerce de l'utilisateur connecté et lui réémet un
// JWT portant le business_id. Un utilisateur n'a qu'un seul commerce.
func Create(c *gin.Context) {
	userID := c.GetString("user_id")

	var input struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	if err := c.ShouldBindJSON(&input); err != nil || input.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nom du commerce requis"})
		return
	}

	user, err := cache.GetUserFromCache(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur introuvable"})
		return
	}
	if user.BusinessID != nil && *user.BusinessID != "" {
		c.JSON(http.StatusConflict, gin.H{"error": "Vous avez déjà un commerce"})
		return
	}

	session, err := database.GetBusinessesSession()
	if err != nil {
		log.Println("❌ Session businesses indisponible:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	businessID := gocql.TimeUUID()
	now := time.Now().UTC()

	err = session.Query(`INSERT INTO businesses (business_id, name, description, owner_id, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		businessID, input.Name, input.Description, userID, now).Exec()
	if err != nil {
		log.Println("❌ Erreur création commerce:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	usersSession, err := database.GetUsersSession()
	if err != nil {
		log.Println("❌ Session users indisponible:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	businessIDStr := businessID.String()
	err = usersSession.Query("UPDATE users SET business_id = ? WHERE user_id = ?",
		businessIDStr, userID).Exec()
	if err != nil {
		log.Println("❌ Erreur rattachement commerce:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}
	cache.InvalidateUserCache(userID)

	user.BusinessID = &businessIDStr
	token, err := utils.GenerateJWT(*user)
	if err != nil {
		log.Println("❌ Erreur génération JWT:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	log.Println("✅ Commerce créé:", input.Name, "(", businessIDStr, ")")
	c.JSON(http.StatusCreated, gin.H{
		"business": models.Business{
			ID:          businessID,
			Name:        input.Name,
			Description: input.Description,
			OwnerID:     userID,
			CreatedAt:   now,
		},
		"token": token,
	})
}

// Get retourne le commerce visé par la route
func Get(c *gin.Context) {
	businessID, err := gocql.ParseUUID(c.Param("businessId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant de commerce invalide"})
		return
	}

	session, err := database.GetBusinessesSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	var business models.Business
	business.ID = businessID
	err = session.Query(`SELECT name, description, owner_id, created_at
		FROM businesses WHERE business_id = ?`, businessID).Scan(
		&business.Name, &business.Description, &business.OwnerID, &business.CreatedAt)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commerce introuvable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"business": business})
}
