package contact

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"instock_back_end/internal/utils"
)

// Send relaie un message du formulaire de contact vers la boîte de
// l'équipe.
func Send(c *gin.Context) {
	var input struct {
		Email   string `json:"email"`
		Subject string `json:"subject"`
		Message string `json:"message"`
	}

	if err := c.ShouldBindJSON(&input); err != nil || input.Subject == "" || input.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email, subject et message requis"})
		return
	}

	if !utils.ValidateEmail(input.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email invalide"})
		return
	}

	if err := utils.SendContactEmail(input.Email, input.Subject, input.Message); err != nil {
		log.Println("❌ Erreur envoi message de contact:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Envoi impossible, réessayez plus tard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message envoyé"})
}
