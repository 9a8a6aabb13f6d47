package utils

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"instock_back_end/internal/models"
)

// GenerateJWT émet le jeton d'accès porteur des claims user_id et
// business_id ; business_id reste vide tant que l'utilisateur n'a pas
// créé son commerce.
func GenerateJWT(user models.User) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "super_secret"
	}

	businessID := ""
	if user.BusinessID != nil {
		businessID = *user.BusinessID
	}

	claims := jwt.MapClaims{
		"user_id":     user.ID,
		"email":       user.Email,
		"business_id": businessID,
		"exp":         time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
