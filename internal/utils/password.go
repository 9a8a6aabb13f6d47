package utils

import (
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func CheckPassword(hashed, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}

var (
	passwordSpecialRe = regexp.MustCompile(`[^A-Za-z0-9]`)
	passwordDigitRe   = regexp.MustCompile(`[0-9]`)
	passwordUpperRe   = regexp.MustCompile(`[A-Z]`)
	passwordLowerRe   = regexp.MustCompile(`[a-z]`)
)

// ValidatePassword impose 8 à 32 caractères avec au moins un caractère
// spécial, un chiffre, une majuscule et une minuscule.
func ValidatePassword(password string) bool {
	if len(password) < 8 || len(password) > 32 {
		return false
	}
	return passwordSpecialRe.MatchString(password) &&
		passwordDigitRe.MatchString(password) &&
		passwordUpperRe.MatchString(password) &&
		passwordLowerRe.MatchString(password)
}
