package utils

import (
	"regexp"
	"strings"
)

var (
	nameRe  = regexp.MustCompile(`^[A-Za-z][A-Za-z' -]{1,}$`)
	emailRe = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+$`)
)

// ValidateName accepte les prénoms et noms de 2 caractères minimum,
// lettres, apostrophes, tirets et espaces.
func ValidateName(name string) bool {
	return nameRe.MatchString(name)
}

func ValidateEmail(email string) bool {
	return emailRe.MatchString(email)
}

// ValidateImageContentType n'accepte que les formats d'image servis
// directement par le front.
func ValidateImageContentType(contentType string) bool {
	switch strings.ToLower(contentType) {
	case "image/jpeg", "image/png", "image/webp":
		return true
	}
	return false
}
