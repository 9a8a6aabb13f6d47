package utils

import (
	"math/rand"
	"time"
)

const (
	refreshTokenChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	refreshTokenLength = 500
	refreshTokenDays   = 90
)

// RefreshTokenGenerator produit les refresh tokens. La source aléatoire
// est injectée par l'appelant, jamais un générateur global partagé.
type RefreshTokenGenerator struct {
	rng *rand.Rand
}

func NewRefreshTokenGenerator(src rand.Source) *RefreshTokenGenerator {
	return &RefreshTokenGenerator{rng: rand.New(src)}
}

// Generate retourne un token de 500 caractères alphanumériques majuscules.
func (g *RefreshTokenGenerator) Generate() string {
	b := make([]byte, refreshTokenLength)
	for i := range b {
		b[i] = refreshTokenChars[g.rng.Intn(len(refreshTokenChars))]
	}
	return string(b)
}

// Expiry retourne la date d'expiration à 90 jours, en RFC 3339 UTC.
func (g *RefreshTokenGenerator) Expiry(now time.Time) string {
	return now.UTC().AddDate(0, 0, refreshTokenDays).Format(time.RFC3339)
}
