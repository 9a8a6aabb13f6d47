package utils

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateRefreshToken(t *testing.T) {
	gen := NewRefreshTokenGenerator(rand.NewSource(42))
	token := gen.Generate()

	assert.Len(t, token, 500)
	for _, r := range token {
		assert.Contains(t, refreshTokenChars, string(r))
	}
}

func TestGenerateIsDeterministicPerSeed(t *testing.T) {
	a := NewRefreshTokenGenerator(rand.NewSource(7)).Generate()
	b := NewRefreshTokenGenerator(rand.NewSource(7)).Generate()
	c := NewRefreshTokenGenerator(rand.NewSource(8)).Generate()

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestRefreshTokenExpiry(t *testing.T) {
	gen := NewRefreshTokenGenerator(rand.NewSource(1))
	now := time.Date(2024, time.July, 1, 12, 0, 0, 0, time.UTC)

	expiry := gen.Expiry(now)
	assert.Equal(t, "2024-09-29T12:00:00Z", expiry)
	assert.True(t, strings.HasSuffix(expiry, "Z"))
}
