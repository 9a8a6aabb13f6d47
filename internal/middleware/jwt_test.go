package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func protectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/businesses/:businessId/ping", AuthRequired(), BusinessAccessRequired(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":     c.GetString("user_id"),
			"business_id": c.GetString("business_id"),
		})
	})
	return r
}

func TestAuthRequiredRejectsMissingHeader(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	r := protectedRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/businesses/b1/ping", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredRejectsBadSignature(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	r := protectedRouter()

	token := signToken(t, "autre_secret", jwt.MapClaims{
		"user_id": "u1",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/businesses/b1/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredRejectsExpiredToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	r := protectedRouter()

	token := signToken(t, "test_secret", jwt.MapClaims{
		"user_id":     "u1",
		"business_id": "b1",
		"exp":         time.Now().Add(-time.Hour).Unix(),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/businesses/b1/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBusinessAccessRejectsOtherBusiness(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	r := protectedRouter()

	token := signToken(t, "test_secret", jwt.MapClaims{
		"user_id":     "u1",
		"business_id": "b1",
		"exp":         time.Now().Add(time.Hour).Unix(),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/businesses/b2/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBusinessAccessRejectsTokenWithoutBusiness(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	r := protectedRouter()

	token := signToken(t, "test_secret", jwt.MapClaims{
		"user_id": "u1",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/businesses/b1/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBusinessAccessAllowsOwnBusiness(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	r := protectedRouter()

	token := signToken(t, "test_secret", jwt.MapClaims{
		"user_id":     "u1",
		"email":       "u1@example.com",
		"business_id": "b1",
		"exp":         time.Now().Add(time.Hour).Unix(),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/businesses/b1/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":"u1"`)
	assert.Contains(t, w.Body.String(), `"business_id":"b1"`)
}
