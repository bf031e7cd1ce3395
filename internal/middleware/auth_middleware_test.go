package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/moroccotransfers/booking-backend/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiddlewareTest(jwtService *jwt.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(AuthMiddleware(jwtService))
	router.GET("/protected", func(c *gin.Context) {
		admin, ok := GetAdminContext(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no admin context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"username": admin.Username})
	})
	return router
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &response))
	code, _ := response["code"].(string)
	return code
}

func TestAuthMiddleware(t *testing.T) {
	jwtService := jwt.NewService("test-secret", "test-refresh-secret", time.Hour, 24*time.Hour)
	router := setupMiddlewareTest(jwtService)
	adminID := uuid.New()

	t.Run("Valid Token", func(t *testing.T) {
		token, err := jwtService.GenerateAccessToken(adminID, "admin")
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "admin", response["username"])
	})

	t.Run("Missing Header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "MISSING_AUTH_HEADER", errorCode(t, w.Body.Bytes()))
	})

	t.Run("Wrong Scheme", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Basic abc123")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "INVALID_AUTH_FORMAT", errorCode(t, w.Body.Bytes()))
	})

	t.Run("Invalid Token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "INVALID_TOKEN", errorCode(t, w.Body.Bytes()))
	})

	t.Run("Expired Token", func(t *testing.T) {
		expiredService := jwt.NewService("test-secret", "test-refresh-secret", -time.Minute, 24*time.Hour)
		token, err := expiredService.GenerateAccessToken(adminID, "admin")
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "TOKEN_EXPIRED", errorCode(t, w.Body.Bytes()))
	})

	t.Run("Refresh Token Rejected", func(t *testing.T) {
		token, err := jwtService.GenerateRefreshToken(adminID, "admin")
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "INVALID_TOKEN", errorCode(t, w.Body.Bytes()))
	})
}
