package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAccessSecret  = "test-access-secret-key-for-testing-purposes"
	testRefreshSecret = "test-refresh-secret-key-for-testing-purposes"
)

func TestNewService(t *testing.T) {
	service := NewService(
		testAccessSecret,
		testRefreshSecret,
		time.Hour,
		24*time.Hour,
	)

	assert.NotNil(t, service)
	assert.Equal(t, testAccessSecret, service.accessSecret)
	assert.Equal(t, testRefreshSecret, service.refreshSecret)
	assert.Equal(t, time.Hour, service.accessTokenExpiry)
	assert.Equal(t, 24*time.Hour, service.refreshTokenExpiry)
}

func TestGenerateAccessToken(t *testing.T) {
	service := NewService(testAccessSecret, testRefreshSecret, time.Hour, 24*time.Hour)
	adminID := uuid.New()

	token, err := service.GenerateAccessToken(adminID, "admin")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, adminID, claims.AdminID)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, AccessToken, claims.TokenType)
}

func TestGenerateRefreshToken(t *testing.T) {
	service := NewService(testAccessSecret, testRefreshSecret, time.Hour, 24*time.Hour)
	adminID := uuid.New()

	token, err := service.GenerateRefreshToken(adminID, "admin")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, adminID, claims.AdminID)
	assert.Equal(t, RefreshToken, claims.TokenType)
}

func TestValidateAccessToken(t *testing.T) {
	service := NewService(testAccessSecret, testRefreshSecret, time.Hour, 24*time.Hour)
	adminID := uuid.New()

	token, err := service.GenerateAccessToken(adminID, "admin")
	require.NoError(t, err)

	t.Run("Valid Token", func(t *testing.T) {
		claims, err := service.ValidateAccessToken(token)
		require.NoError(t, err)
		assert.Equal(t, adminID, claims.AdminID)
	})

	t.Run("Malformed Token", func(t *testing.T) {
		_, err := service.ValidateAccessToken("invalid.token.here")
		assert.Error(t, err)
	})

	t.Run("Wrong Secret", func(t *testing.T) {
		wrongService := NewService("wrong-secret", testRefreshSecret, time.Hour, 24*time.Hour)
		_, err := wrongService.ValidateAccessToken(token)
		assert.Error(t, err)
	})

	t.Run("Refresh Token Rejected As Access Token", func(t *testing.T) {
		refreshToken, err := service.GenerateRefreshToken(adminID, "admin")
		require.NoError(t, err)

		_, err = service.ValidateAccessToken(refreshToken)
		assert.Error(t, err)
	})

	t.Run("Expired Token", func(t *testing.T) {
		expiredService := NewService(testAccessSecret, testRefreshSecret, -time.Minute, 24*time.Hour)
		expiredToken, err := expiredService.GenerateAccessToken(adminID, "admin")
		require.NoError(t, err)

		_, err = service.ValidateAccessToken(expiredToken)
		assert.Error(t, err)
		assert.True(t, service.IsTokenExpired(expiredToken))
		assert.False(t, service.IsTokenExpired(token))
	})
}

func TestValidateRefreshToken(t *testing.T) {
	service := NewService(testAccessSecret, testRefreshSecret, time.Hour, 24*time.Hour)
	adminID := uuid.New()

	refreshToken, err := service.GenerateRefreshToken(adminID, "admin")
	require.NoError(t, err)

	t.Run("Valid Token", func(t *testing.T) {
		claims, err := service.ValidateRefreshToken(refreshToken)
		require.NoError(t, err)
		assert.Equal(t, adminID, claims.AdminID)
	})

	t.Run("Access Token Rejected As Refresh Token", func(t *testing.T) {
		accessToken, err := service.GenerateAccessToken(adminID, "admin")
		require.NoError(t, err)

		_, err = service.ValidateRefreshToken(accessToken)
		assert.Error(t, err)
	})
}
