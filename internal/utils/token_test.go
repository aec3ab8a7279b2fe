package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/machzaul/Tubes-Pemweb/config"
)

func TestTokenRoundTrip(t *testing.T) {
	config.AppConfig = &config.Config{
		Server: config.ServerConfig{JWTSecret: "test-secret", JWTExpirationHours: 1},
	}

	token, err := GenerateToken(7, "admin")
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.AdminID)
	assert.Equal(t, "admin", claims.Username)
}

func TestTokenRequiresSecret(t *testing.T) {
	config.AppConfig = &config.Config{}

	_, err := GenerateToken(1, "admin")
	assert.ErrorIs(t, err, ErrNoSecret)

	_, err = ValidateToken("whatever")
	assert.ErrorIs(t, err, ErrNoSecret)
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	config.AppConfig = &config.Config{
		Server: config.ServerConfig{JWTSecret: "first-secret", JWTExpirationHours: 1},
	}
	token, err := GenerateToken(1, "admin")
	require.NoError(t, err)

	config.AppConfig.Server.JWTSecret = "second-secret"
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("admin123")
	require.NoError(t, err)
	assert.NotEqual(t, "admin123", hash)

	assert.True(t, CheckPasswordHash("admin123", hash))
	assert.False(t, CheckPasswordHash("admin124", hash))
}
