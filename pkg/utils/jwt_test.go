package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_GenerateAndParse(t *testing.T) {
	m := NewJWTManager("test-secret", "teamtrack")

	token, err := m.GenerateToken("user-1", "admin", "access", time.Minute)
	require.NoError(t, err)

	claims, err := m.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "access", claims.Type)
	assert.Equal(t, "teamtrack", claims.Issuer)
}

func TestJWTManager_GenerateTokenPair(t *testing.T) {
	m := NewJWTManager("test-secret", "teamtrack")

	pair, err := m.GenerateTokenPair("user-1", "developer", 15*time.Minute, 7*24*time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	access, err := m.ParseToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "access", access.Type)

	refresh, err := m.ParseToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "refresh", refresh.Type)
}

func TestJWTManager_ExpiredToken(t *testing.T) {
	m := NewJWTManager("test-secret", "teamtrack")

	token, err := m.GenerateToken("user-1", "admin", "access", -time.Minute)
	require.NoError(t, err)

	_, err = m.ParseToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTManager_WrongSecret(t *testing.T) {
	m1 := NewJWTManager("secret-a", "teamtrack")
	m2 := NewJWTManager("secret-b", "teamtrack")

	token, err := m1.GenerateToken("user-1", "admin", "access", time.Minute)
	require.NoError(t, err)

	_, err = m2.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManager_GarbageToken(t *testing.T) {
	m := NewJWTManager("test-secret", "teamtrack")

	_, err := m.ParseToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
