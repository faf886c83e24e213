package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_RoundTrip(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret"))

	token, expiresAt, err := svc.GenerateAccessToken("user-1", "ana@example.com", RoleAdmin, "sess-1", true)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	user, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.UserID)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.Equal(t, RoleAdmin, user.Role)
	assert.True(t, user.IsAdmin)
	assert.Equal(t, "sess-1", user.SessionID)
}

func TestJWT_WrongSecretRejected(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("secret-a"))
	other := NewJWTService(DefaultJWTConfig("secret-b"))

	token, _, err := svc.GenerateAccessToken("user-1", "ana@example.com", RoleCustomer, "", false)
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	require.Error(t, err)
}

func TestJWT_ExpiredRejected(t *testing.T) {
	cfg := DefaultJWTConfig("test-secret")
	cfg.AccessTokenTTL = -time.Minute
	svc := NewJWTService(cfg)

	token, _, err := svc.GenerateAccessToken("user-1", "ana@example.com", RoleCustomer, "", false)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
}

func TestJWT_GarbageRejected(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret"))

	_, err := svc.ValidateToken("not.a.token")
	require.Error(t, err)
}
