package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenService(t *testing.T) {
	ts := NewTokenService("access-secret", "refresh-secret", 60, 10080)

	assert.NotNil(t, ts)
	assert.Equal(t, time.Hour, ts.AccessTokenExpiry)
	assert.Equal(t, 7*24*time.Hour, ts.RefreshTokenExpiry)
	assert.Equal(t, ts.AccessTokenExpiry, ts.AccessTokenTTL())
	assert.Equal(t, ts.RefreshTokenExpiry, ts.RefreshTokenTTL())
}

func TestTokenService_GenerateAccessToken(t *testing.T) {
	ts := NewTokenService("access-secret", "refresh-secret", 15, 1440)

	token, expiresAt, err := ts.GenerateAccessToken("user-123", "test@example.com", "session-456")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	claims, err := ts.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "test@example.com", claims.Email)
	assert.Equal(t, "session-456", claims.SessionID)
	assert.Empty(t, claims.TokenType)
}

func TestTokenService_GenerateRefreshToken(t *testing.T) {
	ts := NewTokenService("access-secret", "refresh-secret", 15, 1440)

	token, expiresAt, err := ts.GenerateRefreshToken("user-123", "test@example.com", "session-456")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiresAt, 5*time.Second)

	claims, err := ts.VerifyRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "session-456", claims.SessionID)
	assert.Equal(t, refreshTokenType, claims.TokenType)
}

func TestTokenService_Verify_FailsClosed(t *testing.T) {
	ts := NewTokenService("access-secret", "refresh-secret", 15, 1440)

	t.Run("garbage token", func(t *testing.T) {
		_, err := ts.VerifyAccessToken("not-a-token")
		assert.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenService("different-secret", "refresh-secret", 15, 1440)
		token, _, err := other.GenerateAccessToken("user-123", "test@example.com", "session-456")
		require.NoError(t, err)

		_, err = ts.VerifyAccessToken(token)
		assert.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := NewTokenService("access-secret", "refresh-secret", -1, 1440)
		token, _, err := expired.GenerateAccessToken("user-123", "test@example.com", "session-456")
		require.NoError(t, err)

		_, err = ts.VerifyAccessToken(token)
		assert.Error(t, err)
	})

	t.Run("unexpected signing method", func(t *testing.T) {
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = ts.VerifyAccessToken(unsigned)
		assert.Error(t, err)
	})
}

// A refresh token must never be usable as an access token, and vice versa,
// even though both are HS256 tokens with the same claim shape.
func TestTokenService_TypeConfusion(t *testing.T) {
	ts := NewTokenService("shared-secret", "shared-secret", 15, 1440)

	access, _, err := ts.GenerateAccessToken("user-123", "test@example.com", "session-456")
	require.NoError(t, err)

	refresh, _, err := ts.GenerateRefreshToken("user-123", "test@example.com", "session-456")
	require.NoError(t, err)

	_, err = ts.VerifyAccessToken(refresh)
	assert.Error(t, err)

	_, err = ts.VerifyRefreshToken(access)
	assert.Error(t, err)
}
