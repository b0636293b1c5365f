package auth

import (
	"context"
	"testing"
	"time"

	"github.com/aigovern/admin-api/internal/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:            "0123456789abcdef0123456789abcdef",
		TokenLifetimeMinutes: 60,
	}
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()

		svc, err := NewJWTService(testAuthConfig())
		require.NoError(t, err)
		assert.NotNil(t, svc)
	})

	t.Run("secret too short", func(t *testing.T) {
		t.Parallel()

		cfg := testAuthConfig()
		cfg.JWTSecret = "short"
		_, err := NewJWTService(cfg)
		assert.Error(t, err)
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	userID := uuid.New()
	token, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.True(t, claims.ExpiresAt.After(claims.IssuedAt))
}

func TestValidateTokenFailures(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("missing token", func(t *testing.T) {
		t.Parallel()

		svc, err := NewJWTService(testAuthConfig())
		require.NoError(t, err)

		_, err = svc.ValidateToken(ctx, "")
		assert.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("malformed token", func(t *testing.T) {
		t.Parallel()

		svc, err := NewJWTService(testAuthConfig())
		require.NoError(t, err)

		_, err = svc.ValidateToken(ctx, "not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		t.Parallel()

		svc, err := NewJWTService(testAuthConfig())
		require.NoError(t, err)

		otherCfg := testAuthConfig()
		otherCfg.JWTSecret = "ffffffffffffffffffffffffffffffff"
		other, err := NewJWTService(otherCfg)
		require.NoError(t, err)

		token, err := other.GenerateToken(ctx, uuid.New())
		require.NoError(t, err)

		_, err = svc.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		t.Parallel()

		svc, err := NewJWTService(testAuthConfig())
		require.NoError(t, err)

		impl, ok := svc.(*hmacJWTService)
		require.True(t, ok)

		// Issue a token in the past, beyond lifetime plus clock skew.
		issued := time.Now().Add(-2 * time.Hour)
		impl.timeFunc = func() time.Time { return issued }
		token, err := svc.GenerateToken(ctx, uuid.New())
		require.NoError(t, err)

		impl.timeFunc = time.Now
		_, err = svc.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}

func TestBcryptVerifier(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct horse battery staple", 4)
	require.NoError(t, err)

	verifier := NewBcryptVerifier()
	assert.NoError(t, verifier.Compare(hash, "correct horse battery staple"))
	assert.Error(t, verifier.Compare(hash, "wrong password"))
}
