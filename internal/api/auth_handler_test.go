package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aigovern/admin-api/internal/config"
	"github.com/aigovern/admin-api/internal/domain"
	"github.com/aigovern/admin-api/internal/service/auth"
)

func setupAuthHandler(t *testing.T) (*AuthHandler, *domain.AdminUser) {
	t.Helper()

	hash, err := auth.HashPassword("correct-password", 4)
	require.NoError(t, err)

	user := &domain.AdminUser{
		ID:         uuid.New(),
		Email:      "admin@corp.example",
		HashedPass: hash,
	}

	jwtService, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            "0123456789abcdef0123456789abcdef",
		TokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)

	h := NewAuthHandler(
		&stubAdminUserStore{user: user},
		jwtService,
		auth.NewBcryptVerifier(),
		time.Hour,
	)
	return h, user
}

func postLogin(t *testing.T, h *AuthHandler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	h.Login(rec, req)
	return rec
}

func TestLogin(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		h, user := setupAuthHandler(t)
		rec := postLogin(t, h, `{"email":"admin@corp.example","password":"correct-password"}`)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp AuthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, user.ID, resp.UserID)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.ExpiresAt)
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()

		h, _ := setupAuthHandler(t)
		rec := postLogin(t, h, `{"email":"admin@corp.example","password":"wrong"}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown email gets the same response as wrong password", func(t *testing.T) {
		t.Parallel()

		h, _ := setupAuthHandler(t)
		wrongPass := postLogin(t, h, `{"email":"admin@corp.example","password":"wrong"}`)
		unknown := postLogin(t, h, `{"email":"nobody@corp.example","password":"wrong"}`)

		assert.Equal(t, http.StatusUnauthorized, unknown.Code)
		assert.Equal(t, wrongPass.Body.String(), unknown.Body.String())
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()

		h, _ := setupAuthHandler(t)
		rec := postLogin(t, h, `{`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		t.Parallel()

		h, _ := setupAuthHandler(t)
		rec := postLogin(t, h, `{"email":"not-an-email"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
