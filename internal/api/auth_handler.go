package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/aigovern/admin-api/internal/api/shared"
	"github.com/aigovern/admin-api/internal/service/auth"
	"github.com/aigovern/admin-api/internal/store"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	adminUserStore   store.AdminUserStore
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	tokenLifetime    time.Duration
	validator        *validator.Validate
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	adminUserStore store.AdminUserStore,
	jwtService auth.JWTService,
	passwordVerifier auth.PasswordVerifier,
	tokenLifetime time.Duration,
) *AuthHandler {
	return &AuthHandler{
		adminUserStore:   adminUserStore,
		jwtService:       jwtService,
		passwordVerifier: passwordVerifier,
		tokenLifetime:    tokenLifetime,
		validator:        validator.New(),
	}
}

// Login handles the /auth/login endpoint.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, err := h.adminUserStore.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrAdminUserNotFound) {
			// Same response as a wrong password so accounts cannot be
			// enumerated.
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to authenticate", err)
		return
	}

	if err := h.passwordVerifier.Compare(user.HashedPass, req.Password); err != nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), user.ID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to generate authentication token", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		UserID:      user.ID,
		AccessToken: token,
		ExpiresAt:   time.Now().Add(h.tokenLifetime).UTC().Format(time.RFC3339),
	})
}
