package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/xiri/xiri-api/internal/adapter/http/dto"
	"github.com/xiri/xiri-api/internal/adapter/http/middleware"
	"github.com/xiri/xiri-api/internal/domain"
	"github.com/xiri/xiri-api/internal/infrastructure/auth"
	"github.com/xiri/xiri-api/internal/infrastructure/metrics"
)

// SessionService defines the behavior needed by AuthHandler.
type SessionService interface {
	Login(ctx context.Context, email, password string) (*domain.Identity, error)
	SwitchView(ctx context.Context, identity *domain.Identity, mode domain.ViewMode) (*domain.Identity, error)
	SignOut(ctx context.Context, sessionID string) error
}

// AuthHandler handles the session lifecycle endpoints.
type AuthHandler struct {
	sessionUC  SessionService
	jwtManager *auth.JWTManager
	metrics    *metrics.Metrics
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(sessionUC SessionService, jwtManager *auth.JWTManager, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{
		sessionUC:  sessionUC,
		jwtManager: jwtManager,
		metrics:    m,
	}
}

// Login authenticates credentials and issues a token. The token is also set
// as a cookie so page navigations carry it without client-side wiring.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	identity, err := h.sessionUC.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.recordAuth("failure")
		writeError(w, http.StatusUnauthorized, "invalid credentials", "")

		return
	}

	token, err := h.jwtManager.Generate(identity)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate token", err.Error())
		return
	}

	h.recordAuth("success")
	if h.metrics != nil {
		h.metrics.ActiveSessions.Inc()
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.CredentialCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, dto.LoginResponse{
		Token:    token,
		Identity: dto.IdentityFromDomain(identity),
	})
}

// Logout signs the session out. The clear is optimistic: the cookie is
// dropped and 204 returned even when the session store misbehaves.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if ok {
		h.sessionUC.SignOut(r.Context(), identity.SessionID)
		if h.metrics != nil {
			h.metrics.ActiveSessions.Dec()
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.CredentialCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	w.WriteHeader(http.StatusNoContent)
}

// Me returns the identity the request resolved to.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	writeJSON(w, http.StatusOK, dto.IdentityFromDomain(identity))
}

// SwitchView changes the session's view mode. Authorization depth lives in
// the session manager: unprivileged roles no-op rather than error.
func (h *AuthHandler) SwitchView(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.SwitchViewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	updated, err := h.sessionUC.SwitchView(r.Context(), identity, domain.ViewMode(req.Mode))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to switch view", err.Error())

		return
	}

	if h.metrics != nil && updated.ViewMode != identity.ViewMode {
		h.metrics.ViewSwitches.WithLabelValues(string(updated.ViewMode)).Inc()
	}

	writeJSON(w, http.StatusOK, dto.IdentityFromDomain(updated))
}

func (h *AuthHandler) recordAuth(result string) {
	if h.metrics != nil {
		h.metrics.AuthAttempts.WithLabelValues(result).Inc()
	}
}
