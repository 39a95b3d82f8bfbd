package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/xiri/xiri-api/internal/domain"
	"github.com/xiri/xiri-api/internal/infrastructure/auth"
	"github.com/xiri/xiri-api/internal/infrastructure/metrics"
)

// ContextKey is the type for context keys
type ContextKey string

const (
	// IdentityContextKey is the context key for the resolved identity
	IdentityContextKey ContextKey = "identity"

	// CredentialCookie carries the JWT for browser navigations. API clients
	// send the token in the Authorization header instead.
	CredentialCookie = "xiri_token"
)

// IdentityResolver reconstructs the identity behind verified claims.
type IdentityResolver interface {
	Resolve(ctx context.Context, userID, email, sessionID string) (*domain.Identity, error)
}

// Authenticator resolves the request's identity before any guard runs.
// Page navigations that fail to resolve are redirected to the login route;
// API requests get a 401 instead.
type Authenticator struct {
	jwtManager *auth.JWTManager
	resolver   IdentityResolver
	metrics    *metrics.Metrics
	logger     zerolog.Logger
}

// NewAuthenticator creates a new Authenticator.
func NewAuthenticator(jwtManager *auth.JWTManager, resolver IdentityResolver, m *metrics.Metrics, logger zerolog.Logger) *Authenticator {
	return &Authenticator{
		jwtManager: jwtManager,
		resolver:   resolver,
		metrics:    m,
		logger:     logger,
	}
}

// Page authenticates a browser navigation. An unresolvable identity replaces
// the navigation with a redirect to the login route rather than erroring.
func (a *Authenticator) Page(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := a.resolve(r)
		if err != nil {
			http.Redirect(w, r, domain.RouteLogin, http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), identity)))
	})
}

// API authenticates an API request. An unresolvable identity returns 401.
func (a *Authenticator) API(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := a.resolve(r)
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"unauthorized"}`))
			return
		}

		next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), identity)))
	})
}

// Optional resolves the identity when a credential is present but never
// rejects the request. Sign-out stays idempotent this way: a dead session
// still clears its cookie.
func (a *Authenticator) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if identity, err := a.resolve(r); err == nil {
			r = r.WithContext(withIdentity(r.Context(), identity))
		}

		next.ServeHTTP(w, r)
	})
}

// resolve extracts the credential, verifies it and reconstructs the
// identity. A signed-out session resolves to unauthenticated even when the
// token itself is still valid.
func (a *Authenticator) resolve(r *http.Request) (*domain.Identity, error) {
	token := extractToken(r)
	if token == "" {
		return nil, domain.ErrUnauthorized
	}

	claims, err := a.jwtManager.Verify(token)
	if err != nil {
		if a.metrics != nil {
			a.metrics.AuthFailures.WithLabelValues("invalid_token").Inc()
		}
		return nil, err
	}

	identity, err := a.resolver.Resolve(r.Context(), claims.UserID, claims.Email, claims.SessionID)
	if err != nil {
		if a.metrics != nil {
			a.metrics.AuthFailures.WithLabelValues("session_gone").Inc()
		}
		a.logger.Debug().
			Str("user_id", claims.UserID).
			Err(err).
			Msg("identity resolution failed")

		return nil, err
	}

	return identity, nil
}

// extractToken pulls the JWT from the Authorization header, falling back to
// the session cookie for browser navigations.
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}

	cookie, err := r.Cookie(CredentialCookie)
	if err != nil {
		return ""
	}

	return cookie.Value
}

func withIdentity(ctx context.Context, identity *domain.Identity) context.Context {
	return context.WithValue(ctx, IdentityContextKey, identity)
}

// GetIdentityFromContext extracts the resolved identity from context
func GetIdentityFromContext(ctx context.Context) (*domain.Identity, bool) {
	identity, ok := ctx.Value(IdentityContextKey).(*domain.Identity)
	return identity, ok
}
