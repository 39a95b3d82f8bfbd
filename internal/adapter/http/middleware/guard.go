package middleware

import (
	"net/http"

	"github.com/xiri/xiri-api/internal/domain"
	"github.com/xiri/xiri-api/internal/infrastructure/metrics"
)

// Guard enforces route access rules on resolved identities. It always runs
// after the Authenticator, so a missing identity here means a wiring bug,
// which the evaluation treats as the most restrictive case.
type Guard struct {
	metrics *metrics.Metrics
}

// NewGuard creates a new Guard.
func NewGuard(m *metrics.Metrics) *Guard {
	return &Guard{metrics: m}
}

// Pages restricts a page route to the given roles. A denied navigation is
// replaced with a 303 redirect to the fallback computed from the bare role;
// there is no error body.
func (g *Guard) Pages(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, _ := GetIdentityFromContext(r.Context())

			decision := domain.Evaluate(identity, roles)
			g.record(decision, identity)

			if !decision.Allowed {
				http.Redirect(w, r, decision.RedirectTo, http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// API restricts an API route to the given roles. Denials return 403 with an
// error body instead of redirecting.
func (g *Guard) API(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, _ := GetIdentityFromContext(r.Context())

			decision := domain.Evaluate(identity, roles)
			g.record(decision, identity)

			if !decision.Allowed {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte(`{"error":"insufficient permissions"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (g *Guard) record(decision domain.Decision, identity *domain.Identity) {
	if g.metrics == nil {
		return
	}

	outcome := "allow"
	if !decision.Allowed {
		outcome = "deny"
	}

	role := "none"
	if identity != nil {
		role = string(identity.Role)
	}

	g.metrics.GuardDecisions.WithLabelValues(outcome, role).Inc()
}
