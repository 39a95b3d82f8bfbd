package integration

import (
	"context"
	"net/http"
	"testing"

	"github.com/xiri/xiri-api/internal/domain"
)

func TestPageAccessControl(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	env := newTestEnv(t)

	territory := env.DB.CreateTestTerritory(ctx, "north", "10001")
	env.DB.CreateTestUser(ctx, "sales@xiri.test", "password123", domain.RoleSales, territory.ID)
	env.DB.CreateTestUser(ctx, "admin@xiri.test", "password123", domain.RoleSuperAdmin, "")

	salesToken := env.login(t, "sales@xiri.test", "password123")
	adminToken := env.login(t, "admin@xiri.test", "password123")

	assertRedirect := func(t *testing.T, method, path, token, wantLocation string) {
		t.Helper()
		w := env.do(t, method, path, token, nil)
		if w.Code != http.StatusSeeOther {
			t.Fatalf("expected status 303 for %s, got %d: %s", path, w.Code, w.Body.String())
		}
		if got := w.Header().Get("Location"); got != wantLocation {
			t.Fatalf("expected redirect to %s, got %s", wantLocation, got)
		}
	}

	t.Run("unauthenticated pages redirect to login", func(t *testing.T) {
		assertRedirect(t, http.MethodGet, "/", "", domain.RouteLogin)
		assertRedirect(t, http.MethodGet, domain.RouteSales, "", domain.RouteLogin)
	})

	t.Run("sales reaches own desk and is bounced elsewhere", func(t *testing.T) {
		w := env.do(t, http.MethodGet, domain.RouteSales, salesToken, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200 on sales desk, got %d: %s", w.Code, w.Body.String())
		}

		assertRedirect(t, http.MethodGet, domain.RouteAdmin, salesToken, domain.RouteSales)
		assertRedirect(t, http.MethodGet, domain.RouteRecruiter, salesToken, domain.RouteSales)
		assertRedirect(t, http.MethodGet, "/", salesToken, domain.RouteSales)
	})

	t.Run("super admin reaches every desk", func(t *testing.T) {
		for _, path := range []string{domain.RouteAdmin, domain.RouteSales, domain.RouteRecruiter, domain.RouteAudit} {
			w := env.do(t, http.MethodGet, path, adminToken, nil)
			if w.Code != http.StatusOK {
				t.Fatalf("expected status 200 on %s, got %d: %s", path, w.Code, w.Body.String())
			}
		}
		assertRedirect(t, http.MethodGet, "/", adminToken, domain.RouteAdmin)
	})

	t.Run("unknown paths bounce to the root router", func(t *testing.T) {
		assertRedirect(t, http.MethodGet, "/reports/weekly", salesToken, "/")
	})

	t.Run("api guards respond with status codes", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/users", salesToken, nil)
		if w.Code != http.StatusForbidden {
			t.Fatalf("expected status 403, got %d: %s", w.Code, w.Body.String())
		}

		w = env.do(t, http.MethodGet, "/api/v1/users", adminToken, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		w = env.do(t, http.MethodGet, "/api/v1/users", "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected status 401, got %d: %s", w.Code, w.Body.String())
		}
	})
}
