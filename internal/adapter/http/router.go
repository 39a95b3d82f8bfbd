package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/xiri/xiri-api/internal/adapter/http/handler"
	"github.com/xiri/xiri-api/internal/adapter/http/middleware"
	"github.com/xiri/xiri-api/internal/domain"
	"github.com/xiri/xiri-api/internal/infrastructure/metrics"
	"github.com/xiri/xiri-api/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AuthHandler      *handler.AuthHandler
	PageHandler      *handler.PageHandler
	UserHandler      *handler.UserHandler
	VendorHandler    *handler.VendorHandler
	JobHandler       *handler.JobHandler
	AuditHandler     *handler.AuditHandler
	AccountHandler   *handler.AccountHandler
	TerritoryHandler *handler.TerritoryHandler
	HealthHandler    *handler.HealthHandler
	Authenticator    *middleware.Authenticator
	IdempotencyStore usecase.IdempotencyStore
	LoginLimiter     *middleware.RateLimiter
	Metrics          *metrics.Metrics
	Logger           zerolog.Logger
}

// NewRouter creates a new HTTP router. Identity resolution always runs
// before any guard: the Authenticator sits ahead of the route guards in
// every protected chain.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	guard := middleware.NewGuard(cfg.Metrics)

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Pages. /login is the only public one; every other navigation resolves
	// its identity first and is then evaluated against the route's role set.
	r.Get(domain.RouteLogin, cfg.PageHandler.Login)

	r.Group(func(r chi.Router) {
		r.Use(cfg.Authenticator.Page)

		r.Get("/", cfg.PageHandler.Root)
		r.With(guard.Pages(domain.RoleSuperAdmin)).
			Get(domain.RouteAdmin, cfg.PageHandler.Admin)
		r.With(guard.Pages(domain.RoleSales)).
			Get(domain.RouteSales, cfg.PageHandler.Sales)
		r.With(guard.Pages(domain.RoleRecruiter)).
			Get(domain.RouteRecruiter, cfg.PageHandler.Recruiter)
		r.With(guard.Pages(domain.RoleAuditor, domain.RoleFacilityManager)).
			Get(domain.RouteAudit, cfg.PageHandler.Audit)
		r.With(guard.Pages(domain.RoleSales, domain.RoleRecruiter, domain.RoleFacilityManager, domain.RoleSuperAdmin)).
			Get("/account/{id}", cfg.PageHandler.Account)
	})

	// Unmatched paths replace the navigation with the root resolver.
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/", http.StatusSeeOther)
	})

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Sign-in is public and throttled; sign-out is optimistic and only
		// needs whatever credential is still around.
		if cfg.LoginLimiter != nil {
			r.With(cfg.LoginLimiter.Limit).Post("/session", cfg.AuthHandler.Login)
		} else {
			r.Post("/session", cfg.AuthHandler.Login)
		}
		r.With(cfg.Authenticator.Optional).Delete("/session", cfg.AuthHandler.Logout)

		r.Group(func(r chi.Router) {
			r.Use(cfg.Authenticator.API)

			// Idempotency middleware for mutating requests
			if cfg.IdempotencyStore != nil {
				idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
				r.Use(idempotencyMiddleware.Wrap)
			}

			r.Get("/session", cfg.AuthHandler.Me)
			r.Post("/session/view", cfg.AuthHandler.SwitchView)

			// Users (admin only)
			r.Route("/users", func(r chi.Router) {
				r.Use(guard.API(domain.RoleSuperAdmin))
				r.Post("/", cfg.UserHandler.Create)
				r.Get("/", cfg.UserHandler.List)
				r.Get("/{id}", cfg.UserHandler.Get)
				r.Patch("/{id}", cfg.UserHandler.Update)
				r.Delete("/{id}", cfg.UserHandler.Delete)
			})

			// Vendors (recruiter view)
			r.Route("/vendors", func(r chi.Router) {
				r.Use(guard.API(domain.RoleRecruiter))
				r.Post("/", cfg.VendorHandler.Create)
				r.Get("/", cfg.VendorHandler.List)
				r.Post("/scrape", cfg.VendorHandler.Scrape)
				r.Get("/{id}", cfg.VendorHandler.Get)
			})

			// Jobs and audits (auditor view)
			r.Route("/jobs", func(r chi.Router) {
				r.Use(guard.API(domain.RoleAuditor, domain.RoleFacilityManager))
				r.Get("/", cfg.JobHandler.List)
				r.Post("/generate", cfg.JobHandler.Generate)
				r.Post("/{id}/complete", cfg.JobHandler.Complete)
			})
			r.With(guard.API(domain.RoleAuditor, domain.RoleFacilityManager)).
				Post("/audits", cfg.AuditHandler.Submit)

			// Prospect accounts (sales view; the detail page role set applies)
			r.Route("/accounts", func(r chi.Router) {
				r.Use(guard.API(domain.RoleSales, domain.RoleRecruiter, domain.RoleFacilityManager, domain.RoleSuperAdmin))
				r.Post("/", cfg.AccountHandler.Create)
				r.Get("/", cfg.AccountHandler.List)
				r.Get("/{id}", cfg.AccountHandler.Get)
				r.Post("/{id}/stage", cfg.AccountHandler.MoveStage)
				r.Post("/{id}/contacts", cfg.AccountHandler.AddContact)
			})

			// Territories (any authenticated identity)
			r.Route("/territories", func(r chi.Router) {
				r.Get("/", cfg.TerritoryHandler.List)
				r.Get("/{id}", cfg.TerritoryHandler.Get)
			})
		})
	})

	return r
}
