package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/xiri/xiri-api/internal/adapter/http/dto"
	"github.com/xiri/xiri-api/internal/adapter/http/middleware"
	"github.com/xiri/xiri-api/internal/domain"
	"github.com/xiri/xiri-api/internal/usecase"
)

// PageHandler serves the payloads the gated pages bind: each endpoint
// returns the identity it renders as plus the data for its view. Rendering
// itself happens client-side.
type PageHandler struct {
	users    UserService
	vendors  VendorService
	jobs     JobService
	accounts AccountService
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(users UserService, vendors VendorService, jobs JobService, accounts AccountService) *PageHandler {
	return &PageHandler{
		users:    users,
		vendors:  vendors,
		jobs:     jobs,
		accounts: accounts,
	}
}

// Login is the only public page.
func (h *PageHandler) Login(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.PageResponse{Page: "login"})
}

// Root replaces the navigation with the effective role's landing route.
func (h *PageHandler) Root(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, domain.RouteLogin, http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, identity.LandingRoute(), http.StatusSeeOther)
}

// Admin serves the user administration page.
func (h *PageHandler) Admin(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentityFromContext(r.Context())

	users, err := h.users.ListUsers(r.Context(), domain.DefaultPageLimit, 0)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load admin page", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PageResponse{
		Page:     "admin",
		Identity: dto.IdentityFromDomain(identity),
		Data:     dto.UsersFromDomain(users),
	})
}

// Sales serves the prospect pipeline page, scoped to the caller's
// territory.
func (h *PageHandler) Sales(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentityFromContext(r.Context())

	accounts, err := h.accounts.ListAccounts(r.Context(), usecase.AccountFilter{
		TerritoryID: identity.TerritoryID,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load sales page", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PageResponse{
		Page:     "sales",
		Identity: dto.IdentityFromDomain(identity),
		Data:     dto.AccountsFromDomain(accounts),
	})
}

// Recruiter serves the vendor sourcing page.
func (h *PageHandler) Recruiter(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentityFromContext(r.Context())

	vendors, err := h.vendors.ListVendors(r.Context(), usecase.VendorFilter{
		TerritoryID: identity.TerritoryID,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load recruiter page", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PageResponse{
		Page:     "recruiter",
		Identity: dto.IdentityFromDomain(identity),
		Data:     dto.VendorsFromDomain(vendors),
	})
}

// Audit serves tonight's job board.
func (h *PageHandler) Audit(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentityFromContext(r.Context())

	jobs, err := h.jobs.ListNightlyJobs(r.Context(), identity.TerritoryID, time.Now().UTC())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load audit page", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PageResponse{
		Page:     "audit",
		Identity: dto.IdentityFromDomain(identity),
		Data:     dto.JobsFromDomain(jobs),
	})
}

// Account serves the account detail page.
func (h *PageHandler) Account(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentityFromContext(r.Context())

	id := chi.URLParam(r, "id")
	detail, err := h.accounts.GetAccount(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to load account page", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.PageResponse{
		Page:     "account",
		Identity: dto.IdentityFromDomain(identity),
		Data:     dto.AccountDetailFromUseCase(detail),
	})
}
