package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xiri/xiri-api/internal/adapter/http/dto"
	"github.com/xiri/xiri-api/internal/adapter/http/middleware"
	"github.com/xiri/xiri-api/internal/domain"
	"github.com/xiri/xiri-api/internal/infrastructure/metrics"
	"github.com/xiri/xiri-api/internal/usecase"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error)
	GetAccount(ctx context.Context, id string) (*usecase.AccountDetail, error)
	ListAccounts(ctx context.Context, filter usecase.AccountFilter) ([]*domain.Account, error)
	MoveStage(ctx context.Context, id string, stage domain.AccountStage) (*domain.Account, error)
	AddContact(ctx context.Context, input usecase.AddContactInput) (*domain.Contact, error)
}

// AccountHandler handles prospect-account HTTP requests.
type AccountHandler struct {
	accountUC AccountService
	metrics   *metrics.Metrics
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC AccountService, m *metrics.Metrics) *AccountHandler {
	return &AccountHandler{accountUC: accountUC, metrics: m}
}

// Create creates a new prospect account owned by the caller.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	ownerID := ""
	if identity, ok := middleware.GetIdentityFromContext(r.Context()); ok {
		ownerID = identity.ID
	}

	account, err := h.accountUC.CreateAccount(r.Context(), usecase.CreateAccountInput{
		Name:        req.Name,
		TerritoryID: req.TerritoryID,
		ZipCode:     req.ZipCode,
		OwnerID:     ownerID,
	})
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create account", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.AccountFromDomain(account))
}

// Get retrieves an account with its contacts.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	detail, err := h.accountUC.GetAccount(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get account", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.AccountDetailFromUseCase(detail))
}

// List lists accounts, optionally filtered by territory, owner or stage.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := usecase.AccountFilter{
		TerritoryID: r.URL.Query().Get("territory_id"),
		OwnerID:     r.URL.Query().Get("owner_id"),
		Stage:       domain.AccountStage(r.URL.Query().Get("stage")),
		Limit:       parseIntQuery(r, "limit", domain.DefaultPageLimit),
		Offset:      parseIntQuery(r, "offset", 0),
	}

	accounts, err := h.accountUC.ListAccounts(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list accounts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListAccountsResponse{
		Accounts: dto.AccountsFromDomain(accounts),
		Total:    int64(len(accounts)),
	})
}

// MoveStage moves an account to a new pipeline stage.
func (h *AccountHandler) MoveStage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	var req dto.MoveStageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accountUC.MoveStage(r.Context(), id, domain.AccountStage(req.Stage))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to move stage", err.Error())

		return
	}

	if h.metrics != nil {
		h.metrics.AccountMoves.WithLabelValues(string(account.Stage)).Inc()
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// AddContact attaches a contact to an account.
func (h *AccountHandler) AddContact(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	var req dto.AddContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	contact, err := h.accountUC.AddContact(r.Context(), req.ToUseCaseInput(id))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to add contact", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.ContactFromDomain(contact))
}
