package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xiri/xiri-api/internal/adapter/http/dto"
	"github.com/xiri/xiri-api/internal/domain"
)

// TerritoryService defines the behavior needed by TerritoryHandler.
type TerritoryService interface {
	GetByID(ctx context.Context, id string) (*domain.Territory, error)
	List(ctx context.Context) ([]*domain.Territory, error)
}

// TerritoryHandler handles territory lookups.
type TerritoryHandler struct {
	territories TerritoryService
}

// NewTerritoryHandler creates a new TerritoryHandler.
func NewTerritoryHandler(territories TerritoryService) *TerritoryHandler {
	return &TerritoryHandler{territories: territories}
}

// Get retrieves a territory by ID.
func (h *TerritoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing territory ID", "")
		return
	}

	territory, err := h.territories.GetByID(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get territory", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.TerritoryFromDomain(territory))
}

// List lists all territories.
func (h *TerritoryHandler) List(w http.ResponseWriter, r *http.Request) {
	territories, err := h.territories.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list territories", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListTerritoriesResponse{
		Territories: dto.TerritoriesFromDomain(territories),
	})
}
