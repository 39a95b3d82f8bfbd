package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xiri/xiri-api/internal/adapter/http/dto"
	"github.com/xiri/xiri-api/internal/domain"
	"github.com/xiri/xiri-api/internal/infrastructure/metrics"
	"github.com/xiri/xiri-api/internal/usecase"
)

// VendorService defines the behavior needed by VendorHandler.
type VendorService interface {
	CreateVendor(ctx context.Context, input usecase.CreateVendorInput) (*domain.Vendor, error)
	GetVendor(ctx context.Context, id string) (*domain.Vendor, error)
	ListVendors(ctx context.Context, filter usecase.VendorFilter) ([]*domain.Vendor, error)
	SourceVendors(ctx context.Context, zipCode, trade string) (*usecase.SourceResult, error)
}

// VendorHandler handles vendor-related HTTP requests.
type VendorHandler struct {
	vendorUC VendorService
	metrics  *metrics.Metrics
}

// NewVendorHandler creates a new VendorHandler.
func NewVendorHandler(vendorUC VendorService, m *metrics.Metrics) *VendorHandler {
	return &VendorHandler{vendorUC: vendorUC, metrics: m}
}

// Create creates a new vendor.
func (h *VendorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateVendorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	vendor, err := h.vendorUC.CreateVendor(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create vendor", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.VendorFromDomain(vendor))
}

// Get retrieves a vendor by ID.
func (h *VendorHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing vendor ID", "")
		return
	}

	vendor, err := h.vendorUC.GetVendor(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get vendor", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.VendorFromDomain(vendor))
}

// List lists vendors, optionally filtered by territory, trade or zip code.
func (h *VendorHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := usecase.VendorFilter{
		TerritoryID: r.URL.Query().Get("territory_id"),
		Trade:       r.URL.Query().Get("trade"),
		ZipCode:     r.URL.Query().Get("zip_code"),
		Limit:       parseIntQuery(r, "limit", domain.DefaultPageLimit),
		Offset:      parseIntQuery(r, "offset", 0),
	}

	vendors, err := h.vendorUC.ListVendors(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list vendors", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListVendorsResponse{
		Vendors: dto.VendorsFromDomain(vendors),
		Total:   int64(len(vendors)),
	})
}

// Scrape runs a sourcing pass for a zip code and trade.
func (h *VendorHandler) Scrape(w http.ResponseWriter, r *http.Request) {
	var req dto.ScrapeVendorsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.vendorUC.SourceVendors(r.Context(), req.ZipCode, req.Trade)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to source vendors", err.Error())

		return
	}

	if h.metrics != nil {
		h.metrics.VendorsSourced.Add(float64(result.Imported))
	}

	writeJSON(w, http.StatusOK, dto.SourceResultFromUseCase(result))
}
