package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/xiri/xiri-api/internal/adapter/http/dto"
	"github.com/xiri/xiri-api/internal/adapter/http/middleware"
	"github.com/xiri/xiri-api/internal/domain"
	"github.com/xiri/xiri-api/internal/infrastructure/metrics"
	"github.com/xiri/xiri-api/internal/usecase"
)

// AuditService defines the behavior needed by AuditHandler.
type AuditService interface {
	SubmitAudit(ctx context.Context, input usecase.SubmitAuditInput) (*domain.AuditReport, error)
}

// AuditHandler handles audit-report submissions.
type AuditHandler struct {
	auditUC AuditService
	metrics *metrics.Metrics
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(auditUC AuditService, m *metrics.Metrics) *AuditHandler {
	return &AuditHandler{auditUC: auditUC, metrics: m}
}

// Submit records an audit report for a job. The auditor is the
// authenticated identity.
func (h *AuditHandler) Submit(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.SubmitAuditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	report, err := h.auditUC.SubmitAudit(r.Context(), usecase.SubmitAuditInput{
		JobID:     req.JobID,
		AuditorID: identity.ID,
		Rating:    req.Rating,
		Notes:     req.Notes,
	})
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to submit audit", err.Error())

		return
	}

	if h.metrics != nil {
		h.metrics.AuditsSubmitted.WithLabelValues(strconv.Itoa(report.Rating)).Inc()
	}

	writeJSON(w, http.StatusCreated, dto.AuditReportFromDomain(report))
}
