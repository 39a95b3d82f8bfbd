package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/xiri/xiri-api/internal/adapter/http/dto"
	"github.com/xiri/xiri-api/internal/domain"
	"github.com/xiri/xiri-api/internal/infrastructure/metrics"
)

// JobService defines the behavior needed by JobHandler.
type JobService interface {
	GenerateNightlyJobs(ctx context.Context, territoryID string, date time.Time) ([]*domain.Job, error)
	ListNightlyJobs(ctx context.Context, territoryID string, date time.Time) ([]*domain.Job, error)
	CompleteJob(ctx context.Context, jobID string) (*domain.Job, error)
}

// JobHandler handles nightly-job HTTP requests.
type JobHandler struct {
	jobUC   JobService
	metrics *metrics.Metrics
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(jobUC JobService, m *metrics.Metrics) *JobHandler {
	return &JobHandler{jobUC: jobUC, metrics: m}
}

// Generate creates the nightly job batch for a territory. Date defaults to
// today.
func (h *JobHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req dto.GenerateJobsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if req.TerritoryID == "" {
		writeError(w, http.StatusBadRequest, "missing territory_id", "")
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	jobs, err := h.jobUC.GenerateNightlyJobs(r.Context(), req.TerritoryID, date)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to generate jobs", err.Error())

		return
	}

	if h.metrics != nil {
		h.metrics.JobsGenerated.Add(float64(len(jobs)))
	}

	writeJSON(w, http.StatusCreated, dto.ListJobsResponse{
		Jobs:  dto.JobsFromDomain(jobs),
		Total: int64(len(jobs)),
	})
}

// List lists the nightly jobs for a territory and date.
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	territoryID := r.URL.Query().Get("territory_id")
	if territoryID == "" {
		writeError(w, http.StatusBadRequest, "missing territory_id", "")
		return
	}

	date, err := parseDate(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	jobs, err := h.jobUC.ListNightlyJobs(r.Context(), territoryID, date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list jobs", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListJobsResponse{
		Jobs:  dto.JobsFromDomain(jobs),
		Total: int64(len(jobs)),
	})
}

// Complete marks a job as completed by its vendor.
func (h *JobHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing job ID", "")
		return
	}

	job, err := h.jobUC.CompleteJob(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to complete job", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.JobFromDomain(job))
}

// parseDate parses a YYYY-MM-DD value, defaulting to today (UTC) when
// empty.
func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Now().UTC(), nil
	}
	return time.Parse("2006-01-02", value)
}
