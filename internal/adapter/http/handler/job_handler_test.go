package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiri/xiri-api/internal/adapter/http/dto"
	"github.com/xiri/xiri-api/internal/domain"
)

type jobServiceStub struct {
	generateFn func(ctx context.Context, territoryID string, date time.Time) ([]*domain.Job, error)
	listFn     func(ctx context.Context, territoryID string, date time.Time) ([]*domain.Job, error)
	completeFn func(ctx context.Context, jobID string) (*domain.Job, error)
}

func (s *jobServiceStub) GenerateNightlyJobs(ctx context.Context, territoryID string, date time.Time) ([]*domain.Job, error) {
	return s.generateFn(ctx, territoryID, date)
}

func (s *jobServiceStub) ListNightlyJobs(ctx context.Context, territoryID string, date time.Time) ([]*domain.Job, error) {
	return s.listFn(ctx, territoryID, date)
}

func (s *jobServiceStub) CompleteJob(ctx context.Context, jobID string) (*domain.Job, error) {
	return s.completeFn(ctx, jobID)
}

func TestJobHandler_Generate(t *testing.T) {
	var gotTerritory string
	var gotDate time.Time
	h := NewJobHandler(&jobServiceStub{
		generateFn: func(ctx context.Context, territoryID string, date time.Time) ([]*domain.Job, error) {
			gotTerritory = territoryID
			gotDate = date
			return []*domain.Job{
				{ID: "job-1", Status: domain.JobStatusAssigned, Payout: decimal.RequireFromString("150.00")},
				{ID: "job-2", Status: domain.JobStatusAssigned, Payout: decimal.RequireFromString("150.00")},
			}, nil
		},
	}, nil)

	body, _ := json.Marshal(dto.GenerateJobsRequest{TerritoryID: "ter-1", Date: "2026-08-29"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs/generate", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Generate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotTerritory != "ter-1" {
		t.Fatalf("expected territory ter-1, got %s", gotTerritory)
	}
	if gotDate.Format("2006-01-02") != "2026-08-29" {
		t.Fatalf("expected parsed date, got %v", gotDate)
	}

	var resp dto.ListJobsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 2 {
		t.Fatalf("expected 2 jobs, got %d", resp.Total)
	}
}

func TestJobHandler_Generate_MissingTerritory(t *testing.T) {
	h := NewJobHandler(&jobServiceStub{}, nil)

	body, _ := json.Marshal(dto.GenerateJobsRequest{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs/generate", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Generate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestJobHandler_List_RequiresTerritory(t *testing.T) {
	h := NewJobHandler(&jobServiceStub{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestJobHandler_Complete(t *testing.T) {
	h := NewJobHandler(&jobServiceStub{
		completeFn: func(ctx context.Context, jobID string) (*domain.Job, error) {
			if jobID != "job-1" {
				return nil, domain.ErrJobNotFound
			}
			return &domain.Job{ID: "job-1", Status: domain.JobStatusCompleted}, nil
		},
	}, nil)

	req := withURLParam(httptest.NewRequest(http.MethodPost, "/api/v1/jobs/job-1/complete", nil), "id", "job-1")
	rec := httptest.NewRecorder()

	h.Complete(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.JobResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != domain.JobStatusCompleted {
		t.Fatalf("expected completed status, got %s", resp.Status)
	}
}

func TestJobHandler_Complete_NotFound(t *testing.T) {
	h := NewJobHandler(&jobServiceStub{
		completeFn: func(ctx context.Context, jobID string) (*domain.Job, error) {
			return nil, domain.ErrJobNotFound
		},
	}, nil)

	req := withURLParam(httptest.NewRequest(http.MethodPost, "/api/v1/jobs/missing/complete", nil), "id", "missing")
	rec := httptest.NewRecorder()

	h.Complete(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
