package usecase

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/xiri/xiri-api/internal/domain"
)

// JobUseCase handles nightly job generation and auditing.
type JobUseCase struct {
	txManager  TransactionManager
	jobRepo    JobRepository
	vendorRepo VendorRepository
	reportRepo AuditReportRepository
	outbox     OutboxRepository
	idGen      IDGenerator
}

// NewJobUseCase creates a new job use case.
func NewJobUseCase(
	txManager TransactionManager,
	jobRepo JobRepository,
	vendorRepo VendorRepository,
	reportRepo AuditReportRepository,
	outbox OutboxRepository,
	idGen IDGenerator,
) *JobUseCase {
	return &JobUseCase{
		txManager:  txManager,
		jobRepo:    jobRepo,
		vendorRepo: vendorRepo,
		reportRepo: reportRepo,
		outbox:     outbox,
		idGen:      idGen,
	}
}

// GenerateNightlyJobs creates one assigned job per vetted vendor in the
// territory for the given date. The batch is atomic.
func (uc *JobUseCase) GenerateNightlyJobs(ctx context.Context, territoryID string, date time.Time) ([]*domain.Job, error) {
	vendors, err := uc.vendorRepo.List(ctx, VendorFilter{
		TerritoryID: territoryID,
		Limit:       domain.MaxPageLimit,
	})
	if err != nil {
		return nil, err
	}

	payout, err := decimal.NewFromString(DefaultJobPayout)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()
	day := date.Truncate(24 * time.Hour)

	jobs := make([]*domain.Job, 0, len(vendors))
	for _, vendor := range vendors {
		if !vendor.Vetted {
			continue
		}
		job := &domain.Job{
			ID:          uc.idGen.Generate(),
			VendorID:    vendor.ID,
			TerritoryID: territoryID,
			Status:      domain.JobStatusAssigned,
			Payout:      payout,
			ScheduledOn: day,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := uc.jobRepo.Create(ctx, tx, job); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   territoryID,
		AggregateType: domain.AggregateTypeJob,
		EventType:     domain.EventTypeJobsGenerated,
		Payload: map[string]any{
			"territory_id": territoryID,
			"date":         day.Format(time.DateOnly),
			"count":        len(jobs),
		},
		CreatedAt: now,
	}
	if err := uc.outbox.CreateTx(ctx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return jobs, nil
}

// ListNightlyJobs lists a territory's jobs for a date.
func (uc *JobUseCase) ListNightlyJobs(ctx context.Context, territoryID string, date time.Time) ([]*domain.Job, error) {
	return uc.jobRepo.ListForDate(ctx, territoryID, date.Truncate(24*time.Hour))
}

// CompleteJob marks an assigned job completed.
func (uc *JobUseCase) CompleteJob(ctx context.Context, jobID string) (*domain.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	job, err := uc.jobRepo.GetByIDForUpdate(ctx, tx, jobID)
	if err != nil {
		return nil, err
	}

	if job.Status != domain.JobStatusAssigned {
		return nil, domain.ErrJobNotAssigned
	}

	now := time.Now().UTC()
	if err := uc.jobRepo.UpdateStatus(ctx, tx, job.ID, domain.JobStatusCompleted, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	job.Status = domain.JobStatusCompleted
	job.UpdatedAt = now
	return job, nil
}

// SubmitAuditInput represents input for submitting an audit report.
type SubmitAuditInput struct {
	JobID     string
	AuditorID string
	Rating    int
	Notes     string
}

// SubmitAudit records an auditor's inspection of a job: the report is
// created, the job flips to audited and the vendor's rating is recomputed,
// all in one transaction. A job can only be audited once.
func (uc *JobUseCase) SubmitAudit(ctx context.Context, input SubmitAuditInput) (*domain.AuditReport, error) {
	if err := domain.ValidateRating(input.Rating); err != nil {
		return nil, err
	}

	notes := truncateNotes(strings.TrimSpace(input.Notes))

	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	job, err := uc.jobRepo.GetByIDForUpdate(ctx, tx, input.JobID)
	if err != nil {
		return nil, err
	}

	if !job.CanAudit() {
		return nil, domain.ErrJobAlreadyAudited
	}

	now := time.Now().UTC()
	report := &domain.AuditReport{
		ID:        uc.idGen.Generate(),
		JobID:     job.ID,
		AuditorID: input.AuditorID,
		Rating:    input.Rating,
		Notes:     notes,
		CreatedAt: now,
	}

	if err := uc.reportRepo.Create(ctx, tx, report); err != nil {
		return nil, err
	}

	if err := uc.jobRepo.UpdateStatus(ctx, tx, job.ID, domain.JobStatusAudited, now); err != nil {
		return nil, err
	}

	if err := uc.vendorRepo.RefreshRating(ctx, tx, job.VendorID); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   job.ID,
		AggregateType: domain.AggregateTypeJob,
		EventType:     domain.EventTypeAuditSubmitted,
		Payload: map[string]any{
			"job_id":     job.ID,
			"vendor_id":  job.VendorID,
			"auditor_id": input.AuditorID,
			"rating":     input.Rating,
		},
		CreatedAt: now,
	}
	if err := uc.outbox.CreateTx(ctx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return report, nil
}

// truncateNotes caps notes at MaxNotesLength bytes without splitting a rune.
func truncateNotes(notes string) string {
	if len(notes) <= domain.MaxNotesLength {
		return notes
	}

	cut := domain.MaxNotesLength
	for cut > 0 && !utf8.RuneStart(notes[cut]) {
		cut--
	}
	return notes[:cut]
}
