package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xiri/xiri-api/internal/domain"
	"github.com/xiri/xiri-api/internal/usecase"
)

// AuditReportRepository implements audit report persistence.
type AuditReportRepository struct {
	pool *pgxpool.Pool
}

// NewAuditReportRepository creates a new audit report repository.
func NewAuditReportRepository(pool *pgxpool.Pool) *AuditReportRepository {
	return &AuditReportRepository{pool: pool}
}

// Create inserts a report within a transaction. The unique index on job_id
// backs the one-audit-per-job rule at the storage layer.
func (r *AuditReportRepository) Create(ctx context.Context, tx usecase.Transaction, report *domain.AuditReport) error {
	query := `
		INSERT INTO audit_reports (id, job_id, auditor_id, rating, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := tx.(*Tx).PgxTx().Exec(ctx, query,
		report.ID,
		report.JobID,
		report.AuditorID,
		report.Rating,
		report.Notes,
		report.CreatedAt,
	)

	return err
}

// GetByJob retrieves the report for a job.
func (r *AuditReportRepository) GetByJob(ctx context.Context, jobID string) (*domain.AuditReport, error) {
	query := `
		SELECT id, job_id, auditor_id, rating, notes, created_at
		FROM audit_reports
		WHERE job_id = $1
	`

	var report domain.AuditReport
	err := r.pool.QueryRow(ctx, query, jobID).Scan(
		&report.ID,
		&report.JobID,
		&report.AuditorID,
		&report.Rating,
		&report.Notes,
		&report.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrJobNotFound
	}

	return &report, err
}

// ListByAuditor retrieves an auditor's reports, newest first.
func (r *AuditReportRepository) ListByAuditor(ctx context.Context, auditorID string, limit, offset int) ([]*domain.AuditReport, error) {
	query := `
		SELECT id, job_id, auditor_id, rating, notes, created_at
		FROM audit_reports
		WHERE auditor_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, auditorID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*domain.AuditReport
	for rows.Next() {
		var report domain.AuditReport
		err := rows.Scan(
			&report.ID,
			&report.JobID,
			&report.AuditorID,
			&report.Rating,
			&report.Notes,
			&report.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		reports = append(reports, &report)
	}

	return reports, rows.Err()
}
