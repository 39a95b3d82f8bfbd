package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xiri/xiri-api/internal/domain"
	"github.com/xiri/xiri-api/internal/usecase"
)

// JobRepository implements nightly job persistence.
type JobRepository struct {
	pool *pgxpool.Pool
}

// NewJobRepository creates a new job repository.
func NewJobRepository(pool *pgxpool.Pool) *JobRepository {
	return &JobRepository{pool: pool}
}

// Create inserts a new job within a transaction.
func (r *JobRepository) Create(ctx context.Context, tx usecase.Transaction, job *domain.Job) error {
	query := `
		INSERT INTO jobs (id, vendor_id, territory_id, status, payout, scheduled_on, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := tx.(*Tx).PgxTx().Exec(ctx, query,
		job.ID,
		job.VendorID,
		job.TerritoryID,
		job.Status,
		job.Payout,
		job.ScheduledOn,
		job.CreatedAt,
		job.UpdatedAt,
	)

	return err
}

// GetByID retrieves a job by ID.
func (r *JobRepository) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	query := `
		SELECT j.id, j.vendor_id, j.territory_id, j.status, j.payout, j.scheduled_on, j.created_at, j.updated_at,
		       v.name, v.trade
		FROM jobs j
		JOIN vendors v ON v.id = j.vendor_id
		WHERE j.id = $1
	`

	job, err := scanJob(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrJobNotFound
	}

	return job, err
}

// GetByIDForUpdate retrieves a job with a row lock, so a concurrent audit of
// the same job blocks until this transaction settles.
func (r *JobRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Job, error) {
	query := `
		SELECT id, vendor_id, territory_id, status, payout, scheduled_on, created_at, updated_at, '', ''
		FROM jobs
		WHERE id = $1
		FOR UPDATE
	`

	job, err := scanJob(tx.(*Tx).PgxTx().QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrJobNotFound
	}

	return job, err
}

// ListForDate retrieves a territory's jobs scheduled for a date.
func (r *JobRepository) ListForDate(ctx context.Context, territoryID string, date time.Time) ([]*domain.Job, error) {
	query := `
		SELECT j.id, j.vendor_id, j.territory_id, j.status, j.payout, j.scheduled_on, j.created_at, j.updated_at,
		       v.name, v.trade
		FROM jobs j
		JOIN vendors v ON v.id = j.vendor_id
		WHERE j.territory_id = $1 AND j.scheduled_on = $2
		ORDER BY v.name
	`

	rows, err := r.pool.Query(ctx, query, territoryID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []*domain.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	return jobs, rows.Err()
}

// UpdateStatus moves a job to a new status within a transaction.
func (r *JobRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.JobStatus, updatedAt time.Time) error {
	query := `UPDATE jobs SET status = $2, updated_at = $3 WHERE id = $1`

	tag, err := tx.(*Tx).PgxTx().Exec(ctx, query, id, status, updatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrJobNotFound
	}

	return nil
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var job domain.Job
	err := row.Scan(
		&job.ID,
		&job.VendorID,
		&job.TerritoryID,
		&job.Status,
		&job.Payout,
		&job.ScheduledOn,
		&job.CreatedAt,
		&job.UpdatedAt,
		&job.VendorName,
		&job.Trade,
	)
	if err != nil {
		return nil, err
	}
	return &job, nil
}
