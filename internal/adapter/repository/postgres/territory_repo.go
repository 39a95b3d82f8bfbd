package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xiri/xiri-api/internal/domain"
)

// TerritoryRepository implements territory persistence.
type TerritoryRepository struct {
	pool *pgxpool.Pool
}

// NewTerritoryRepository creates a new territory repository.
func NewTerritoryRepository(pool *pgxpool.Pool) *TerritoryRepository {
	return &TerritoryRepository{pool: pool}
}

// GetByID retrieves a territory by ID.
func (r *TerritoryRepository) GetByID(ctx context.Context, id string) (*domain.Territory, error) {
	query := `SELECT id, name, zip_codes FROM territories WHERE id = $1`

	var territory domain.Territory
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&territory.ID,
		&territory.Name,
		&territory.ZipCodes,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTerritoryNotFound
	}

	return &territory, err
}

// GetByZipCode retrieves the territory covering a zip code.
func (r *TerritoryRepository) GetByZipCode(ctx context.Context, zipCode string) (*domain.Territory, error) {
	query := `SELECT id, name, zip_codes FROM territories WHERE $1 = ANY(zip_codes)`

	var territory domain.Territory
	err := r.pool.QueryRow(ctx, query, zipCode).Scan(
		&territory.ID,
		&territory.Name,
		&territory.ZipCodes,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTerritoryNotFound
	}

	return &territory, err
}

// List retrieves all territories.
func (r *TerritoryRepository) List(ctx context.Context) ([]*domain.Territory, error) {
	query := `SELECT id, name, zip_codes FROM territories ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var territories []*domain.Territory
	for rows.Next() {
		var territory domain.Territory
		err := rows.Scan(
			&territory.ID,
			&territory.Name,
			&territory.ZipCodes,
		)
		if err != nil {
			return nil, err
		}
		territories = append(territories, &territory)
	}

	return territories, rows.Err()
}
