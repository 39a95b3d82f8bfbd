package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xiri/xiri-api/internal/domain"
	"github.com/xiri/xiri-api/internal/usecase"
)

// VendorRepository implements vendor persistence.
type VendorRepository struct {
	pool *pgxpool.Pool
}

// NewVendorRepository creates a new vendor repository.
func NewVendorRepository(pool *pgxpool.Pool) *VendorRepository {
	return &VendorRepository{pool: pool}
}

const vendorColumns = `id, name, trade, zip_code, COALESCE(territory_id, ''), phone, email, rating, vetted, created_at, updated_at`

// Create inserts a new vendor. A vendor is unique per name, trade and zip;
// re-sourcing the same vendor is a conflict, not a duplicate row.
func (r *VendorRepository) Create(ctx context.Context, vendor *domain.Vendor) error {
	query := `
		INSERT INTO vendors (id, name, trade, zip_code, territory_id, phone, email, rating, vetted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		vendor.ID,
		vendor.Name,
		vendor.Trade,
		vendor.ZipCode,
		vendor.TerritoryID,
		vendor.Phone,
		vendor.Email,
		vendor.Rating,
		vendor.Vetted,
		vendor.CreatedAt,
		vendor.UpdatedAt,
	)

	return err
}

// GetByID retrieves a vendor by ID.
func (r *VendorRepository) GetByID(ctx context.Context, id string) (*domain.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE id = $1`

	vendor, err := scanVendor(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrVendorNotFound
	}

	return vendor, err
}

// List retrieves vendors matching the filter.
func (r *VendorRepository) List(ctx context.Context, filter usecase.VendorFilter) ([]*domain.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE 1=1`
	args := []any{}

	if filter.TerritoryID != "" {
		args = append(args, filter.TerritoryID)
		query += fmt.Sprintf(" AND territory_id = $%d", len(args))
	}
	if filter.Trade != "" {
		args = append(args, filter.Trade)
		query += fmt.Sprintf(" AND trade = $%d", len(args))
	}
	if filter.ZipCode != "" {
		args = append(args, filter.ZipCode)
		query += fmt.Sprintf(" AND zip_code = $%d", len(args))
	}

	args = append(args, filter.Limit)
	query += fmt.Sprintf(" ORDER BY name LIMIT $%d", len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vendors []*domain.Vendor
	for rows.Next() {
		vendor, err := scanVendor(rows)
		if err != nil {
			return nil, err
		}
		vendors = append(vendors, vendor)
	}

	return vendors, rows.Err()
}

// RefreshRating recomputes the vendor's running average from its audit
// reports, inside the caller's transaction so the rating moves with the
// report that changed it.
func (r *VendorRepository) RefreshRating(ctx context.Context, tx usecase.Transaction, vendorID string) error {
	query := `
		UPDATE vendors
		SET rating = COALESCE((
			SELECT AVG(ar.rating)
			FROM audit_reports ar
			JOIN jobs j ON j.id = ar.job_id
			WHERE j.vendor_id = $1
		), 0), updated_at = NOW()
		WHERE id = $1
	`

	_, err := tx.(*Tx).PgxTx().Exec(ctx, query, vendorID)
	return err
}

func scanVendor(row pgx.Row) (*domain.Vendor, error) {
	var vendor domain.Vendor
	err := row.Scan(
		&vendor.ID,
		&vendor.Name,
		&vendor.Trade,
		&vendor.ZipCode,
		&vendor.TerritoryID,
		&vendor.Phone,
		&vendor.Email,
		&vendor.Rating,
		&vendor.Vetted,
		&vendor.CreatedAt,
		&vendor.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}
