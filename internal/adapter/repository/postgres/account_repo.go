package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xiri/xiri-api/internal/domain"
	"github.com/xiri/xiri-api/internal/usecase"
)

// AccountRepository implements prospect account persistence.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new account repository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

const accountColumns = `id, name, COALESCE(territory_id, ''), COALESCE(zip_code, ''), stage, COALESCE(owner_id, ''), created_at, updated_at`

// Create inserts a new account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (id, name, territory_id, zip_code, stage, owner_id, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, NULLIF($6, ''), $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		account.ID,
		account.Name,
		account.TerritoryID,
		account.ZipCode,
		account.Stage,
		account.OwnerID,
		account.CreatedAt,
		account.UpdatedAt,
	)

	return err
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	account, err := scanAccount(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAccountNotFound
	}

	return account, err
}

// List retrieves accounts matching the filter.
func (r *AccountRepository) List(ctx context.Context, filter usecase.AccountFilter) ([]*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE 1=1`
	args := []any{}

	if filter.TerritoryID != "" {
		args = append(args, filter.TerritoryID)
		query += fmt.Sprintf(" AND territory_id = $%d", len(args))
	}
	if filter.OwnerID != "" {
		args = append(args, filter.OwnerID)
		query += fmt.Sprintf(" AND owner_id = $%d", len(args))
	}
	if filter.Stage != "" {
		args = append(args, filter.Stage)
		query += fmt.Sprintf(" AND stage = $%d", len(args))
	}

	args = append(args, filter.Limit)
	query += fmt.Sprintf(" ORDER BY updated_at DESC LIMIT $%d", len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

// UpdateStage moves an account to a new pipeline stage.
func (r *AccountRepository) UpdateStage(ctx context.Context, id string, stage domain.AccountStage, updatedAt time.Time) error {
	query := `UPDATE accounts SET stage = $2, updated_at = $3 WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id, stage, updatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

// AddContact attaches a contact to an account.
func (r *AccountRepository) AddContact(ctx context.Context, contact *domain.Contact) error {
	query := `
		INSERT INTO contacts (id, account_id, name, title, email, phone, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		contact.ID,
		contact.AccountID,
		contact.Name,
		contact.Title,
		contact.Email,
		contact.Phone,
		contact.CreatedAt,
	)

	return err
}

// ListContacts retrieves an account's contacts.
func (r *AccountRepository) ListContacts(ctx context.Context, accountID string) ([]*domain.Contact, error) {
	query := `
		SELECT id, account_id, name, title, email, phone, created_at
		FROM contacts
		WHERE account_id = $1
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []*domain.Contact
	for rows.Next() {
		var contact domain.Contact
		err := rows.Scan(
			&contact.ID,
			&contact.AccountID,
			&contact.Name,
			&contact.Title,
			&contact.Email,
			&contact.Phone,
			&contact.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, &contact)
	}

	return contacts, rows.Err()
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var account domain.Account
	err := row.Scan(
		&account.ID,
		&account.Name,
		&account.TerritoryID,
		&account.ZipCode,
		&account.Stage,
		&account.OwnerID,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &account, nil
}
