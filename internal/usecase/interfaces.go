package usecase

import (
	"context"
	"time"

	"github.com/xiri/xiri-api/internal/domain"
)

// UserRepository defines data access for user profiles.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]*domain.User, error)
}

// SessionStore defines storage for server-side sessions. The session record
// is the single writer-owned home of an identity's view mode.
type SessionStore interface {
	Create(ctx context.Context, session *domain.Session) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	SetViewMode(ctx context.Context, id string, mode domain.ViewMode) error
	Delete(ctx context.Context, id string) error
}

// VendorFilter narrows vendor listings.
type VendorFilter struct {
	TerritoryID string
	Trade       string
	ZipCode     string
	Limit       int
	Offset      int
}

// VendorRepository defines data access for vendors.
type VendorRepository interface {
	Create(ctx context.Context, vendor *domain.Vendor) error
	GetByID(ctx context.Context, id string) (*domain.Vendor, error)
	List(ctx context.Context, filter VendorFilter) ([]*domain.Vendor, error)
	// RefreshRating recomputes the vendor's rating from its audit reports.
	RefreshRating(ctx context.Context, tx Transaction, vendorID string) error
}

// VendorDirectory is the external sourcing collaborator recruiters scrape
// vendors from. Implementations are best-effort; callers degrade to the
// local vendor store when the directory is unavailable.
type VendorDirectory interface {
	Search(ctx context.Context, zipCode, trade string) ([]*domain.Vendor, error)
}

// JobRepository defines data access for nightly jobs.
type JobRepository interface {
	Create(ctx context.Context, tx Transaction, job *domain.Job) error
	GetByID(ctx context.Context, id string) (*domain.Job, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Job, error)
	ListForDate(ctx context.Context, territoryID string, date time.Time) ([]*domain.Job, error)
	UpdateStatus(ctx context.Context, tx Transaction, id string, status domain.JobStatus, updatedAt time.Time) error
}

// AuditReportRepository defines data access for audit reports.
type AuditReportRepository interface {
	Create(ctx context.Context, tx Transaction, report *domain.AuditReport) error
	GetByJob(ctx context.Context, jobID string) (*domain.AuditReport, error)
	ListByAuditor(ctx context.Context, auditorID string, limit, offset int) ([]*domain.AuditReport, error)
}

// AccountFilter narrows prospect-account listings.
type AccountFilter struct {
	TerritoryID string
	OwnerID     string
	Stage       domain.AccountStage
	Limit       int
	Offset      int
}

// AccountRepository defines data access for prospect accounts and their
// contacts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	List(ctx context.Context, filter AccountFilter) ([]*domain.Account, error)
	UpdateStage(ctx context.Context, id string, stage domain.AccountStage, updatedAt time.Time) error
	AddContact(ctx context.Context, contact *domain.Contact) error
	ListContacts(ctx context.Context, accountID string) ([]*domain.Contact, error)
}

// TerritoryRepository defines data access for territories.
type TerritoryRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Territory, error)
	GetByZipCode(ctx context.Context, zipCode string) (*domain.Territory, error)
	List(ctx context.Context) ([]*domain.Territory, error)
}

// OutboxRepository defines data access for activity-stream events.
type OutboxRepository interface {
	Create(ctx context.Context, event *domain.OutboxEvent) error
	CreateTx(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Retrier retries an operation on transient errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
