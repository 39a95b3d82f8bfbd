package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/xiri/xiri-api/internal/domain"
	"github.com/xiri/xiri-api/internal/usecase"
)

// MockVendorRepository is a mock implementation of VendorRepository.
type MockVendorRepository struct {
	mu      sync.RWMutex
	vendors map[string]*domain.Vendor

	CreateFunc        func(ctx context.Context, vendor *domain.Vendor) error
	GetByIDFunc       func(ctx context.Context, id string) (*domain.Vendor, error)
	ListFunc          func(ctx context.Context, filter usecase.VendorFilter) ([]*domain.Vendor, error)
	RefreshRatingFunc func(ctx context.Context, tx usecase.Transaction, vendorID string) error
}

func NewMockVendorRepository() *MockVendorRepository {
	return &MockVendorRepository{
		vendors: make(map[string]*domain.Vendor),
	}
}

func (m *MockVendorRepository) Create(ctx context.Context, vendor *domain.Vendor) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, vendor)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vendors[vendor.ID] = vendor
	return nil
}

func (m *MockVendorRepository) GetByID(ctx context.Context, id string) (*domain.Vendor, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.vendors[id]; ok {
		return v, nil
	}
	return nil, domain.ErrVendorNotFound
}

func (m *MockVendorRepository) List(ctx context.Context, filter usecase.VendorFilter) ([]*domain.Vendor, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Vendor
	for _, v := range m.vendors {
		if filter.TerritoryID != "" && v.TerritoryID != filter.TerritoryID {
			continue
		}
		if filter.Trade != "" && v.Trade != filter.Trade {
			continue
		}
		if filter.ZipCode != "" && v.ZipCode != filter.ZipCode {
			continue
		}
		result = append(result, v)
	}
	return result, nil
}

func (m *MockVendorRepository) RefreshRating(ctx context.Context, tx usecase.Transaction, vendorID string) error {
	if m.RefreshRatingFunc != nil {
		return m.RefreshRatingFunc(ctx, tx, vendorID)
	}
	return nil
}

// MockJobRepository is a mock implementation of JobRepository.
type MockJobRepository struct {
	mu   sync.RWMutex
	jobs map[string]*domain.Job

	CreateFunc           func(ctx context.Context, tx usecase.Transaction, job *domain.Job) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.Job, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Job, error)
	ListForDateFunc      func(ctx context.Context, territoryID string, date time.Time) ([]*domain.Job, error)
	UpdateStatusFunc     func(ctx context.Context, tx usecase.Transaction, id string, status domain.JobStatus, updatedAt time.Time) error
}

func NewMockJobRepository() *MockJobRepository {
	return &MockJobRepository{
		jobs: make(map[string]*domain.Job),
	}
}

func (m *MockJobRepository) Create(ctx context.Context, tx usecase.Transaction, job *domain.Job) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, job)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[job.ID] = job
	return nil
}

func (m *MockJobRepository) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if j, ok := m.jobs[id]; ok {
		return j, nil
	}
	return nil, domain.ErrJobNotFound
}

func (m *MockJobRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Job, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockJobRepository) ListForDate(ctx context.Context, territoryID string, date time.Time) ([]*domain.Job, error) {
	if m.ListForDateFunc != nil {
		return m.ListForDateFunc(ctx, territoryID, date)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Job
	for _, j := range m.jobs {
		if j.TerritoryID == territoryID && j.ScheduledOn.Equal(date) {
			result = append(result, j)
		}
	}
	return result, nil
}

func (m *MockJobRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.JobStatus, updatedAt time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, tx, id, status, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if j, ok := m.jobs[id]; ok {
		j.Status = status
		j.UpdatedAt = updatedAt
		return nil
	}
	return domain.ErrJobNotFound
}

// MockAuditReportRepository is a mock implementation of AuditReportRepository.
type MockAuditReportRepository struct {
	mu      sync.RWMutex
	reports map[string]*domain.AuditReport

	CreateFunc        func(ctx context.Context, tx usecase.Transaction, report *domain.AuditReport) error
	GetByJobFunc      func(ctx context.Context, jobID string) (*domain.AuditReport, error)
	ListByAuditorFunc func(ctx context.Context, auditorID string, limit, offset int) ([]*domain.AuditReport, error)
}

func NewMockAuditReportRepository() *MockAuditReportRepository {
	return &MockAuditReportRepository{
		reports: make(map[string]*domain.AuditReport),
	}
}

func (m *MockAuditReportRepository) Create(ctx context.Context, tx usecase.Transaction, report *domain.AuditReport) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, report)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports[report.ID] = report
	return nil
}

func (m *MockAuditReportRepository) GetByJob(ctx context.Context, jobID string) (*domain.AuditReport, error) {
	if m.GetByJobFunc != nil {
		return m.GetByJobFunc(ctx, jobID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.reports {
		if r.JobID == jobID {
			return r, nil
		}
	}
	return nil, domain.ErrJobNotFound
}

func (m *MockAuditReportRepository) ListByAuditor(ctx context.Context, auditorID string, limit, offset int) ([]*domain.AuditReport, error) {
	if m.ListByAuditorFunc != nil {
		return m.ListByAuditorFunc(ctx, auditorID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.AuditReport
	for _, r := range m.reports {
		if r.AuditorID == auditorID {
			result = append(result, r)
		}
	}
	return result, nil
}

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
	contacts map[string][]*domain.Contact

	CreateFunc       func(ctx context.Context, account *domain.Account) error
	GetByIDFunc      func(ctx context.Context, id string) (*domain.Account, error)
	ListFunc         func(ctx context.Context, filter usecase.AccountFilter) ([]*domain.Account, error)
	UpdateStageFunc  func(ctx context.Context, id string, stage domain.AccountStage, updatedAt time.Time) error
	AddContactFunc   func(ctx context.Context, contact *domain.Contact) error
	ListContactsFunc func(ctx context.Context, accountID string) ([]*domain.Contact, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
		contacts: make(map[string][]*domain.Contact),
	}
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.accounts[id]; ok {
		return a, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) List(ctx context.Context, filter usecase.AccountFilter) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Account
	for _, a := range m.accounts {
		if filter.TerritoryID != "" && a.TerritoryID != filter.TerritoryID {
			continue
		}
		if filter.OwnerID != "" && a.OwnerID != filter.OwnerID {
			continue
		}
		if filter.Stage != "" && a.Stage != filter.Stage {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

func (m *MockAccountRepository) UpdateStage(ctx context.Context, id string, stage domain.AccountStage, updatedAt time.Time) error {
	if m.UpdateStageFunc != nil {
		return m.UpdateStageFunc(ctx, id, stage, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.accounts[id]; ok {
		a.Stage = stage
		a.UpdatedAt = updatedAt
		return nil
	}
	return domain.ErrAccountNotFound
}

func (m *MockAccountRepository) AddContact(ctx context.Context, contact *domain.Contact) error {
	if m.AddContactFunc != nil {
		return m.AddContactFunc(ctx, contact)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contacts[contact.AccountID] = append(m.contacts[contact.AccountID], contact)
	return nil
}

func (m *MockAccountRepository) ListContacts(ctx context.Context, accountID string) ([]*domain.Contact, error) {
	if m.ListContactsFunc != nil {
		return m.ListContactsFunc(ctx, accountID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.contacts[accountID], nil
}

// MockTerritoryRepository is a mock implementation of TerritoryRepository.
type MockTerritoryRepository struct {
	mu          sync.RWMutex
	territories map[string]*domain.Territory

	GetByIDFunc      func(ctx context.Context, id string) (*domain.Territory, error)
	GetByZipCodeFunc func(ctx context.Context, zipCode string) (*domain.Territory, error)
	ListFunc         func(ctx context.Context) ([]*domain.Territory, error)
}

func NewMockTerritoryRepository() *MockTerritoryRepository {
	return &MockTerritoryRepository{
		territories: make(map[string]*domain.Territory),
	}
}

func (m *MockTerritoryRepository) Add(territory *domain.Territory) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.territories[territory.ID] = territory
}

func (m *MockTerritoryRepository) GetByID(ctx context.Context, id string) (*domain.Territory, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.territories[id]; ok {
		return t, nil
	}
	return nil, domain.ErrTerritoryNotFound
}

func (m *MockTerritoryRepository) GetByZipCode(ctx context.Context, zipCode string) (*domain.Territory, error) {
	if m.GetByZipCodeFunc != nil {
		return m.GetByZipCodeFunc(ctx, zipCode)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.territories {
		if t.Covers(zipCode) {
			return t, nil
		}
	}
	return nil, domain.ErrTerritoryNotFound
}

func (m *MockTerritoryRepository) List(ctx context.Context) ([]*domain.Territory, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Territory
	for _, t := range m.territories {
		result = append(result, t)
	}
	return result, nil
}

// MockOutboxRepository is a mock implementation of OutboxRepository.
type MockOutboxRepository struct {
	mu     sync.RWMutex
	Events []*domain.OutboxEvent

	CreateFunc   func(ctx context.Context, event *domain.OutboxEvent) error
	CreateTxFunc func(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error
}

func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{}
}

func (m *MockOutboxRepository) Create(ctx context.Context, event *domain.OutboxEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
	return nil
}

func (m *MockOutboxRepository) CreateTx(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, event)
	}
	return m.Create(ctx, event)
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.OutboxEvent
	for _, e := range m.Events {
		if !e.Published {
			result = append(result, e)
		}
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.Events {
		if e.ID == id {
			e.Published = true
			e.PublishedAt = &publishedAt
		}
	}
	return nil
}

func (m *MockOutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	return nil
}

// EventTypes returns the recorded event types in order.
func (m *MockOutboxRepository) EventTypes() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	types := make([]string, len(m.Events))
	for i, e := range m.Events {
		types[i] = e.EventType
	}
	return types
}

// MockCache is an in-memory mock implementation of Cache.
type MockCache struct {
	mu    sync.RWMutex
	items map[string][]byte

	GetFunc func(ctx context.Context, key string) ([]byte, error)
	SetFunc func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func NewMockCache() *MockCache {
	return &MockCache{
		items: make(map[string][]byte),
	}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.items[key]; ok {
		return v, nil
	}
	return nil, domain.ErrSessionNotFound
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

// MockIDGenerator returns sequential IDs for deterministic tests.
type MockIDGenerator struct {
	mu           sync.Mutex
	counter      int
	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return "id-" + string(rune('0'+m.counter%10)) + "-" + time.Now().Format("150405.000000")
}

// MockRetrier runs the operation once with no retries.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}

// MockTransaction is a no-op transaction recording commit/rollback calls.
type MockTransaction struct {
	Committed  bool
	RolledBack bool
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	t.Committed = true
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// MockTransactionManager hands out MockTransactions.
type MockTransactionManager struct {
	mu           sync.Mutex
	Transactions []*MockTransaction

	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	tx := &MockTransaction{}
	m.Transactions = append(m.Transactions, tx)
	return tx, nil
}

// MockVendorDirectory is a mock implementation of VendorDirectory.
type MockVendorDirectory struct {
	SearchFunc func(ctx context.Context, zipCode, trade string) ([]*domain.Vendor, error)
}

func (m *MockVendorDirectory) Search(ctx context.Context, zipCode, trade string) ([]*domain.Vendor, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, zipCode, trade)
	}
	return nil, nil
}
