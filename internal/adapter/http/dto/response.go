package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiri/xiri-api/internal/domain"
	"github.com/xiri/xiri-api/internal/usecase"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// IdentityResponse represents the resolved identity in API responses.
type IdentityResponse struct {
	ID            string          `json:"id"`
	Email         string          `json:"email"`
	Role          domain.Role     `json:"role"`
	TerritoryID   string          `json:"territory_id,omitempty"`
	ViewMode      domain.ViewMode `json:"view_mode,omitempty"`
	EffectiveRole domain.Role     `json:"effective_role"`
	HomeRoute     string          `json:"home_route"`
}

// IdentityFromDomain converts a domain identity to a response.
func IdentityFromDomain(i *domain.Identity) *IdentityResponse {
	return &IdentityResponse{
		ID:            i.ID,
		Email:         i.Email,
		Role:          i.Role,
		TerritoryID:   i.TerritoryID,
		ViewMode:      i.ViewMode,
		EffectiveRole: i.EffectiveRole(),
		HomeRoute:     i.LandingRoute(),
	}
}

// LoginResponse represents a successful sign-in.
type LoginResponse struct {
	Token    string            `json:"token"`
	Identity *IdentityResponse `json:"identity"`
}

// PageResponse is the payload a gated page endpoint returns: the data the
// view binds plus the identity it renders as.
type PageResponse struct {
	Page     string            `json:"page"`
	Identity *IdentityResponse `json:"identity"`
	Data     any               `json:"data,omitempty"`
}

// UserResponse represents a user in API responses. Password hashes never
// leave the server.
type UserResponse struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	Name        string      `json:"name"`
	Role        domain.Role `json:"role"`
	TerritoryID string      `json:"territory_id,omitempty"`
	Active      bool        `json:"active"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// UserFromDomain converts a domain user to a response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        u.Role,
		TerritoryID: u.TerritoryID,
		Active:      u.Active,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// UsersFromDomain converts domain users to responses.
func UsersFromDomain(users []*domain.User) []*UserResponse {
	result := make([]*UserResponse, len(users))
	for i, u := range users {
		result[i] = UserFromDomain(u)
	}
	return result
}

// ListUsersResponse represents a user listing.
type ListUsersResponse struct {
	Users []*UserResponse `json:"users"`
	Total int64           `json:"total"`
}

// VendorResponse represents a vendor in API responses.
type VendorResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Trade       string          `json:"trade"`
	ZipCode     string          `json:"zip_code"`
	TerritoryID string          `json:"territory_id,omitempty"`
	Phone       string          `json:"phone,omitempty"`
	Email       string          `json:"email,omitempty"`
	Rating      decimal.Decimal `json:"rating"`
	Vetted      bool            `json:"vetted"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// VendorFromDomain converts a domain vendor to a response.
func VendorFromDomain(v *domain.Vendor) *VendorResponse {
	return &VendorResponse{
		ID:          v.ID,
		Name:        v.Name,
		Trade:       v.Trade,
		ZipCode:     v.ZipCode,
		TerritoryID: v.TerritoryID,
		Phone:       v.Phone,
		Email:       v.Email,
		Rating:      v.Rating,
		Vetted:      v.Vetted,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

// VendorsFromDomain converts domain vendors to responses.
func VendorsFromDomain(vendors []*domain.Vendor) []*VendorResponse {
	result := make([]*VendorResponse, len(vendors))
	for i, v := range vendors {
		result[i] = VendorFromDomain(v)
	}
	return result
}

// ListVendorsResponse represents a vendor listing.
type ListVendorsResponse struct {
	Vendors []*VendorResponse `json:"vendors"`
	Total   int64             `json:"total"`
}

// SourceResultResponse represents the outcome of a sourcing run.
type SourceResultResponse struct {
	Vendors  []*VendorResponse `json:"vendors"`
	Imported int               `json:"imported"`
}

// SourceResultFromUseCase converts a sourcing result to a response.
func SourceResultFromUseCase(r *usecase.SourceResult) *SourceResultResponse {
	return &SourceResultResponse{
		Vendors:  VendorsFromDomain(r.Vendors),
		Imported: r.Imported,
	}
}

// JobResponse represents a nightly job in API responses.
type JobResponse struct {
	ID          string           `json:"id"`
	VendorID    string           `json:"vendor_id"`
	VendorName  string           `json:"vendor_name,omitempty"`
	Trade       string           `json:"trade,omitempty"`
	TerritoryID string           `json:"territory_id"`
	Status      domain.JobStatus `json:"status"`
	Payout      decimal.Decimal  `json:"payout"`
	ScheduledOn time.Time        `json:"scheduled_on"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// JobFromDomain converts a domain job to a response.
func JobFromDomain(j *domain.Job) *JobResponse {
	return &JobResponse{
		ID:          j.ID,
		VendorID:    j.VendorID,
		VendorName:  j.VendorName,
		Trade:       j.Trade,
		TerritoryID: j.TerritoryID,
		Status:      j.Status,
		Payout:      j.Payout,
		ScheduledOn: j.ScheduledOn,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}
}

// JobsFromDomain converts domain jobs to responses.
func JobsFromDomain(jobs []*domain.Job) []*JobResponse {
	result := make([]*JobResponse, len(jobs))
	for i, j := range jobs {
		result[i] = JobFromDomain(j)
	}
	return result
}

// ListJobsResponse represents a job listing.
type ListJobsResponse struct {
	Jobs  []*JobResponse `json:"jobs"`
	Total int64          `json:"total"`
}

// AuditReportResponse represents an audit report in API responses.
type AuditReportResponse struct {
	ID        string    `json:"id"`
	JobID     string    `json:"job_id"`
	AuditorID string    `json:"auditor_id"`
	Rating    int       `json:"rating"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AuditReportFromDomain converts a domain audit report to a response.
func AuditReportFromDomain(r *domain.AuditReport) *AuditReportResponse {
	return &AuditReportResponse{
		ID:        r.ID,
		JobID:     r.JobID,
		AuditorID: r.AuditorID,
		Rating:    r.Rating,
		Notes:     r.Notes,
		CreatedAt: r.CreatedAt,
	}
}

// AuditReportsFromDomain converts domain audit reports to responses.
func AuditReportsFromDomain(reports []*domain.AuditReport) []*AuditReportResponse {
	result := make([]*AuditReportResponse, len(reports))
	for i, r := range reports {
		result[i] = AuditReportFromDomain(r)
	}
	return result
}

// AccountResponse represents a prospect account in API responses.
type AccountResponse struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	TerritoryID string              `json:"territory_id,omitempty"`
	ZipCode     string              `json:"zip_code,omitempty"`
	Stage       domain.AccountStage `json:"stage"`
	OwnerID     string              `json:"owner_id,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:          a.ID,
		Name:        a.Name,
		TerritoryID: a.TerritoryID,
		ZipCode:     a.ZipCode,
		Stage:       a.Stage,
		OwnerID:     a.OwnerID,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse represents an account listing.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// ContactResponse represents a contact in API responses.
type ContactResponse struct {
	ID        string    `json:"id"`
	AccountID string    `json:"account_id"`
	Name      string    `json:"name"`
	Title     string    `json:"title,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactFromDomain converts a domain contact to a response.
func ContactFromDomain(c *domain.Contact) *ContactResponse {
	return &ContactResponse{
		ID:        c.ID,
		AccountID: c.AccountID,
		Name:      c.Name,
		Title:     c.Title,
		Email:     c.Email,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
	}
}

// ContactsFromDomain converts domain contacts to responses.
func ContactsFromDomain(contacts []*domain.Contact) []*ContactResponse {
	result := make([]*ContactResponse, len(contacts))
	for i, c := range contacts {
		result[i] = ContactFromDomain(c)
	}
	return result
}

// AccountDetailResponse bundles an account with its contacts.
type AccountDetailResponse struct {
	Account  *AccountResponse   `json:"account"`
	Contacts []*ContactResponse `json:"contacts"`
}

// AccountDetailFromUseCase converts an account detail to a response.
func AccountDetailFromUseCase(d *usecase.AccountDetail) *AccountDetailResponse {
	return &AccountDetailResponse{
		Account:  AccountFromDomain(d.Account),
		Contacts: ContactsFromDomain(d.Contacts),
	}
}

// TerritoryResponse represents a territory in API responses.
type TerritoryResponse struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	ZipCodes []string `json:"zip_codes"`
}

// TerritoryFromDomain converts a domain territory to a response.
func TerritoryFromDomain(t *domain.Territory) *TerritoryResponse {
	return &TerritoryResponse{
		ID:       t.ID,
		Name:     t.Name,
		ZipCodes: t.ZipCodes,
	}
}

// TerritoriesFromDomain converts domain territories to responses.
func TerritoriesFromDomain(territories []*domain.Territory) []*TerritoryResponse {
	result := make([]*TerritoryResponse, len(territories))
	for i, t := range territories {
		result[i] = TerritoryFromDomain(t)
	}
	return result
}

// ListTerritoriesResponse represents a territory listing.
type ListTerritoriesResponse struct {
	Territories []*TerritoryResponse `json:"territories"`
}
