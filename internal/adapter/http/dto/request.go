package dto

import (
	"github.com/xiri/xiri-api/internal/domain"
	"github.com/xiri/xiri-api/internal/usecase"
)

// LoginRequest represents a sign-in request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SwitchViewRequest represents a view-mode switch request.
type SwitchViewRequest struct {
	Mode string `json:"mode"`
}

// CreateUserRequest represents a request to create a user.
type CreateUserRequest struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	TerritoryID string `json:"territory_id,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateUserRequest) ToUseCaseInput() usecase.CreateUserInput {
	return usecase.CreateUserInput{
		Email:       r.Email,
		Name:        r.Name,
		Password:    r.Password,
		Role:        domain.Role(r.Role),
		TerritoryID: r.TerritoryID,
	}
}

// UpdateUserRequest represents a partial user update. Absent fields are
// left unchanged.
type UpdateUserRequest struct {
	Name        *string `json:"name,omitempty"`
	Role        *string `json:"role,omitempty"`
	TerritoryID *string `json:"territory_id,omitempty"`
	Active      *bool   `json:"active,omitempty"`
	Password    *string `json:"password,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateUserRequest) ToUseCaseInput(id string) usecase.UpdateUserInput {
	input := usecase.UpdateUserInput{
		ID:          id,
		Name:        r.Name,
		TerritoryID: r.TerritoryID,
		Active:      r.Active,
		Password:    r.Password,
	}
	if r.Role != nil {
		role := domain.Role(*r.Role)
		input.Role = &role
	}

	return input
}

// CreateVendorRequest represents a request to create a vendor.
type CreateVendorRequest struct {
	Name        string `json:"name"`
	Trade       string `json:"trade"`
	ZipCode     string `json:"zip_code"`
	TerritoryID string `json:"territory_id,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateVendorRequest) ToUseCaseInput() usecase.CreateVendorInput {
	return usecase.CreateVendorInput{
		Name:        r.Name,
		Trade:       r.Trade,
		ZipCode:     r.ZipCode,
		TerritoryID: r.TerritoryID,
		Phone:       r.Phone,
		Email:       r.Email,
	}
}

// ScrapeVendorsRequest represents a sourcing-run request.
type ScrapeVendorsRequest struct {
	ZipCode string `json:"zip_code"`
	Trade   string `json:"trade"`
}

// GenerateJobsRequest represents a request to generate nightly jobs for a
// territory. Date defaults to today when empty.
type GenerateJobsRequest struct {
	TerritoryID string `json:"territory_id"`
	Date        string `json:"date,omitempty"`
}

// SubmitAuditRequest represents an audit-report submission. The auditor is
// taken from the authenticated identity, never from the body.
type SubmitAuditRequest struct {
	JobID  string `json:"job_id"`
	Rating int    `json:"rating"`
	Notes  string `json:"notes,omitempty"`
}

// CreateAccountRequest represents a request to create a prospect account.
// The owner is the authenticated identity.
type CreateAccountRequest struct {
	Name        string `json:"name"`
	TerritoryID string `json:"territory_id,omitempty"`
	ZipCode     string `json:"zip_code,omitempty"`
}

// MoveStageRequest represents a pipeline stage move.
type MoveStageRequest struct {
	Stage string `json:"stage"`
}

// AddContactRequest represents a request to attach a contact to an account.
type AddContactRequest struct {
	Name  string `json:"name"`
	Title string `json:"title,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *AddContactRequest) ToUseCaseInput(accountID string) usecase.AddContactInput {
	return usecase.AddContactInput{
		AccountID: accountID,
		Name:      r.Name,
		Title:     r.Title,
		Email:     r.Email,
		Phone:     r.Phone,
	}
}
