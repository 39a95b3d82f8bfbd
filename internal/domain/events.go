package domain

import "time"

// Event types
const (
	EventTypeSessionSignedIn   = "session.signed_in"
	EventTypeSessionSignedOut  = "session.signed_out"
	EventTypeViewSwitched      = "session.view_switched"
	EventTypeAuditSubmitted    = "audit.submitted"
	EventTypeVendorSourced     = "vendor.sourced"
	EventTypeJobsGenerated     = "job.batch_generated"
	EventTypeAccountStageMoved = "account.stage_moved"
)

// Aggregate types
const (
	AggregateTypeSession = "session"
	AggregateTypeJob     = "job"
	AggregateTypeVendor  = "vendor"
	AggregateTypeAccount = "account"
)

// OutboxEvent represents an activity-stream event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// AuditSubmittedEvent payload
type AuditSubmittedEvent struct {
	JobID     string `json:"job_id"`
	VendorID  string `json:"vendor_id"`
	AuditorID string `json:"auditor_id"`
	Rating    int    `json:"rating"`
}

// ViewSwitchedEvent payload
type ViewSwitchedEvent struct {
	UserID   string `json:"user_id"`
	Role     string `json:"role"`
	ViewMode string `json:"view_mode"`
}
