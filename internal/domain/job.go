package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JobStatus represents a job's position in the nightly workflow.
type JobStatus string

const (
	// JobStatusAssigned means the job is scheduled for a vendor.
	JobStatusAssigned JobStatus = "assigned"

	// JobStatusCompleted means the vendor reported the work done.
	JobStatusCompleted JobStatus = "completed"

	// JobStatusAudited means an auditor inspected and rated the job.
	JobStatusAudited JobStatus = "audited"
)

// IsValid checks if the status is a valid job status.
func (s JobStatus) IsValid() bool {
	return s == JobStatusAssigned || s == JobStatusCompleted || s == JobStatusAudited
}

// Job represents one night of facility work assigned to a vendor.
type Job struct {
	ID          string
	VendorID    string
	TerritoryID string
	Status      JobStatus
	Payout      decimal.Decimal
	ScheduledOn time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// VendorName and Trade are denormalized for list views; empty unless the
	// repository joined them in.
	VendorName string
	Trade      string
}

// CanAudit reports whether the job may still receive an audit report.
func (j *Job) CanAudit() bool {
	return j.Status != JobStatusAudited
}

// AuditReport is an auditor's inspection of a completed job.
type AuditReport struct {
	ID        string
	JobID     string
	AuditorID string
	Rating    int
	Notes     string
	CreatedAt time.Time
}

// Rating bounds for audit reports.
const (
	MinAuditRating = 1
	MaxAuditRating = 5
)

// ValidateRating validates an audit rating.
func ValidateRating(rating int) error {
	if rating < MinAuditRating || rating > MaxAuditRating {
		return ErrInvalidRating
	}
	return nil
}
