package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Vendor represents a facility-services vendor sourced by recruiters.
type Vendor struct {
	ID          string
	Name        string
	Trade       string
	ZipCode     string
	TerritoryID string
	Phone       string
	Email       string
	// Rating is the running average of audit report ratings, zero until the
	// vendor's first audited job.
	Rating    decimal.Decimal
	Vetted    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Territory groups zip codes under a single operational area. Vendors, jobs
// and prospect accounts are scoped by territory.
type Territory struct {
	ID       string
	Name     string
	ZipCodes []string
}

// Covers reports whether the territory includes the given zip code.
func (t *Territory) Covers(zipCode string) bool {
	for _, z := range t.ZipCodes {
		if z == zipCode {
			return true
		}
	}
	return false
}
