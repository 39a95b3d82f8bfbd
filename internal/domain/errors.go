package domain

import "errors"

var (
	// User errors
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidRole  = errors.New("invalid role")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")

	// Vendor errors
	ErrVendorNotFound = errors.New("vendor not found")

	// Job errors
	ErrJobNotFound       = errors.New("job not found")
	ErrJobNotAssigned    = errors.New("job is not assigned")
	ErrJobAlreadyAudited = errors.New("job already audited")
	ErrInvalidRating     = errors.New("rating out of range")

	// Account errors
	ErrAccountNotFound = errors.New("account not found")
	ErrContactNotFound = errors.New("contact not found")
	ErrInvalidStage    = errors.New("invalid pipeline stage")

	// Territory errors
	ErrTerritoryNotFound = errors.New("territory not found")
)
