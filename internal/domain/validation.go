package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Validation errors
var (
	ErrInvalidName     = errors.New("invalid name")
	ErrInvalidZipCode  = errors.New("invalid zip code")
	ErrInvalidTrade    = errors.New("invalid trade")
	ErrInvalidEmail    = errors.New("invalid email format")
	ErrPasswordTooWeak = errors.New("password does not meet requirements")
)

// Validation constants
const (
	MaxNameLength     = 255
	MinNameLength     = 1
	MinPasswordLength = 8
	MaxPasswordLength = 128
	MaxNotesLength    = 4096
)

// Trades the brokerage sources vendors for.
var validTrades = map[string]bool{
	"janitorial":  true,
	"landscaping": true,
	"hvac":        true,
	"plumbing":    true,
	"electrical":  true,
	"snow":        true,
	"pest":        true,
	"windows":     true,
}

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	zipRegex   = regexp.MustCompile(`^\d{5}$`)
)

// ValidateName validates a vendor or account name.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)

	if len(name) < MinNameLength {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidName)
	}

	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidName, MaxNameLength)
	}

	return nil
}

// ValidateZipCode validates a five-digit US zip code.
func ValidateZipCode(zipCode string) error {
	if !zipRegex.MatchString(strings.TrimSpace(zipCode)) {
		return fmt.Errorf("%w: %q", ErrInvalidZipCode, zipCode)
	}
	return nil
}

// ValidateTrade validates a trade against the known trade list.
func ValidateTrade(trade string) error {
	trade = strings.ToLower(strings.TrimSpace(trade))
	if !validTrades[trade] {
		return fmt.Errorf("%w: %q is not a recognized trade", ErrInvalidTrade, trade)
	}
	return nil
}

// NormalizeTrade lowercases and trims a trade value.
func NormalizeTrade(trade string) string {
	return strings.ToLower(strings.TrimSpace(trade))
}

// ValidateEmail validates email format
func ValidateEmail(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}

	return nil
}

// ValidatePassword validates password strength
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrPasswordTooWeak, MinPasswordLength)
	}

	if len(password) > MaxPasswordLength {
		return fmt.Errorf("%w: must not exceed %d characters", ErrPasswordTooWeak, MaxPasswordLength)
	}

	return nil
}

// Pagination bounds.
const (
	DefaultPageLimit = 50
	MaxPageLimit     = 500
)

// ValidatePagination clamps pagination parameters to sane bounds.
func ValidatePagination(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
