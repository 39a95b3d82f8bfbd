package domain

import (
	"errors"
	"time"
)

// Profile is the loosely-typed profile record fetched from the user store.
// Raw values are normalized at the identity-construction boundary; they never
// propagate past NewIdentity.
type Profile struct {
	Role        string
	TerritoryID string
}

// Identity represents the authenticated actor for the lifetime of a session.
// Role is immutable once constructed; ViewMode is the only mutable field and
// only changes through the session manager.
type Identity struct {
	ID          string
	Email       string
	Role        Role
	TerritoryID string
	ViewMode    ViewMode
	SessionID   string
}

// NewIdentity constructs an Identity from an authenticated subject and its
// profile record. A missing or unrecognized role resolves to auditor, and the
// view mode starts at the role's default.
func NewIdentity(id, email string, profile Profile) *Identity {
	role := NormalizeRole(profile.Role)

	return &Identity{
		ID:          id,
		Email:       email,
		Role:        role,
		TerritoryID: profile.TerritoryID,
		ViewMode:    role.DefaultViewMode(),
	}
}

// EffectiveRole returns the view mode's role when a projection is active,
// else the bare role.
func (i *Identity) EffectiveRole() Role {
	if i.ViewMode.IsValid() {
		return i.ViewMode.Role()
	}
	return i.Role
}

// LandingRoute maps the effective role to the route the root path resolves
// to. The denial fallback in Evaluate uses the bare role instead.
func (i *Identity) LandingRoute() string {
	return i.EffectiveRole().HomeRoute()
}

// CanSwitchView reports whether this identity may change its view mode.
func (i *Identity) CanSwitchView() bool {
	return i.Role.CanSwitchView()
}

// User represents a persisted system user.
type User struct {
	ID             string
	Email          string
	Name           string
	HashedPassword string
	Role           Role
	TerritoryID    string
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Session is the server-side session record backing an identity.
type Session struct {
	ID        string
	UserID    string
	ViewMode  ViewMode
	CreatedAt time.Time
}

// Authentication errors
var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrInvalidToken    = errors.New("invalid token")
	ErrExpiredToken    = errors.New("token has expired")
	ErrInvalidViewMode = errors.New("invalid view mode")
)
