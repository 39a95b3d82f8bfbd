package domain_test

import (
	"testing"

	"github.com/xiri/xiri-api/internal/domain"
)

func TestNormalizeRole(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want domain.Role
	}{
		{"super_admin", domain.RoleSuperAdmin},
		{"facility_manager", domain.RoleFacilityManager},
		{"sales", domain.RoleSales},
		{"recruiter", domain.RoleRecruiter},
		{"auditor", domain.RoleAuditor},
		{"", domain.RoleAuditor},
		{"admin", domain.RoleAuditor},
		{"SALES", domain.RoleAuditor},
	}

	for _, tt := range tests {
		if got := domain.NormalizeRole(tt.raw); got != tt.want {
			t.Errorf("NormalizeRole(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestRoleDefaultViewMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		role domain.Role
		want domain.ViewMode
	}{
		{domain.RoleFacilityManager, domain.ViewModeAuditor},
		{domain.RoleSales, domain.ViewModeSales},
		{domain.RoleRecruiter, domain.ViewModeRecruiter},
		{domain.RoleAuditor, domain.ViewModeAuditor},
		{domain.RoleSuperAdmin, domain.ViewModeNone},
	}

	for _, tt := range tests {
		if got := tt.role.DefaultViewMode(); got != tt.want {
			t.Errorf("%s.DefaultViewMode() = %q, want %q", tt.role, got, tt.want)
		}
	}
}

func TestRoleHomeRoute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		role domain.Role
		want string
	}{
		{domain.RoleSales, domain.RouteSales},
		{domain.RoleRecruiter, domain.RouteRecruiter},
		{domain.RoleAuditor, domain.RouteAudit},
		{domain.RoleFacilityManager, domain.RouteAudit},
		{domain.RoleSuperAdmin, domain.RouteAdmin},
		{domain.Role("intern"), domain.RouteAudit},
		{domain.Role(""), domain.RouteAudit},
	}

	for _, tt := range tests {
		if got := tt.role.HomeRoute(); got != tt.want {
			t.Errorf("%s.HomeRoute() = %q, want %q", tt.role, got, tt.want)
		}
	}
}

func TestCanSwitchView(t *testing.T) {
	t.Parallel()

	switchable := []domain.Role{domain.RoleSuperAdmin, domain.RoleFacilityManager}
	for _, role := range switchable {
		if !role.CanSwitchView() {
			t.Errorf("expected %s to be allowed to switch views", role)
		}
	}

	fixed := []domain.Role{domain.RoleSales, domain.RoleRecruiter, domain.RoleAuditor, domain.Role("")}
	for _, role := range fixed {
		if role.CanSwitchView() {
			t.Errorf("expected %s not to be allowed to switch views", role)
		}
	}
}

func TestViewModeRole(t *testing.T) {
	t.Parallel()

	if got := domain.ViewModeSales.Role(); got != domain.RoleSales {
		t.Errorf("expected sales view to project as sales, got %q", got)
	}
	if got := domain.ViewModeNone.Role(); got != domain.Role("") {
		t.Errorf("expected empty view mode to project as no role, got %q", got)
	}
}
