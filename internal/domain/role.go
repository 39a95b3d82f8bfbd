package domain

// Role represents a user's fixed, provider-assigned capability class.
type Role string

const (
	// RoleSuperAdmin has unrestricted access to every route and operation.
	RoleSuperAdmin Role = "super_admin"

	// RoleFacilityManager oversees operations and can project into any
	// operational view.
	RoleFacilityManager Role = "facility_manager"

	// RoleSales tracks prospect accounts through the pipeline.
	RoleSales Role = "sales"

	// RoleRecruiter sources and vets vendors.
	RoleRecruiter Role = "recruiter"

	// RoleAuditor inspects completed jobs.
	RoleAuditor Role = "auditor"
)

// Valid roles
var validRoles = map[Role]bool{
	RoleSuperAdmin:      true,
	RoleFacilityManager: true,
	RoleSales:           true,
	RoleRecruiter:       true,
	RoleAuditor:         true,
}

// IsValid checks if the role is a valid role
func (r Role) IsValid() bool {
	return validRoles[r]
}

// NormalizeRole maps a loosely-typed role value onto the closed role set.
// Empty or unrecognized values resolve to RoleAuditor, the most restrictive
// operational role.
func NormalizeRole(raw string) Role {
	r := Role(raw)
	if r.IsValid() {
		return r
	}
	return RoleAuditor
}

// CanSwitchView reports whether the role may project itself as a different
// operational view without changing its underlying credential.
func (r Role) CanSwitchView() bool {
	return r == RoleSuperAdmin || r == RoleFacilityManager
}

// ViewMode is a session-local projection of a privileged role onto one of
// the three operational views.
type ViewMode string

const (
	ViewModeSales     ViewMode = "sales"
	ViewModeRecruiter ViewMode = "recruiter"
	ViewModeAuditor   ViewMode = "auditor"

	// ViewModeNone means the identity renders as its bare role.
	ViewModeNone ViewMode = ""
)

// Valid view modes
var validViewModes = map[ViewMode]bool{
	ViewModeSales:     true,
	ViewModeRecruiter: true,
	ViewModeAuditor:   true,
}

// IsValid checks if the view mode is one of the three switchable views.
func (m ViewMode) IsValid() bool {
	return validViewModes[m]
}

// Role returns the role the view mode projects as.
func (m ViewMode) Role() Role {
	switch m {
	case ViewModeSales:
		return RoleSales
	case ViewModeRecruiter:
		return RoleRecruiter
	case ViewModeAuditor:
		return RoleAuditor
	default:
		return ""
	}
}

// DefaultViewMode returns the view a role starts in after sign-in.
// Super admins start with no projection.
func (r Role) DefaultViewMode() ViewMode {
	switch r {
	case RoleFacilityManager:
		return ViewModeAuditor // start in ops
	case RoleSales:
		return ViewModeSales
	case RoleRecruiter:
		return ViewModeRecruiter
	case RoleAuditor:
		return ViewModeAuditor
	default:
		return ViewModeNone
	}
}

// Route paths gated by role.
const (
	RouteLogin     = "/login"
	RouteAdmin     = "/admin"
	RouteSales     = "/sales"
	RouteRecruiter = "/recruiter"
	RouteAudit     = "/audit"
)

// HomeRoute maps a role to its default landing route. Unknown roles fall
// back to the audit route.
func (r Role) HomeRoute() string {
	switch r {
	case RoleSales:
		return RouteSales
	case RoleRecruiter:
		return RouteRecruiter
	case RoleAuditor, RoleFacilityManager:
		return RouteAudit
	case RoleSuperAdmin:
		return RouteAdmin
	default:
		return RouteAudit
	}
}
