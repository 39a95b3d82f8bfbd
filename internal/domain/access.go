package domain

// Decision is the outcome of an access evaluation. A denied decision always
// carries the fallback route the navigation should be replaced with.
type Decision struct {
	Allowed    bool
	RedirectTo string
}

// Allow returns an allowing decision.
func Allow() Decision {
	return Decision{Allowed: true}
}

// DenyRedirect returns a denying decision with a fallback destination.
func DenyRedirect(target string) Decision {
	return Decision{Allowed: false, RedirectTo: target}
}

// Evaluate decides whether an identity may reach a route restricted to
// allowedRoles. Rules apply in order and only widen access:
//
//  1. an empty role set means the route requires authentication only
//  2. the bare role matching grants access
//  3. an active view mode matching grants access
//  4. super_admin bypasses all restrictions
//
// Anything else denies with a fallback computed from the bare role, never
// the view mode. The function never panics: a nil identity or unknown role
// takes the most restrictive matching case.
func Evaluate(identity *Identity, allowedRoles []Role) Decision {
	if len(allowedRoles) == 0 {
		return Allow()
	}

	if identity == nil {
		return DenyRedirect(RouteAudit)
	}

	for _, role := range allowedRoles {
		if identity.Role == role {
			return Allow()
		}
	}

	if identity.ViewMode.IsValid() {
		for _, role := range allowedRoles {
			if identity.ViewMode.Role() == role {
				return Allow()
			}
		}
	}

	if identity.Role == RoleSuperAdmin {
		return Allow()
	}

	return DenyRedirect(identity.Role.HomeRoute())
}
