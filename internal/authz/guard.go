package authz

import "context"

// Can reports whether the principal may perform action on resource.
// Deny on absence: a nil principal, a missing resource key or a
// missing action key all evaluate to false, never an error. The same
// function backs server-side route guards and capability listing for
// conditional rendering.
func Can(p *Principal, resource Resource, action Action) bool {
	if p == nil || p.Permissions == nil {
		return false
	}
	set, ok := p.Permissions[resource]
	if !ok {
		return false
	}
	return set[action]
}

// RequireRole reports whether the principal holds exactly the given
// role. Coarser than Can and independent of the permission matrix.
func RequireRole(p *Principal, role Role) bool {
	return p != nil && p.Role == role
}

type principalContextKey struct{}

// ContextWithPrincipal stores the principal in context. A nil
// principal is stored as-is and stands for the unauthenticated state.
func ContextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}

// PrincipalFromContext extracts the principal resolved by the session
// middleware. Returns nil when the request is unauthenticated.
func PrincipalFromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalContextKey{}).(*Principal)
	return p
}
