package session

import (
	"net/http"

	"github.com/alicerce-gestao/alicerce/internal/authz"
)

// Middleware resolves the Principal from the session cookie into the
// request context. It never rejects: unauthenticated requests proceed
// with a nil principal so that downstream guards decide. Runs before
// any authorization middleware; verify-then-authorize is strictly
// sequential within a request.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var value string
		if cookie, err := r.Cookie(CookieName); err == nil {
			value = cookie.Value
		}
		principal, _ := m.Authenticate(value)
		ctx := authz.ContextWithPrincipal(r.Context(), principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
