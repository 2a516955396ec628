package authz

import (
	"log/slog"
	"net/http"

	"github.com/alicerce-gestao/alicerce/internal/platform/httpx"
)

// Middleware wires authorization guards for HTTP handlers. The
// session middleware must have resolved the principal into the
// request context before any of these run.
type Middleware struct {
	Logger *slog.Logger
}

// RequirePermission denies the request unless the current principal
// may perform action on resource. Missing principal yields 401,
// denied permission yields 403 with a generic body.
func (m Middleware) RequirePermission(resource Resource, action Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := PrincipalFromContext(r.Context())
			if p == nil {
				httpx.RespondError(w, httpx.ErrUnauthorized)
				return
			}
			if !Can(p, resource, action) {
				if m.Logger != nil {
					m.Logger.Warn("acesso negado",
						slog.String("login", p.Login),
						slog.String("recurso", string(resource)),
						slog.String("acao", string(action)))
				}
				httpx.RespondError(w, httpx.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin denies the request unless the current principal holds
// the admin role.
func (m Middleware) RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := PrincipalFromContext(r.Context())
			if p == nil {
				httpx.RespondError(w, httpx.ErrUnauthorized)
				return
			}
			if !RequireRole(p, RoleAdmin) {
				if m.Logger != nil {
					m.Logger.Warn("acesso negado", slog.String("login", p.Login), slog.String("papel", string(p.Role)))
				}
				httpx.RespondError(w, httpx.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
