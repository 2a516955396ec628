package authz

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func requestWithPrincipal(p *Principal) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/clientes", nil)
	return req.WithContext(ContextWithPrincipal(req.Context(), p))
}

func TestRequirePermissionUnauthenticated(t *testing.T) {
	mw := Middleware{}
	handler := mw.RequirePermission(ResourceClientes, ActionView)(okHandler())

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, requestWithPrincipal(nil))

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestRequirePermissionDenied(t *testing.T) {
	mw := Middleware{}
	handler := mw.RequirePermission(ResourceClientes, ActionDelete)(okHandler())

	p := &Principal{
		Login: "joao",
		Role:  RoleFuncionario,
		Permissions: BuildMatrix(RawGrants{
			ResourceClientes: {View: boolPtr(true)},
		}),
	}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, requestWithPrincipal(p))

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rr.Code)
	}
}

func TestRequirePermissionGranted(t *testing.T) {
	mw := Middleware{}
	handler := mw.RequirePermission(ResourceClientes, ActionView)(okHandler())

	p := &Principal{
		Role: RoleFuncionario,
		Permissions: BuildMatrix(RawGrants{
			ResourceClientes: {View: boolPtr(true)},
		}),
	}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, requestWithPrincipal(p))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	mw := Middleware{}
	handler := mw.RequireAdmin()(okHandler())

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, requestWithPrincipal(&Principal{Role: RoleFuncionario}))
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for funcionario, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, requestWithPrincipal(&Principal{Role: RoleAdmin}))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, requestWithPrincipal(nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without principal, got %d", rr.Code)
	}
}
