package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/alicerce-gestao/alicerce/internal/authz"
	"github.com/alicerce-gestao/alicerce/internal/session"
	"github.com/alicerce-gestao/alicerce/internal/token"
	"github.com/alicerce-gestao/alicerce/internal/users"
)

type stubStore struct {
	user   *users.User
	grants authz.RawGrants
}

func (s *stubStore) FindByLogin(ctx context.Context, login string) (*users.User, error) {
	if s.user == nil || s.user.Login != login {
		return nil, users.ErrNotFound
	}
	u := *s.user
	return &u, nil
}

func (s *stubStore) Grants(ctx context.Context, userID int64) (authz.RawGrants, error) {
	return s.grants, nil
}

func grantTrue(v bool) *bool { return &v }

func newTestServer(t *testing.T) (*httptest.Server, *session.Manager) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("senha-secreta"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	store := &stubStore{
		user: &users.User{
			ID:           9,
			Login:        "maria",
			Nome:         "Maria",
			PasswordHash: string(hash),
			Role:         authz.RoleFuncionario,
			IsActive:     true,
		},
		grants: authz.RawGrants{
			authz.ResourceClientes: {View: grantTrue(true)},
		},
	}

	codec, err := token.NewCodec("segredo-de-teste")
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}
	sessions := session.NewManager(codec, time.Hour, false)
	handler := NewHandler(nil, NewService(store), sessions)

	r := chi.NewRouter()
	r.Use(sessions.Middleware)
	r.Route("/auth", handler.MountRoutes)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, sessions
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	return nil
}

func TestLoginSuccessSetsCookie(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/auth/login", `{"login":"maria","senha":"senha-secreta"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	cookie := sessionCookie(resp)
	if cookie == nil || cookie.Value == "" {
		t.Fatal("expected session cookie to be set")
	}
	if !cookie.HttpOnly || cookie.Path != "/" {
		t.Fatalf("unexpected cookie attributes: %+v", cookie)
	}

	body := decodeBody(t, resp)
	if body["autenticado"] != true {
		t.Fatalf("expected autenticado true, got %v", body)
	}
	usuario, ok := body["usuario"].(map[string]any)
	if !ok || usuario["login"] != "maria" {
		t.Fatalf("unexpected usuario payload: %v", body)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/auth/login", `{"login":"maria","senha":"errada"}`)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	if sessionCookie(resp) != nil {
		t.Fatal("failed login must not set a cookie")
	}
}

func TestRefreshWithoutCookie(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/auth/refresh", ``)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["erro"] != "Token não encontrado" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestRefreshWithInvalidToken(t *testing.T) {
	srv, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/auth/refresh", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "token-invalido"})
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["erro"] != "Token inválido ou expirado" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestRefreshWithValidToken(t *testing.T) {
	srv, sessions := newTestServer(t)

	raw, _, err := sessions.Issue(authz.Principal{UserID: 9, Login: "maria", Role: authz.RoleFuncionario})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/auth/refresh", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: raw})
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	cookie := sessionCookie(resp)
	if cookie == nil || cookie.Value == "" {
		t.Fatal("expected refreshed cookie")
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/auth/logout", ``)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	cookie := sessionCookie(resp)
	if cookie == nil {
		t.Fatal("expected clearing cookie")
	}
	if cookie.Value != "" || cookie.MaxAge >= 0 {
		t.Fatalf("expected delete directive, got %+v", cookie)
	}
}

func TestVerifyAuthenticated(t *testing.T) {
	srv, sessions := newTestServer(t)

	raw, _, err := sessions.Issue(authz.Principal{
		UserID: 9,
		Login:  "maria",
		Role:   authz.RoleFuncionario,
		Permissions: authz.Matrix{
			authz.ResourceClientes: {authz.ActionView: true},
		},
	})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/auth/verify", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: raw})
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["autenticado"] != true {
		t.Fatalf("expected autenticado true, got %v", body)
	}
	if _, ok := body["usuario"].(map[string]any); !ok {
		t.Fatalf("expected usuario payload, got %v", body)
	}
}

func TestVerifyUnauthenticated(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/auth/verify")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["autenticado"] != false {
		t.Fatalf("expected autenticado false, got %v", body)
	}
	if _, ok := body["usuario"]; ok {
		t.Fatalf("unauthenticated body must not carry usuario: %v", body)
	}
}
