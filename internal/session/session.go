// Package session bridges the cookie transport and the token codec.
// It resolves a Principal for each request; authorization itself
// lives in package authz.
package session

import (
	"net/http"
	"time"

	"github.com/alicerce-gestao/alicerce/internal/authz"
	"github.com/alicerce-gestao/alicerce/internal/token"
)

// CookieName is the session cookie identifier.
const CookieName = "auth_token"

// DefaultTTL is the sliding-window lifetime for issued tokens.
const DefaultTTL = 7 * 24 * time.Hour

// Manager issues, verifies and refreshes session cookies.
type Manager struct {
	codec  *token.Codec
	ttl    time.Duration
	secure bool
}

// NewManager constructs a Manager. secure controls the cookie Secure
// attribute and must be true in production.
func NewManager(codec *token.Codec, ttl time.Duration, secure bool) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{codec: codec, ttl: ttl, secure: secure}
}

// TTL exposes the configured token lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a token for the principal and returns it with its
// transport cookie.
func (m *Manager) Issue(p authz.Principal) (string, *http.Cookie, error) {
	raw, err := m.codec.Issue(token.Claims{
		UserID:      p.UserID,
		Login:       p.Login,
		Role:        p.Role,
		Permissions: p.Permissions,
	}, m.ttl)
	if err != nil {
		return "", nil, err
	}
	return raw, m.cookie(raw, int(m.ttl.Seconds())), nil
}

// Authenticate verifies the cookie value and constructs the
// Principal. Missing, invalid and expired tokens all yield ok=false;
// this is an expected outcome, never an error.
func (m *Manager) Authenticate(cookieValue string) (*authz.Principal, bool) {
	if cookieValue == "" {
		return nil, false
	}
	claims, ok := m.codec.Verify(cookieValue)
	if !ok {
		return nil, false
	}
	return &authz.Principal{
		UserID:      claims.UserID,
		Login:       claims.Login,
		Role:        claims.Role,
		Permissions: claims.Permissions,
	}, true
}

// Refresh re-verifies the current token and, when valid, issues a new
// one with identical claims and a fresh expiry. The signed claims are
// trusted as-is; permissions are not re-read from the store, so a
// grant change only takes effect once the old token dies.
func (m *Manager) Refresh(cookieValue string) (*http.Cookie, bool) {
	p, ok := m.Authenticate(cookieValue)
	if !ok {
		return nil, false
	}
	_, cookie, err := m.Issue(*p)
	if err != nil {
		return nil, false
	}
	return cookie, true
}

// Logout returns the unconditional cookie-clear directive. Idempotent
// regardless of prior session state.
func (m *Manager) Logout() *http.Cookie {
	// MaxAge<0 serializes as Max-Age=0, the immediate-delete directive.
	return m.cookie("", -1)
}

func (m *Manager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
