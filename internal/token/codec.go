// Package token encodes and decodes the signed session token carrying
// identity and authorization claims.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/alicerce-gestao/alicerce/internal/authz"
)

// Claims is the payload embedded in a session token.
type Claims struct {
	UserID      int64        `json:"uid"`
	Login       string       `json:"login"`
	Role        authz.Role   `json:"role"`
	Permissions authz.Matrix `json:"perms"`
	jwt.RegisteredClaims
}

// Codec signs and verifies session tokens with a process-wide secret.
// The secret is loaded once at startup and read-only afterwards.
type Codec struct {
	secret []byte
}

// NewCodec constructs a Codec. An empty secret is a startup
// misconfiguration and fails fast.
func NewCodec(secret string) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("token: signing secret must not be empty")
	}
	return &Codec{secret: []byte(secret)}, nil
}

// Issue produces a signed token embedding the claims with expiry
// now+ttl. Fails only on serialization.
func (c *Codec) Issue(claims Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, &claims).SignedString(c.secret)
}

// Verify returns the decoded claims iff the signature is valid and
// the token has not expired. Signature mismatch and expiry are
// indistinguishable to the caller: both yield ok=false.
func (c *Codec) Verify(raw string) (*Claims, bool) {
	parsed, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return nil, false
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, false
	}
	return claims, true
}
