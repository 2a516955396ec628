package token

import (
	"strings"
	"testing"
	"time"

	"github.com/alicerce-gestao/alicerce/internal/authz"
)

func testClaims() Claims {
	return Claims{
		UserID: 42,
		Login:  "maria",
		Role:   authz.RoleFuncionario,
		Permissions: authz.Matrix{
			authz.ResourceClientes: {authz.ActionView: true},
		},
	}
}

func TestCodecRoundTrip(t *testing.T) {
	codec, err := NewCodec("segredo-de-teste")
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}

	raw, err := codec.Issue(testClaims(), time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, ok := codec.Verify(raw)
	if !ok {
		t.Fatal("expected token to verify")
	}
	if claims.UserID != 42 || claims.Login != "maria" || claims.Role != authz.RoleFuncionario {
		t.Fatalf("claims did not survive round trip: %+v", claims)
	}
	if !claims.Permissions[authz.ResourceClientes][authz.ActionView] {
		t.Fatal("expected permissions to survive round trip")
	}
	if claims.ID == "" {
		t.Fatal("expected a token id to be assigned")
	}
}

func TestCodecRejectsExpiredToken(t *testing.T) {
	codec, err := NewCodec("segredo-de-teste")
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}

	raw, err := codec.Issue(testClaims(), -time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if claims, ok := codec.Verify(raw); ok {
		t.Fatalf("expected expired token to fail, got claims %+v", claims)
	}
}

func TestCodecRejectsTamperedToken(t *testing.T) {
	codec, err := NewCodec("segredo-de-teste")
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}

	raw, err := codec.Issue(testClaims(), time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %s", raw)
	}
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	if _, ok := codec.Verify(tampered); ok {
		t.Fatal("expected tampered token to fail")
	}
}

func TestCodecRejectsForeignSecret(t *testing.T) {
	issuer, err := NewCodec("segredo-a")
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}
	verifier, err := NewCodec("segredo-b")
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}

	raw, err := issuer.Issue(testClaims(), time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, ok := verifier.Verify(raw); ok {
		t.Fatal("expected token signed with another secret to fail")
	}
}

func TestCodecRejectsGarbage(t *testing.T) {
	codec, err := NewCodec("segredo-de-teste")
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}
	for _, raw := range []string{"", "abc", "a.b.c"} {
		if _, ok := codec.Verify(raw); ok {
			t.Fatalf("expected %q to fail verification", raw)
		}
	}
}

func TestNewCodecRequiresSecret(t *testing.T) {
	if _, err := NewCodec(""); err == nil {
		t.Fatal("expected empty secret to be rejected")
	}
}
