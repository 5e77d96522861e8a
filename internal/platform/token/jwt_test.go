package token

import (
	"testing"
	"time"
)

func TestIssueAndParse(t *testing.T) {
	issuer := Issuer{Secret: []byte("secret"), TTL: time.Hour}
	raw, err := issuer.Issue("user-1", "admin")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	claims, err := issuer.Parse(raw)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.UserID != "user-1" || claims.Role != "admin" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	raw, err := Issuer{Secret: []byte("secret-a"), TTL: time.Hour}.Issue("user-1", "member")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, err := (Issuer{Secret: []byte("secret-b")}).Parse(raw); err == nil {
		t.Fatal("token signed with a different secret must not verify")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	issuer := Issuer{Secret: []byte("secret"), TTL: -time.Minute}
	raw, err := issuer.Issue("user-1", "member")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, err := issuer.Parse(raw); err == nil {
		t.Fatal("expired token must not verify")
	}
}

func TestIssueRequiresSecret(t *testing.T) {
	if _, err := (Issuer{}).Issue("user-1", "member"); err == nil {
		t.Fatal("issuing without a secret must fail")
	}
}
