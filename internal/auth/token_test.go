package auth

import (
	"testing"

	"github.com/practice-kit/practice-service/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	staff := &domain.StaffMember{ID: "staff-1", Handle: "bruno.costa", Role: domain.StaffRoleTeacher}

	token, exp, err := tm.GenerateToken(staff)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if token == "" || exp.IsZero() {
		t.Fatal("empty token or expiry")
	}

	claims, err := tm.ParseToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.StaffID != "staff-1" {
		t.Errorf("staff id = %q", claims.StaffID)
	}
	if claims.Handle != "bruno.costa" {
		t.Errorf("handle = %q", claims.Handle)
	}
	if claims.Role != domain.StaffRoleTeacher {
		t.Errorf("role = %q", claims.Role)
	}
}

func TestTokenWrongSecretRejected(t *testing.T) {
	issuer := NewTokenManager("secret-a", 60)
	verifier := NewTokenManager("secret-b", 60)

	token, _, err := issuer.GenerateToken(&domain.StaffMember{ID: "staff-1"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := verifier.ParseToken(token); err == nil {
		t.Error("expected parse failure with wrong secret")
	}
}

func TestTokenGarbageRejected(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	if _, err := tm.ParseToken("not.a.token"); err == nil {
		t.Error("expected parse failure for garbage input")
	}
}
