package auth

import (
	"testing"

	"github.com/spec-kit/repair-service/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("round-trip-secret", 60)

	token, expiresAt, err := tm.GenerateToken("user-42", domain.RoleSuperadmin)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if expiresAt.IsZero() {
		t.Error("expected a non-zero expiry")
	}

	claims, err := tm.ParseToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "user-42" {
		t.Errorf("user_id = %q, want user-42", claims.UserID)
	}
	if claims.Role != domain.RoleSuperadmin {
		t.Errorf("role = %q, want superadmin", claims.Role)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	tm := NewTokenManager("secret-a", 60)
	other := NewTokenManager("secret-b", 60)

	token, _, err := tm.GenerateToken("user-42", domain.RoleUser)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := other.ParseToken(token); err == nil {
		t.Error("token signed with a different secret must be rejected")
	}
}

func TestParseTokenGarbage(t *testing.T) {
	tm := NewTokenManager("secret", 60)
	if _, err := tm.ParseToken("not.a.token"); err == nil {
		t.Error("malformed token must be rejected")
	}
}
