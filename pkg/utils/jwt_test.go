package utils

import (
	"testing"
)

func TestTokenRoundtrip(t *testing.T) {
	token, err := GenerateToken("secret", 42, "MANAGER")
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	claims, err := ParseToken("secret", token)
	if err != nil {
		t.Fatalf("ParseToken returned error: %v", err)
	}

	if claims.UserID != 42 {
		t.Errorf("expected user_id 42, got %d", claims.UserID)
	}
	if claims.Role != "MANAGER" {
		t.Errorf("expected role MANAGER, got %s", claims.Role)
	}
	if claims.ExpiresAt == nil {
		t.Error("expected an expiry claim")
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret", 42, "KASIR")
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	if _, err := ParseToken("other-secret", token); err == nil {
		t.Error("expected error for token signed with a different secret")
	}
}

func TestParseTokenGarbage(t *testing.T) {
	if _, err := ParseToken("secret", "not.a.token"); err == nil {
		t.Error("expected error for malformed token")
	}
}
