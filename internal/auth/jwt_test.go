package auth

import (
	"testing"
	"time"
)

func TestGenerateAndValidateToken(t *testing.T) {
	secret := "test-secret"

	token, err := GenerateToken(secret, 42, "VP")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ValidateToken(secret, token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected user id 42, got %d", claims.UserID)
	}
	if claims.Username != "VP" {
		t.Errorf("expected username VP, got %q", claims.Username)
	}
	if claims.ID == "" {
		t.Error("expected a non-empty JTI")
	}
	if claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) <= 0 {
		t.Error("expected a future expiry")
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("right-secret", 1, "VP")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := ValidateToken("wrong-secret", token); err == nil {
		t.Error("expected validation to fail with the wrong secret")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	if _, err := ValidateToken("secret", "not-a-token"); err == nil {
		t.Error("expected validation to fail for a malformed token")
	}
}

func TestTokensHaveUniqueJTIs(t *testing.T) {
	a, _ := GenerateToken("secret", 1, "VP")
	b, _ := GenerateToken("secret", 1, "VP")

	ca, err := ValidateToken("secret", a)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	cb, err := ValidateToken("secret", b)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if ca.ID == cb.ID {
		t.Error("expected distinct JTIs for separate tokens")
	}
}
