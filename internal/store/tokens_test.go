package store

import (
	"context"
	"testing"
	"time"

	"github.com/erpfil/crm/internal/db"
)

func TestRevokeAndCheckToken(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	revoked, err := IsTokenRevoked(ctx, database, "jti-1")
	if err != nil {
		t.Fatalf("IsTokenRevoked: %v", err)
	}
	if revoked {
		t.Error("expected unknown JTI to not be revoked")
	}

	if err := RevokeToken(ctx, database, "jti-1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("RevokeToken: %v", err)
	}

	revoked, err = IsTokenRevoked(ctx, database, "jti-1")
	if err != nil {
		t.Fatalf("IsTokenRevoked: %v", err)
	}
	if !revoked {
		t.Error("expected JTI to be revoked")
	}
}

func TestRevokeTokenCleansExpired(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	RevokeToken(ctx, database, "expired", time.Now().Add(-time.Hour))
	RevokeToken(ctx, database, "fresh", time.Now().Add(time.Hour))

	revoked, _ := IsTokenRevoked(ctx, database, "expired")
	if revoked {
		t.Error("expected expired revocation to be cleaned up")
	}
}

func TestGetJWTSecretStable(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	first, err := GetJWTSecret(ctx, database)
	if err != nil {
		t.Fatalf("GetJWTSecret: %v", err)
	}
	if first == "" {
		t.Fatal("expected a non-empty secret")
	}

	second, err := GetJWTSecret(ctx, database)
	if err != nil {
		t.Fatalf("GetJWTSecret: %v", err)
	}
	if first != second {
		t.Error("expected the secret to be stable across calls")
	}
}
