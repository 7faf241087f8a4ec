package store

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/erpfil/crm/internal/db"
)

func TestCreateAndGetUser(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	u, err := CreateUser(ctx, database, "VP", "some-hash")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.Username != "VP" {
		t.Errorf("expected username VP, got %q", u.Username)
	}

	got, err := GetUserByUsername(ctx, database, "VP")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if got == nil || got.ID != u.ID {
		t.Errorf("expected user %d, got %+v", u.ID, got)
	}
}

func TestGetUserMissing(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	got, err := GetUser(ctx, database, 42)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing user, got %+v", got)
	}
}

func TestDuplicateUsernameRejected(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := CreateUser(ctx, database, "VP", "hash"); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if _, err := CreateUser(ctx, database, "VP", "hash"); err == nil {
		t.Error("expected duplicate username to be rejected")
	}
}

func TestUpdateUserPassword(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	u, _ := CreateUser(ctx, database, "VP", "old-hash")
	if err := UpdateUserPassword(ctx, database, u.ID, "new-hash"); err != nil {
		t.Fatalf("UpdateUserPassword: %v", err)
	}

	got, _ := GetUser(ctx, database, u.ID)
	if got.PasswordHash != "new-hash" {
		t.Errorf("expected updated hash, got %q", got.PasswordHash)
	}
}

func TestSeedDemoCreatesFixedUsers(t *testing.T) {
	database := db.NewTestDB(t)

	if err := db.SeedDemo(database); err != nil {
		t.Fatalf("SeedDemo: %v", err)
	}

	users, err := ListUsers(context.Background(), database)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("expected 3 demo users, got %d", len(users))
	}
	names := map[string]bool{}
	for _, u := range users {
		names[u.Username] = true
	}
	for _, want := range []string{"VP", "TT", "YS"} {
		if !names[want] {
			t.Errorf("expected seeded user %s", want)
		}
	}
}

func TestSeedDemoOnPopulatedDatabase(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if err := db.SeedDemo(database); err != nil {
		t.Fatalf("SeedDemo: %v", err)
	}

	vp, err := GetUserByUsername(ctx, database, "VP")
	if err != nil || vp == nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}

	// Records referencing a demo manager must survive a re-seed.
	customer, err := CreateCustomer(ctx, database, vp.ID, CustomerFields{Title: "Acme"})
	if err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}

	// A changed password is reset, extra accounts stay.
	if err := UpdateUserPassword(ctx, database, vp.ID, "tampered"); err != nil {
		t.Fatalf("UpdateUserPassword: %v", err)
	}
	if _, err := CreateUser(ctx, database, "extra", "hash"); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	if err := db.SeedDemo(database); err != nil {
		t.Fatalf("SeedDemo on populated database: %v", err)
	}

	got, err := GetCustomer(ctx, database, customer.ID, vp.ID, false)
	if err != nil {
		t.Fatalf("GetCustomer after re-seed: %v", err)
	}
	if got.ManagerID != vp.ID {
		t.Errorf("expected customer to keep manager %d, got %d", vp.ID, got.ManagerID)
	}

	vp, err = GetUserByUsername(ctx, database, "VP")
	if err != nil || vp == nil {
		t.Fatalf("GetUserByUsername after re-seed: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(vp.PasswordHash), []byte(db.DemoPassword)); err != nil {
		t.Error("expected re-seed to restore the demo password")
	}

	extra, err := GetUserByUsername(ctx, database, "extra")
	if err != nil || extra == nil {
		t.Errorf("expected non-demo account to survive re-seed, got %+v (%v)", extra, err)
	}
}
