package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/erpfil/crm/internal/db"
)

func createTestUser(t *testing.T, database *sql.DB, username string) int64 {
	t.Helper()
	u, err := CreateUser(context.Background(), database, username, "hash")
	if err != nil {
		t.Fatalf("CreateUser(%s): %v", username, err)
	}
	return u.ID
}

func TestCreateAndGetCustomer(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	manager := createTestUser(t, database, "VP")

	c, err := CreateCustomer(ctx, database, manager, CustomerFields{
		Title:    "  Acme Ltd ",
		FullName: "Acme Limited",
		Phone:    "+1 555 0100",
	})
	if err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}
	if c.Title != "Acme Ltd" {
		t.Errorf("expected trimmed title 'Acme Ltd', got %q", c.Title)
	}
	if c.ManagerID != manager {
		t.Errorf("expected manager %d, got %d", manager, c.ManagerID)
	}
	if c.ManagerName != "VP" {
		t.Errorf("expected manager name VP, got %q", c.ManagerName)
	}
}

func TestCreateCustomerBlankFieldsStoredAsNull(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	manager := createTestUser(t, database, "VP")

	c, err := CreateCustomer(ctx, database, manager, CustomerFields{
		Title: "Acme",
		Phone: "   ",
	})
	if err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}

	var nulls int
	err = database.QueryRow(
		`SELECT COUNT(*) FROM customers
		 WHERE id = ? AND phone IS NULL AND full_name IS NULL AND website IS NULL
		   AND contact_person IS NULL AND address IS NULL AND note IS NULL`, c.ID,
	).Scan(&nulls)
	if err != nil {
		t.Fatalf("querying nulls: %v", err)
	}
	if nulls != 1 {
		t.Error("expected all blank optional fields to be stored as NULL")
	}
}

func TestGetCustomerNotFound(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	actor := createTestUser(t, database, "VP")

	for _, checkManager := range []bool{false, true} {
		_, err := GetCustomer(ctx, database, 9999, actor, checkManager)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("checkManager=%v: expected ErrNotFound, got %v", checkManager, err)
		}
	}
}

func TestGetCustomerForbiddenForOtherManager(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	owner := createTestUser(t, database, "VP")
	other := createTestUser(t, database, "TT")

	c, err := CreateCustomer(ctx, database, owner, CustomerFields{Title: "Acme"})
	if err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}

	// Default read path does not check ownership.
	if _, err := GetCustomer(ctx, database, c.ID, other, false); err != nil {
		t.Errorf("expected open read to succeed, got %v", err)
	}

	_, err = GetCustomer(ctx, database, c.ID, other, true)
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestListCustomersOrderedByTitle(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	manager := createTestUser(t, database, "VP")

	CreateCustomer(ctx, database, manager, CustomerFields{Title: "Zeta"})
	CreateCustomer(ctx, database, manager, CustomerFields{Title: "Alpha"})
	CreateCustomer(ctx, database, manager, CustomerFields{Title: "Mid"})

	customers, err := ListCustomers(ctx, database)
	if err != nil {
		t.Fatalf("ListCustomers: %v", err)
	}
	if len(customers) != 3 {
		t.Fatalf("expected 3 customers, got %d", len(customers))
	}
	if customers[0].Title != "Alpha" || customers[2].Title != "Zeta" {
		t.Errorf("expected title order, got %q %q %q",
			customers[0].Title, customers[1].Title, customers[2].Title)
	}
}

func TestUpdateCustomerMutableSubset(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	manager := createTestUser(t, database, "VP")

	c, _ := CreateCustomer(ctx, database, manager, CustomerFields{
		Title: "Acme",
		Phone: "+1 555 0100",
	})

	err := UpdateCustomer(ctx, database, c.ID, CustomerFields{
		Title:    "Acme Renamed",
		FullName: "Acme Corp",
	})
	if err != nil {
		t.Fatalf("UpdateCustomer: %v", err)
	}

	got, err := GetCustomer(ctx, database, c.ID, manager, false)
	if err != nil {
		t.Fatalf("GetCustomer: %v", err)
	}
	if got.Title != "Acme Renamed" || got.FullName != "Acme Corp" {
		t.Errorf("update not applied: %+v", got)
	}
	// Phone is outside the customer update subset and must survive.
	if got.Phone != "+1 555 0100" {
		t.Errorf("expected phone untouched, got %q", got.Phone)
	}
}

func TestDeleteCustomer(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	manager := createTestUser(t, database, "VP")

	c, _ := CreateCustomer(ctx, database, manager, CustomerFields{Title: "Gone"})
	if err := DeleteCustomer(ctx, database, c.ID); err != nil {
		t.Fatalf("DeleteCustomer: %v", err)
	}

	_, err := GetCustomer(ctx, database, c.ID, manager, false)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}
