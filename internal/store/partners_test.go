package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/erpfil/crm/internal/db"
)

func partnerTypeID(t *testing.T, database *sql.DB, title string) int64 {
	t.Helper()
	var id int64
	if err := database.QueryRow(`SELECT id FROM partner_types WHERE title = ?`, title).Scan(&id); err != nil {
		t.Fatalf("looking up partner type %q: %v", title, err)
	}
	return id
}

func TestCreatePartnerWithBlankOptionalFields(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	manager := createTestUser(t, database, "VP")

	p, err := CreatePartner(ctx, database, manager, PartnerFields{
		Title:  "Acme",
		TypeID: partnerTypeID(t, database, "Customer"),
	})
	if err != nil {
		t.Fatalf("CreatePartner: %v", err)
	}
	if p.TypeTitle != "Customer" {
		t.Errorf("expected joined type title 'Customer', got %q", p.TypeTitle)
	}

	partners, err := ListPartners(ctx, database)
	if err != nil {
		t.Fatalf("ListPartners: %v", err)
	}
	if len(partners) != 1 || partners[0].Title != "Acme" {
		t.Fatalf("expected one partner 'Acme', got %+v", partners)
	}

	var nulls int
	err = database.QueryRow(
		`SELECT COUNT(*) FROM partners
		 WHERE id = ? AND full_name IS NULL AND phone IS NULL AND website IS NULL
		   AND contact_person IS NULL AND address IS NULL AND note IS NULL`, p.ID,
	).Scan(&nulls)
	if err != nil {
		t.Fatalf("querying nulls: %v", err)
	}
	if nulls != 1 {
		t.Error("expected blank optional fields to be stored as NULL")
	}
}

func TestGetPartnerNotFound(t *testing.T) {
	database := db.NewTestDB(t)
	actor := createTestUser(t, database, "VP")

	_, err := GetPartner(context.Background(), database, 12345, actor, false)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListDealPartnersFiltersByCustomerFlag(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	manager := createTestUser(t, database, "VP")

	CreatePartner(ctx, database, manager, PartnerFields{
		Title: "Buyer", TypeID: partnerTypeID(t, database, "Customer"),
	})
	CreatePartner(ctx, database, manager, PartnerFields{
		Title: "Vendor", TypeID: partnerTypeID(t, database, "Supplier"),
	})
	CreatePartner(ctx, database, manager, PartnerFields{
		Title: "Lead", TypeID: partnerTypeID(t, database, "Prospect"),
	})

	all, err := ListPartners(ctx, database)
	if err != nil {
		t.Fatalf("ListPartners: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 partners, got %d", len(all))
	}

	dealable, err := ListDealPartners(ctx, database)
	if err != nil {
		t.Fatalf("ListDealPartners: %v", err)
	}
	if len(dealable) != 2 {
		t.Fatalf("expected 2 deal partners, got %d", len(dealable))
	}
	// Ordered by title: Buyer, Lead.
	if dealable[0].Title != "Buyer" || dealable[1].Title != "Lead" {
		t.Errorf("unexpected deal partners: %q, %q", dealable[0].Title, dealable[1].Title)
	}
}

func TestUpdatePartnerFullFieldSet(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	manager := createTestUser(t, database, "VP")

	customerType := partnerTypeID(t, database, "Customer")
	supplierType := partnerTypeID(t, database, "Supplier")

	p, _ := CreatePartner(ctx, database, manager, PartnerFields{
		Title: "Acme", TypeID: customerType, Phone: "111",
	})

	err := UpdatePartner(ctx, database, p.ID, PartnerFields{
		Title:   "Acme GmbH",
		TypeID:  supplierType,
		Website: "https://acme.example",
	})
	if err != nil {
		t.Fatalf("UpdatePartner: %v", err)
	}

	got, err := GetPartner(ctx, database, p.ID, manager, false)
	if err != nil {
		t.Fatalf("GetPartner: %v", err)
	}
	if got.Title != "Acme GmbH" || got.TypeID != supplierType || got.Website != "https://acme.example" {
		t.Errorf("update not applied: %+v", got)
	}
	// Phone was blank in the update field set, so it is now NULL.
	if got.Phone != "" {
		t.Errorf("expected phone cleared, got %q", got.Phone)
	}
}

func TestPartnerLogoRoundTrip(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	manager := createTestUser(t, database, "VP")

	p, _ := CreatePartner(ctx, database, manager, PartnerFields{
		Title: "Acme", TypeID: partnerTypeID(t, database, "Customer"),
	})

	logo := []byte("fake jpeg bytes")
	if err := SetPartnerLogo(ctx, database, p.ID, logo, "image/jpeg"); err != nil {
		t.Fatalf("SetPartnerLogo: %v", err)
	}

	data, mime, err := GetPartnerLogo(ctx, database, p.ID)
	if err != nil {
		t.Fatalf("GetPartnerLogo: %v", err)
	}
	if string(data) != "fake jpeg bytes" {
		t.Errorf("unexpected logo data: %q", string(data))
	}
	if mime != "image/jpeg" {
		t.Errorf("expected image/jpeg, got %q", mime)
	}
}

func TestDeletePartner(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	manager := createTestUser(t, database, "VP")

	p, _ := CreatePartner(ctx, database, manager, PartnerFields{
		Title: "Gone", TypeID: partnerTypeID(t, database, "Customer"),
	})
	if err := DeletePartner(ctx, database, p.ID); err != nil {
		t.Fatalf("DeletePartner: %v", err)
	}

	_, err := GetPartner(ctx, database, p.ID, manager, false)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestListPartnerTypes(t *testing.T) {
	database := db.NewTestDB(t)

	types, err := ListPartnerTypes(context.Background(), database)
	if err != nil {
		t.Fatalf("ListPartnerTypes: %v", err)
	}
	if len(types) != 3 {
		t.Fatalf("expected 3 seeded types, got %d", len(types))
	}
	// Ordered by title.
	if types[0].Title != "Customer" || !types[0].Customer {
		t.Errorf("expected 'Customer' type with flag first, got %+v", types[0])
	}
}
