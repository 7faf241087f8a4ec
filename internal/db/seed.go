package db

import (
	"database/sql"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DemoPassword is the password assigned to every seeded demo user.
const DemoPassword = "123456"

// demoUsers are the fixed manager accounts created by the seed command.
var demoUsers = []string{"VP", "TT", "YS"}

// defaultPartnerTypes seed the partner type lookup table. Types with the
// customer flag can appear on the customer side of a deal.
var defaultPartnerTypes = []struct {
	title    string
	customer bool
}{
	{"Customer", true},
	{"Supplier", false},
	{"Prospect", true},
}

// SeedDemo creates the fixed demo managers, resetting their passwords if the
// accounts already exist, and fills the partner type lookup table with
// defaults. Existing users, customers, partners and deals are left untouched,
// so seeding is safe on a populated database.
func SeedDemo(db *sql.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing demo password: %w", err)
	}

	for _, username := range demoUsers {
		if _, err := db.Exec(
			`INSERT INTO users (username, password_hash) VALUES (?, ?)
			 ON CONFLICT(username) DO UPDATE SET password_hash = excluded.password_hash`,
			username, string(hash),
		); err != nil {
			return fmt.Errorf("seeding user %s: %w", username, err)
		}
	}

	return SeedPartnerTypes(db)
}

// SeedPartnerTypes inserts the default partner types if the lookup table is
// empty. Idempotent, safe to run on every start.
func SeedPartnerTypes(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM partner_types`).Scan(&count); err != nil {
		return fmt.Errorf("counting partner types: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, pt := range defaultPartnerTypes {
		if _, err := db.Exec(
			`INSERT INTO partner_types (title, customer) VALUES (?, ?)`,
			pt.title, pt.customer,
		); err != nil {
			return fmt.Errorf("seeding partner type %s: %w", pt.title, err)
		}
	}
	return nil
}
