package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erpfil/crm/internal/model"
)

// CustomerFields is the fixed set of form-supplied customer columns.
type CustomerFields struct {
	Title         string
	FullName      string
	Phone         string
	Website       string
	ContactPerson string
	Address       string
	Note          string
}

// insertFields enumerates the columns a customer create may touch, with
// values normalized for storage.
func (f CustomerFields) insertFields(managerID int64) Fields {
	return Fields{
		{"title", NormalizeValue(f.Title)},
		{"full_name", NormalizeValue(f.FullName)},
		{"phone", NormalizeValue(f.Phone)},
		{"website", NormalizeValue(f.Website)},
		{"contact_person", NormalizeValue(f.ContactPerson)},
		{"address", NormalizeValue(f.Address)},
		{"note", NormalizeValue(f.Note)},
		{"manager_id", managerID},
	}
}

// updateFields enumerates the columns a customer update may touch. The
// mutable subset is narrower than on create.
func (f CustomerFields) updateFields() Fields {
	return Fields{
		{"title", NormalizeValue(f.Title)},
		{"full_name", NormalizeValue(f.FullName)},
	}
}

// CreateCustomer creates a new customer managed by the given user.
func CreateCustomer(ctx context.Context, db *sql.DB, managerID int64, f CustomerFields) (*model.Customer, error) {
	query, values := BuildInsert("customers", f.insertFields(managerID))

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, query, values...)
	if err != nil {
		return nil, fmt.Errorf("creating customer: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting customer id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing customer: %w", err)
	}

	return GetCustomer(ctx, db, id, managerID, false)
}

// GetCustomer returns a customer and its manager's username by ID.
//
// Returns ErrNotFound if no customer has the given ID. When checkManager is
// set, returns ErrForbidden if the customer is not managed by actorID; the
// existence check always runs first. Customer reads default to not checking
// the manager (any authenticated user may view).
func GetCustomer(ctx context.Context, db *sql.DB, id, actorID int64, checkManager bool) (*model.Customer, error) {
	c := &model.Customer{}
	var fullName, phone, website, contactPerson, address, note sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT c.id, c.title, c.full_name, c.phone, c.website, c.contact_person,
		        c.address, c.note, c.manager_id, c.created_at, u.username
		 FROM customers c
		 JOIN users u ON u.id = c.manager_id
		 WHERE c.id = ?`, id,
	).Scan(&c.ID, &c.Title, &fullName, &phone, &website, &contactPerson,
		&address, &note, &c.ManagerID, &c.CreatedAt, &c.ManagerName)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("customer %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting customer: %w", err)
	}
	c.FullName = fullName.String
	c.Phone = phone.String
	c.Website = website.String
	c.ContactPerson = contactPerson.String
	c.Address = address.String
	c.Note = note.String

	if checkManager && c.ManagerID != actorID {
		return nil, fmt.Errorf("customer %d: %w", id, ErrForbidden)
	}

	return c, nil
}

// ListCustomers returns all customers with their managers' usernames,
// ordered by title.
func ListCustomers(ctx context.Context, db *sql.DB) ([]model.Customer, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT c.id, c.title, c.full_name, c.phone, c.website, c.contact_person,
		        c.address, c.note, c.manager_id, c.created_at, u.username
		 FROM customers c
		 JOIN users u ON u.id = c.manager_id
		 ORDER BY c.title`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	defer rows.Close()

	var customers []model.Customer
	for rows.Next() {
		var c model.Customer
		var fullName, phone, website, contactPerson, address, note sql.NullString
		if err := rows.Scan(&c.ID, &c.Title, &fullName, &phone, &website, &contactPerson,
			&address, &note, &c.ManagerID, &c.CreatedAt, &c.ManagerName); err != nil {
			return nil, fmt.Errorf("scanning customer: %w", err)
		}
		c.FullName = fullName.String
		c.Phone = phone.String
		c.Website = website.String
		c.ContactPerson = contactPerson.String
		c.Address = address.String
		c.Note = note.String
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// UpdateCustomer updates a customer's mutable columns. The manager is never
// reassigned.
func UpdateCustomer(ctx context.Context, db *sql.DB, id int64, f CustomerFields) error {
	prefix, values := BuildUpdate("customers", f.updateFields())

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, prefix+" WHERE id = ?", append(values, id)...); err != nil {
		return fmt.Errorf("updating customer: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing customer update: %w", err)
	}
	return nil
}

// DeleteCustomer deletes a customer. Callers confirm existence via
// GetCustomer first; the delete itself is unconditional.
func DeleteCustomer(ctx context.Context, db *sql.DB, id int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting customer: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing customer delete: %w", err)
	}
	return nil
}
