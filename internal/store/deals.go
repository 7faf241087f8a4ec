package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erpfil/crm/internal/model"
)

// DealFields is the fixed set of form-supplied deal columns.
type DealFields struct {
	Title      string
	Body       string
	CustomerID int64
}

// insertFields enumerates the columns a deal create may touch.
func (f DealFields) insertFields(managerID int64) Fields {
	return Fields{
		{"title", NormalizeValue(f.Title)},
		{"body", NormalizeValue(f.Body)},
		{"manager_id", managerID},
		{"customer_id", f.CustomerID},
	}
}

// updateFields enumerates the columns a deal update may touch. The customer
// reference is fixed at creation.
func (f DealFields) updateFields() Fields {
	return Fields{
		{"title", NormalizeValue(f.Title)},
		{"body", NormalizeValue(f.Body)},
	}
}

// CreateDeal creates a new deal managed by the given user.
func CreateDeal(ctx context.Context, db *sql.DB, managerID int64, f DealFields) (*model.Deal, error) {
	query, values := BuildInsert("deals", f.insertFields(managerID))

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, query, values...)
	if err != nil {
		return nil, fmt.Errorf("creating deal: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting deal id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing deal: %w", err)
	}

	return GetDeal(ctx, db, id, managerID, true)
}

// GetDeal returns a deal with its manager's username and customer title
// by ID.
//
// Returns ErrNotFound if no deal has the given ID. When checkManager is set,
// returns ErrForbidden if the deal is not managed by actorID; the existence
// check always runs first. Deal reads default to checking the manager; only
// the managing user may fetch a deal.
func GetDeal(ctx context.Context, db *sql.DB, id, actorID int64, checkManager bool) (*model.Deal, error) {
	d := &model.Deal{}
	var body sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT d.id, d.title, d.body, d.manager_id, d.customer_id, d.created_at,
		        u.username, p.title
		 FROM deals d
		 JOIN users u ON u.id = d.manager_id
		 JOIN partners p ON p.id = d.customer_id
		 WHERE d.id = ?`, id,
	).Scan(&d.ID, &d.Title, &body, &d.ManagerID, &d.CustomerID, &d.CreatedAt,
		&d.ManagerName, &d.CustomerTitle)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("deal %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting deal: %w", err)
	}
	d.Body = body.String

	if checkManager && d.ManagerID != actorID {
		return nil, fmt.Errorf("deal %d: %w", id, ErrForbidden)
	}

	return d, nil
}

// ListDeals returns all deals with manager usernames and customer titles,
// most recent first.
func ListDeals(ctx context.Context, db *sql.DB) ([]model.Deal, error) {
	return listDeals(ctx, db, 0)
}

// ListDealsByManager returns the deals managed by a single user, most recent
// first.
func ListDealsByManager(ctx context.Context, db *sql.DB, managerID int64) ([]model.Deal, error) {
	return listDeals(ctx, db, managerID)
}

func listDeals(ctx context.Context, db *sql.DB, managerID int64) ([]model.Deal, error) {
	query := `SELECT d.id, d.title, d.body, d.manager_id, d.customer_id, d.created_at,
	                 u.username, p.title
	          FROM deals d
	          JOIN users u ON u.id = d.manager_id
	          JOIN partners p ON p.id = d.customer_id`
	var args []any
	if managerID > 0 {
		query += ` WHERE d.manager_id = ?`
		args = append(args, managerID)
	}
	query += ` ORDER BY d.created_at DESC, d.id DESC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing deals: %w", err)
	}
	defer rows.Close()

	var deals []model.Deal
	for rows.Next() {
		var d model.Deal
		var body sql.NullString
		if err := rows.Scan(&d.ID, &d.Title, &body, &d.ManagerID, &d.CustomerID, &d.CreatedAt,
			&d.ManagerName, &d.CustomerTitle); err != nil {
			return nil, fmt.Errorf("scanning deal: %w", err)
		}
		d.Body = body.String
		deals = append(deals, d)
	}
	return deals, rows.Err()
}

// UpdateDeal updates a deal's mutable columns. The manager and customer
// references are never reassigned.
func UpdateDeal(ctx context.Context, db *sql.DB, id int64, f DealFields) error {
	prefix, values := BuildUpdate("deals", f.updateFields())

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, prefix+" WHERE id = ?", append(values, id)...); err != nil {
		return fmt.Errorf("updating deal: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing deal update: %w", err)
	}
	return nil
}

// DeleteDeal deletes a deal. Callers confirm existence and ownership via
// GetDeal first; the delete itself is unconditional.
func DeleteDeal(ctx context.Context, db *sql.DB, id int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM deals WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting deal: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing deal delete: %w", err)
	}
	return nil
}
