package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erpfil/crm/internal/model"
)

// PartnerFields is the fixed set of form-supplied partner columns.
type PartnerFields struct {
	Title         string
	TypeID        int64
	FullName      string
	Phone         string
	Website       string
	ContactPerson string
	Address       string
	Note          string
}

// fields enumerates the columns a partner write may touch, with values
// normalized for storage. Partners use the same subset on create and update.
func (f PartnerFields) fields() Fields {
	return Fields{
		{"title", NormalizeValue(f.Title)},
		{"partner_type_id", f.TypeID},
		{"full_name", NormalizeValue(f.FullName)},
		{"phone", NormalizeValue(f.Phone)},
		{"website", NormalizeValue(f.Website)},
		{"contact_person", NormalizeValue(f.ContactPerson)},
		{"address", NormalizeValue(f.Address)},
		{"note", NormalizeValue(f.Note)},
	}
}

// CreatePartner creates a new partner managed by the given user.
func CreatePartner(ctx context.Context, db *sql.DB, managerID int64, f PartnerFields) (*model.Partner, error) {
	fields := append(f.fields(), Field{"manager_id", managerID})
	query, values := BuildInsert("partners", fields)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, query, values...)
	if err != nil {
		return nil, fmt.Errorf("creating partner: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting partner id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing partner: %w", err)
	}

	return GetPartner(ctx, db, id, managerID, false)
}

// GetPartner returns a partner with its manager's username and type title
// by ID.
//
// Returns ErrNotFound if no partner has the given ID. When checkManager is
// set, returns ErrForbidden if the partner is not managed by actorID; the
// existence check always runs first. Partner reads default to not checking
// the manager (any authenticated user may view).
func GetPartner(ctx context.Context, db *sql.DB, id, actorID int64, checkManager bool) (*model.Partner, error) {
	p := &model.Partner{}
	var fullName, phone, website, contactPerson, address, note, logoMime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT p.id, p.title, p.partner_type_id, p.full_name, p.phone, p.website,
		        p.contact_person, p.address, p.note, p.logo_mime,
		        p.manager_id, p.created_at, u.username, t.title
		 FROM partners p
		 JOIN users u ON u.id = p.manager_id
		 JOIN partner_types t ON t.id = p.partner_type_id
		 WHERE p.id = ?`, id,
	).Scan(&p.ID, &p.Title, &p.TypeID, &fullName, &phone, &website,
		&contactPerson, &address, &note, &logoMime,
		&p.ManagerID, &p.CreatedAt, &p.ManagerName, &p.TypeTitle)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("partner %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting partner: %w", err)
	}
	p.FullName = fullName.String
	p.Phone = phone.String
	p.Website = website.String
	p.ContactPerson = contactPerson.String
	p.Address = address.String
	p.Note = note.String
	p.LogoMime = logoMime.String

	if checkManager && p.ManagerID != actorID {
		return nil, fmt.Errorf("partner %d: %w", id, ErrForbidden)
	}

	return p, nil
}

// ListPartners returns all partners with their managers' usernames and type
// titles, ordered by title.
func ListPartners(ctx context.Context, db *sql.DB) ([]model.Partner, error) {
	return listPartners(ctx, db, false)
}

// ListDealPartners returns partners whose type carries the customer flag,
// ordered by title. These are the records a deal may reference.
func ListDealPartners(ctx context.Context, db *sql.DB) ([]model.Partner, error) {
	return listPartners(ctx, db, true)
}

func listPartners(ctx context.Context, db *sql.DB, customersOnly bool) ([]model.Partner, error) {
	query := `SELECT p.id, p.title, p.partner_type_id, p.full_name, p.phone, p.website,
	                 p.contact_person, p.address, p.note, p.logo_mime,
	                 p.manager_id, p.created_at, u.username, t.title
	          FROM partners p
	          JOIN users u ON u.id = p.manager_id
	          JOIN partner_types t ON t.id = p.partner_type_id`
	if customersOnly {
		query += ` WHERE t.customer = 1`
	}
	query += ` ORDER BY p.title`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing partners: %w", err)
	}
	defer rows.Close()

	var partners []model.Partner
	for rows.Next() {
		var p model.Partner
		var fullName, phone, website, contactPerson, address, note, logoMime sql.NullString
		if err := rows.Scan(&p.ID, &p.Title, &p.TypeID, &fullName, &phone, &website,
			&contactPerson, &address, &note, &logoMime,
			&p.ManagerID, &p.CreatedAt, &p.ManagerName, &p.TypeTitle); err != nil {
			return nil, fmt.Errorf("scanning partner: %w", err)
		}
		p.FullName = fullName.String
		p.Phone = phone.String
		p.Website = website.String
		p.ContactPerson = contactPerson.String
		p.Address = address.String
		p.Note = note.String
		p.LogoMime = logoMime.String
		partners = append(partners, p)
	}
	return partners, rows.Err()
}

// UpdatePartner updates a partner's mutable columns. The manager is never
// reassigned.
func UpdatePartner(ctx context.Context, db *sql.DB, id int64, f PartnerFields) error {
	prefix, values := BuildUpdate("partners", f.fields())

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, prefix+" WHERE id = ?", append(values, id)...); err != nil {
		return fmt.Errorf("updating partner: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing partner update: %w", err)
	}
	return nil
}

// DeletePartner deletes a partner. Callers confirm existence via GetPartner
// first; the delete itself is unconditional.
func DeletePartner(ctx context.Context, db *sql.DB, id int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM partners WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting partner: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing partner delete: %w", err)
	}
	return nil
}

// SetPartnerLogo sets a partner's logo data.
func SetPartnerLogo(ctx context.Context, db *sql.DB, id int64, logo []byte, mime string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE partners SET logo = ?, logo_mime = ? WHERE id = ?`,
		logo, mime, id,
	)
	if err != nil {
		return fmt.Errorf("setting partner logo: %w", err)
	}
	return nil
}

// GetPartnerLogo returns a partner's logo data and MIME type.
func GetPartnerLogo(ctx context.Context, db *sql.DB, id int64) ([]byte, string, error) {
	var logo []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT logo, logo_mime FROM partners WHERE id = ?`, id,
	).Scan(&logo, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting partner logo: %w", err)
	}
	return logo, mime.String, nil
}
