package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erpfil/crm/internal/model"
)

// ListPartnerTypes returns all partner types ordered by title. Backs the
// partner form's type select.
func ListPartnerTypes(ctx context.Context, db *sql.DB) ([]model.PartnerType, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, title, customer FROM partner_types ORDER BY title`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing partner types: %w", err)
	}
	defer rows.Close()

	var types []model.PartnerType
	for rows.Next() {
		var t model.PartnerType
		if err := rows.Scan(&t.ID, &t.Title, &t.Customer); err != nil {
			return nil, fmt.Errorf("scanning partner type: %w", err)
		}
		types = append(types, t)
	}
	return types, rows.Err()
}
