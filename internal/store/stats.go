package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Stats holds entity counts for the dashboard.
type Stats struct {
	Customers int
	Partners  int
	Deals     int
}

// GetStats returns the total number of customers, partners and deals.
func GetStats(ctx context.Context, db *sql.DB) (*Stats, error) {
	s := &Stats{}
	row := db.QueryRowContext(ctx,
		`SELECT (SELECT COUNT(*) FROM customers),
		        (SELECT COUNT(*) FROM partners),
		        (SELECT COUNT(*) FROM deals)`,
	)
	if err := row.Scan(&s.Customers, &s.Partners, &s.Deals); err != nil {
		return nil, fmt.Errorf("getting stats: %w", err)
	}
	return s, nil
}
