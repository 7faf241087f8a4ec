package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// pragmas applied to every connection: WAL for concurrent page reads while a
// form submits, busy_timeout instead of immediate SQLITE_BUSY, and enforced
// foreign keys so a deal can never point at a deleted partner silently.
var pragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA busy_timeout=5000",
	"PRAGMA foreign_keys=ON",
	"PRAGMA synchronous=NORMAL",
}

// Open opens the SQLite database and applies the pragmas.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	return db, nil
}
