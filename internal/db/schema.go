package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY,
    username      TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS customers (
    id             INTEGER PRIMARY KEY,
    title          TEXT NOT NULL,
    full_name      TEXT,
    phone          TEXT,
    website        TEXT,
    contact_person TEXT,
    address        TEXT,
    note           TEXT,
    manager_id     INTEGER NOT NULL REFERENCES users(id),
    created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS partner_types (
    id       INTEGER PRIMARY KEY,
    title    TEXT NOT NULL,
    customer INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS partners (
    id              INTEGER PRIMARY KEY,
    title           TEXT NOT NULL,
    partner_type_id INTEGER NOT NULL REFERENCES partner_types(id),
    full_name       TEXT,
    phone           TEXT,
    website         TEXT,
    contact_person  TEXT,
    address         TEXT,
    note            TEXT,
    logo            BLOB,
    logo_mime       TEXT,
    manager_id      INTEGER NOT NULL REFERENCES users(id),
    created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS deals (
    id          INTEGER PRIMARY KEY,
    title       TEXT NOT NULL,
    body        TEXT,
    manager_id  INTEGER NOT NULL REFERENCES users(id),
    customer_id INTEGER NOT NULL REFERENCES partners(id),
    created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
);
`

// EnsureSchema creates all tables if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
