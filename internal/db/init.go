package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    full_name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS kotos (
    id TEXT PRIMARY KEY,
    seq BIGSERIAL,
    kotoba TEXT NOT NULL UNIQUE,
    tags TEXT[] NOT NULL DEFAULT '{}',
    lectura TEXT NOT NULL DEFAULT '',
    frase TEXT NOT NULL,
    espanol TEXT NOT NULL DEFAULT '',
    ingles TEXT NOT NULL DEFAULT '',
    is_pinned BOOLEAN NOT NULL DEFAULT FALSE,
    user_id TEXT NOT NULL REFERENCES users(id),
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    on_edit TIMESTAMPTZ,
    on_pin_koto TIMESTAMPTZ
);
`

// InitPostgres opens a connection to PostgreSQL, verifies it and creates the
// schema if it does not exist. The UNIQUE constraints on users.email and
// kotos.kotoba are the authoritative duplicate guards; application-level
// pre-checks only exist for friendlier error messages.
func InitPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return db, nil
}
