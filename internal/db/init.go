package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    login TEXT PRIMARY KEY,
    password_hash BYTEA NOT NULL,
    total_score BIGINT NOT NULL DEFAULT 0,
    focus_seconds_today BIGINT NOT NULL DEFAULT 0,
    streak_last_active DATE,
    streak_run INT NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS catalogs (
    name TEXT PRIMARY KEY,
    item_count BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS catalog_progress (
    user_login TEXT REFERENCES users(login) ON DELETE CASCADE,
    catalog TEXT NOT NULL,
    counter BIGINT NOT NULL DEFAULT 0,
    PRIMARY KEY (user_login, catalog)
);
`

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
