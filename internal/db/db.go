package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

func Connect(connString string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(20)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

// Migrate creates the tables the API needs. Safe to run on every start.
func Migrate(ctx context.Context, dbx *sql.DB) error {
	tx, err := dbx.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration step %d: %w", i+1, err)
		}
	}

	return tx.Commit()
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id           SERIAL PRIMARY KEY,
		google_id    TEXT NOT NULL UNIQUE,
		email        TEXT NOT NULL DEFAULT '',
		display_name TEXT NOT NULL DEFAULT '',
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS goals (
		id                  UUID PRIMARY KEY,
		user_id             INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		title               TEXT NOT NULL,
		target_phrase       TEXT NOT NULL DEFAULT '',
		general_description TEXT NOT NULL DEFAULT '',
		created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at          TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS goals_user_idx ON goals (user_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS entries (
		id          UUID PRIMARY KEY,
		user_id     INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		date        DATE NOT NULL,
		tasks       JSONB NOT NULL DEFAULT '[]'::jsonb,
		total_score INTEGER NOT NULL DEFAULT 0,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS entries_user_date_idx ON entries (user_id, date DESC, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS analytics_events (
		id               BIGSERIAL PRIMARY KEY,
		event_name       TEXT NOT NULL,
		event_time       TIMESTAMPTZ NOT NULL,
		user_id          INTEGER NOT NULL,
		session_id       TEXT,
		platform         TEXT NOT NULL DEFAULT 'unknown',
		app_version      TEXT NOT NULL DEFAULT '',
		device_locale    TEXT,
		ip_country       TEXT,
		source_event_key TEXT UNIQUE,
		properties       JSONB NOT NULL DEFAULT '{}'::jsonb
	)`,
}
