package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// Migrate creates the schema if it does not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            VARCHAR(64) PRIMARY KEY,
			email         VARCHAR(255) NOT NULL UNIQUE,
			full_name     VARCHAR(255) NOT NULL DEFAULT '',
			password_hash VARCHAR(255) NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS health_reports (
			id          VARCHAR(64) PRIMARY KEY,
			user_id     VARCHAR(64) NOT NULL,
			report_type VARCHAR(32) NOT NULL,
			report_date VARCHAR(32) NOT NULL,
			status      VARCHAR(16) NOT NULL,
			file_name   VARCHAR(255) NOT NULL,
			file_url    TEXT,
			bp          VARCHAR(64) NOT NULL DEFAULT '',
			sugar       VARCHAR(64) NOT NULL DEFAULT '',
			weight      VARCHAR(64) NOT NULL DEFAULT '',
			notes       TEXT,
			summary     TEXT,
			analysis    TEXT,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_reports_user ON health_reports (user_id, created_at)`,
		`CREATE TABLE IF NOT EXISTS vitals (
			id         VARCHAR(64) PRIMARY KEY,
			user_id    VARCHAR(64) NOT NULL,
			vital_type VARCHAR(32) NOT NULL,
			value      VARCHAR(64) NOT NULL,
			vital_date VARCHAR(32) NOT NULL,
			status     VARCHAR(32) NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_vitals_user ON vitals (user_id, created_at)`,
	}
	for _, q := range stmts {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("running migration: %w", err)
		}
	}
	return nil
}
