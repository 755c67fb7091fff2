package database

import (
	"database/sql"
	"fmt"
)

// RunMigrations creates the users table if it does not exist. Safe to run
// on every startup. The UNIQUE constraint on email is the store-level
// defense behind the validation layer's best-effort pre-check.
func RunMigrations(db *sql.DB) error {
	migrationSQL := `
	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		email VARCHAR(255) UNIQUE NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		is_admin BOOLEAN DEFAULT FALSE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`

	if _, err := db.Exec(migrationSQL); err != nil {
		return fmt.Errorf("failed to run users migration: %w", err)
	}

	return nil
}
