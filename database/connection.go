package database

import (
	"database/sql"
	"fmt"
	"time"

	"Userdeck/config"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Connect opens the pool and verifies connectivity. The caller owns the
// handle and closes it at shutdown.
func Connect(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Pool limits keep PostgreSQL from running out of client slots.
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}
