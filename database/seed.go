package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"Userdeck/store"
)

// SeedDefaultUsers creates the demo admin and regular accounts if they do
// not already exist. Development convenience only; main never calls this
// in production.
func SeedDefaultUsers(ctx context.Context, users store.Users) error {
	defaults := []struct {
		email    string
		password string
		isAdmin  bool
	}{
		{"admin@example.com", "admin123", true},
		{"user@example.com", "user123", false},
	}

	for _, d := range defaults {
		_, err := users.Create(ctx, d.email, d.password, d.isAdmin)
		if err != nil {
			if errors.Is(err, store.ErrDuplicateEmail) {
				continue
			}
			return fmt.Errorf("failed to seed user %s: %w", d.email, err)
		}
		slog.Info("Seeded default user", "email", d.email, "is_admin", d.isAdmin)
	}

	return nil
}
