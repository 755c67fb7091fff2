package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"Userdeck/models"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

const userColumns = "id, email, password_hash, is_admin, created_at, updated_at"

// Postgres implements Users on top of a pgx-driven *sql.DB.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return p.scanOne(p.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = $1", email))
}

func (p *Postgres) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return p.scanOne(p.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1", id))
}

func (p *Postgres) Create(ctx context.Context, email, password string, isAdmin bool) (*models.User, error) {
	hashed, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := p.scanOne(p.db.QueryRowContext(ctx,
		"INSERT INTO users (email, password_hash, is_admin) VALUES ($1, $2, $3) RETURNING "+userColumns,
		email, hashed, isAdmin))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (p *Postgres) UpdateEmail(ctx context.Context, user *models.User, newEmail string) error {
	_, err := p.db.ExecContext(ctx,
		"UPDATE users SET email = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2",
		newEmail, user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to update email: %w", err)
	}
	user.Email = newEmail
	return nil
}

func (p *Postgres) List(ctx context.Context) ([]models.User, error) {
	rows, err := p.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (p *Postgres) scanOne(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
