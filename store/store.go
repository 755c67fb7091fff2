package store

import (
	"context"
	"errors"

	"Userdeck/models"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when an insert or update would claim
	// an email that already belongs to another user. This is the
	// authoritative uniqueness guard; the forms layer only pre-checks.
	ErrDuplicateEmail = errors.New("email already registered")
)

// Users is the credential store. It exclusively owns persistence of User
// records; everything else holds at most a transient reference.
type Users interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	Create(ctx context.Context, email, password string, isAdmin bool) (*models.User, error)
	UpdateEmail(ctx context.Context, user *models.User, newEmail string) error
	List(ctx context.Context) ([]models.User, error)
}

// HashPassword derives a salted bcrypt hash from a plaintext password.
// Hashing is deliberately synchronous; its cost must not be bypassed.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword reports whether the plaintext password matches the
// user's stored hash. bcrypt's comparison is constant-time.
func VerifyPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}
