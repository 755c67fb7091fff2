// Package forms validates untrusted form input before it reaches the
// store. Field-shape rules are declarative (go-playground/validator);
// the cross-record email-uniqueness rule queries the store directly.
// Uniqueness checks here are best-effort: the store's own duplicate
// rejection is what holds under concurrent registration.
package forms

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"Userdeck/store"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

const (
	msgRequired     = "This field is required."
	msgInvalidEmail = "Invalid email address."
	msgEmailTaken   = "This email is already registered."
	msgMismatch     = "Passwords must match"
)

// Errors maps field names to human-readable validation messages.
type Errors map[string][]string

func (e Errors) Valid() bool {
	return len(e) == 0
}

func (e Errors) add(field, message string) {
	e[field] = append(e[field], message)
}

// checkEmail applies the required + shape rules shared by every form.
func checkEmail(errs Errors, email string) bool {
	if email == "" {
		errs.add("email", msgRequired)
		return false
	}
	if err := validate.Var(email, "email"); err != nil {
		errs.add("email", msgInvalidEmail)
		return false
	}
	return true
}

// emailTaken reports whether any user other than excludeID holds email.
func emailTaken(ctx context.Context, users store.Users, email string, excludeID int64) (bool, error) {
	existing, err := users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("uniqueness check failed: %w", err)
	}
	return existing.ID != excludeID, nil
}

type RegisterForm struct {
	Email           string
	Password        string
	ConfirmPassword string
}

func (f *RegisterForm) Validate(ctx context.Context, users store.Users) (Errors, error) {
	f.Email = strings.TrimSpace(f.Email)
	errs := Errors{}

	if checkEmail(errs, f.Email) {
		taken, err := emailTaken(ctx, users, f.Email, 0)
		if err != nil {
			return nil, err
		}
		if taken {
			errs.add("email", msgEmailTaken)
		}
	}

	if f.Password == "" {
		errs.add("password", msgRequired)
	}
	if f.ConfirmPassword == "" {
		errs.add("confirm_password", msgRequired)
	} else if f.ConfirmPassword != f.Password {
		errs.add("confirm_password", msgMismatch)
	}

	return errs, nil
}

type LoginForm struct {
	Email    string
	Password string
}

func (f *LoginForm) Validate() Errors {
	f.Email = strings.TrimSpace(f.Email)
	errs := Errors{}

	checkEmail(errs, f.Email)
	if f.Password == "" {
		errs.add("password", msgRequired)
	}

	return errs
}

type EditAccountForm struct {
	Email string
	// OriginalEmail is the user's current email; submitting it unchanged
	// skips the uniqueness check entirely.
	OriginalEmail string
}

func (f *EditAccountForm) Validate(ctx context.Context, users store.Users) (Errors, error) {
	f.Email = strings.TrimSpace(f.Email)
	errs := Errors{}

	if checkEmail(errs, f.Email) && f.Email != f.OriginalEmail {
		taken, err := emailTaken(ctx, users, f.Email, 0)
		if err != nil {
			return nil, err
		}
		if taken {
			errs.add("email", msgEmailTaken)
		}
	}

	return errs, nil
}
