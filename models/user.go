package models

import "time"

type User struct {
	ID           int64     `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	IsAdmin      bool      `db:"is_admin"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// SubjectID is the stable identifier the session layer binds a cookie to.
func (u *User) SubjectID() int64 {
	return u.ID
}

// Active reports whether this user may hold a session. There is no
// disable or delete path, so any persisted user is active.
func (u *User) Active() bool {
	return u.ID != 0
}
