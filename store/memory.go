package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"Userdeck/models"
)

// Memory is an in-memory Users implementation with the same uniqueness
// guarantees as Postgres. Used by tests.
type Memory struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*models.User
}

func NewMemory() *Memory {
	return &Memory{nextID: 1, users: make(map[int64]*models.User)}
}

func (m *Memory) FindByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) FindByID(_ context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyUser(u), nil
}

func (m *Memory) Create(_ context.Context, email, password string, isAdmin bool) (*models.User, error) {
	hashed, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == email {
			return nil, ErrDuplicateEmail
		}
	}

	now := time.Now()
	u := &models.User{
		ID:           m.nextID,
		Email:        email,
		PasswordHash: hashed,
		IsAdmin:      isAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	m.nextID++
	m.users[u.ID] = u
	return copyUser(u), nil
}

func (m *Memory) UpdateEmail(_ context.Context, user *models.User, newEmail string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == newEmail && u.ID != user.ID {
			return ErrDuplicateEmail
		}
	}

	stored, ok := m.users[user.ID]
	if !ok {
		return ErrNotFound
	}
	stored.Email = newEmail
	stored.UpdatedAt = time.Now()
	user.Email = newEmail
	return nil
}

func (m *Memory) List(_ context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	users := make([]models.User, 0, len(m.users))
	for id := int64(1); id < m.nextID; id++ {
		if u, ok := m.users[id]; ok {
			users = append(users, *u)
		}
	}
	return users, nil
}

func copyUser(u *models.User) *models.User {
	c := *u
	return &c
}
