package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
)

var (
	ErrNotFound    = errors.New("user not found")
	ErrEmailExists = errors.New("email already exists")
)

// Repository persists accounts and their role assignments. Lookups by email
// are case-insensitive.
type Repository interface {
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	Create(ctx context.Context, u User) (User, error)
	UpdatePassword(ctx context.Context, id, hash string) error
	Roles(ctx context.Context, userID string) ([]Role, error)
	AssignRole(ctx context.Context, userID string, role Role) error
}

type InMemoryRepository struct {
	mu    sync.RWMutex
	users map[string]User
}

func NewInMemoryRepository(seed []User) *InMemoryRepository {
	r := &InMemoryRepository{users: make(map[string]User, len(seed))}
	for _, u := range seed {
		u.Email = strings.ToLower(u.Email)
		r.users[u.ID] = u
	}
	return r
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return copyUser(u), nil
}

func (r *InMemoryRepository) GetByEmail(ctx context.Context, email string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	email = strings.ToLower(email)
	for _, u := range r.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return User{}, ErrNotFound
}

func (r *InMemoryRepository) Create(ctx context.Context, u User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.Email = strings.ToLower(u.Email)
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return User{}, ErrEmailExists
		}
	}
	r.users[u.ID] = copyUser(u)
	return u, nil
}

func (r *InMemoryRepository) UpdatePassword(ctx context.Context, id, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	u.PasswordHash = hash
	r.users[id] = u
	return nil
}

func (r *InMemoryRepository) Roles(ctx context.Context, userID string) ([]Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[userID]
	if !ok {
		return nil, nil
	}
	return append([]Role(nil), u.Roles...), nil
}

func (r *InMemoryRepository) AssignRole(ctx context.Context, userID string, role Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return ErrNotFound
	}
	if !u.HasRole(role) {
		u.Roles = append(u.Roles, role)
		r.users[userID] = u
	}
	return nil
}

func copyUser(u User) User {
	u.Roles = append([]Role(nil), u.Roles...)
	return u
}
