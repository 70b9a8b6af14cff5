package memory

import (
	"context"
	"strings"
	"sync"

	"campaign-manager/domain/core/entities"
	pkgerrors "campaign-manager/pkg/errors"
)

// UserRepository is an in-memory ports.UserRepository
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*entities.User
}

// NewUserRepository creates an empty repository
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*entities.User)}
}

// FindByEmail returns the user or nil when absent
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.users[strings.ToLower(email)], nil
}

// Insert stores user, rejecting a duplicate email
func (r *UserRepository) Insert(ctx context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Email()]; exists {
		return pkgerrors.NewConflictError("user already exists").WithDetail("email", user.Email())
	}
	r.users[user.Email()] = user
	return nil
}
