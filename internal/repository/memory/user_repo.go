// Package memory implements the repositories on process memory. Data lives
// as long as the process; values are copied in and out so callers never
// share state with the store.
package memory

import (
	"alcyxob/coach-platform/internal/domain"
	"alcyxob/coach-platform/internal/repository"
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type userRepository struct {
	mu      sync.RWMutex
	byID    map[primitive.ObjectID]domain.User
	byEmail map[string]primitive.ObjectID
}

// NewUserRepository creates an in-memory repository.UserRepository.
func NewUserRepository() repository.UserRepository {
	return &userRepository{
		byID:    make(map[primitive.ObjectID]domain.User),
		byEmail: make(map[string]primitive.ObjectID),
	}
}

func (r *userRepository) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	if user.Email == "" || user.PasswordHash == "" || user.Role == "" {
		return primitive.NilObjectID, errors.New("user email, password hash, and role are required")
	}
	key := strings.ToLower(user.Email)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byEmail[key]; taken {
		return primitive.NilObjectID, repository.ErrDuplicateKey
	}
	user.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.byID[user.ID] = *user
	r.byEmail[key] = user.ID
	return user.ID, nil
}

func (r *userRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u := r.byID[id]
	return &u, nil
}

func (r *userRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}
