package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Zyntrix-company/Qruzine/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRepository struct {
	mu   sync.RWMutex
	data map[primitive.ObjectID]domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{data: make(map[primitive.ObjectID]domain.User)}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if r.emailTaken(user) {
		return fmt.Errorf("user %w", domain.ErrConflict)
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.data[user.ID] = *user
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.data[id]
	if !ok {
		return nil, fmt.Errorf("user %w", domain.ErrNotFound)
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, user := range r.data {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user %w", domain.ErrNotFound)
}

func (r *UserRepository) ListByRole(_ context.Context, role string) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []domain.User{}
	for _, user := range r.data {
		if user.Role == role {
			out = append(out, user)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *UserRepository) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.data[user.ID]; !ok {
		return fmt.Errorf("user %w", domain.ErrNotFound)
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if r.emailTaken(user) {
		return fmt.Errorf("user %w", domain.ErrConflict)
	}
	user.UpdatedAt = time.Now()
	r.data[user.ID] = *user
	return nil
}

func (r *UserRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.data[id]; !ok {
		return fmt.Errorf("user %w", domain.ErrNotFound)
	}
	delete(r.data, id)
	return nil
}

func (r *UserRepository) CountByRole(_ context.Context, role string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, user := range r.data {
		if user.Role == role {
			n++
		}
	}
	return n, nil
}

func (r *UserRepository) emailTaken(user *domain.User) bool {
	for id, existing := range r.data {
		if id != user.ID && existing.Email == user.Email {
			return true
		}
	}
	return false
}
