package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/user"
	"library-backend/internal/shared/apperror"
	"library-backend/internal/shared/match"
)

// MemoryRepository is the in-process user store. A username index enforces
// byte-exact uniqueness under the same lock as the insert.
type MemoryRepository struct {
	mu         sync.RWMutex
	users      map[string]*user.User
	byUsername map[string]string
	order      []string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users:      make(map[string]*user.User),
		byUsername: make(map[string]string),
	}
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, apperror.NewNotFound("User", id)
	}
	return u.Clone(), nil
}

func (r *MemoryRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[username]
	if !ok {
		return nil, apperror.NewNotFound("User", username)
	}
	return r.users[id].Clone(), nil
}

func (r *MemoryRepository) Insert(ctx context.Context, u *user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byUsername[u.Username]; exists {
		return nil, apperror.NewConflict("Username exists")
	}

	stored := u.Clone()
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.users[stored.ID] = stored
	r.byUsername[stored.Username] = stored.ID
	r.order = append(r.order, stored.ID)
	return stored.Clone(), nil
}

func (r *MemoryRepository) Update(ctx context.Context, id string, mutate func(*user.User) error) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.users[id]
	if !ok {
		return nil, apperror.NewNotFound("User", id)
	}

	next := current.Clone()
	if err := mutate(next); err != nil {
		return nil, err
	}
	// Username is immutable.
	next.ID = current.ID
	next.Username = current.Username
	next.CreatedAt = current.CreatedAt
	next.UpdatedAt = time.Now().UTC()

	r.users[id] = next
	return next.Clone(), nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return apperror.NewNotFound("User", id)
	}
	delete(r.users, id)
	delete(r.byUsername, u.Username)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *MemoryRepository) Query(ctx context.Context, f user.Filter) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []user.User
	for _, id := range r.order {
		u := r.users[id]
		if f.ID != "" && u.ID != f.ID {
			continue
		}
		if !match.Fold(u.Username, f.Username) {
			continue
		}
		if !match.Fold(u.FullName, f.FullName) {
			continue
		}
		out = append(out, *u.Clone())
		if f.Limit > 0 && len(out) >= f.Limit {
			break
		}
	}
	return out, nil
}
