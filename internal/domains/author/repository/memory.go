package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/author"
	"library-backend/internal/shared/apperror"
	"library-backend/internal/shared/match"
)

// MemoryRepository is the in-process author store: a map guarded by an
// RWMutex plus an order slice preserving insertion order for listings.
// Entities are cloned on the way in and out.
type MemoryRepository struct {
	mu      sync.RWMutex
	authors map[string]*author.Author
	order   []string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{authors: make(map[string]*author.Author)}
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*author.Author, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.authors[id]
	if !ok {
		return nil, apperror.NewNotFound("Author", id)
	}
	return a.Clone(), nil
}

func (r *MemoryRepository) Insert(ctx context.Context, a *author.Author) (*author.Author, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := a.Clone()
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.authors[stored.ID] = stored
	r.order = append(r.order, stored.ID)
	return stored.Clone(), nil
}

// Update runs mutate on a copy of the stored author while holding the write
// lock, so concurrent patches to the same id apply one at a time against
// the latest state.
func (r *MemoryRepository) Update(ctx context.Context, id string, mutate func(*author.Author) error) (*author.Author, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.authors[id]
	if !ok {
		return nil, apperror.NewNotFound("Author", id)
	}

	next := current.Clone()
	if err := mutate(next); err != nil {
		return nil, err
	}
	next.ID = current.ID
	next.CreatedAt = current.CreatedAt
	next.UpdatedAt = time.Now().UTC()

	r.authors[id] = next
	return next.Clone(), nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.authors[id]; !ok {
		return apperror.NewNotFound("Author", id)
	}
	delete(r.authors, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *MemoryRepository) Query(ctx context.Context, f author.Filter) ([]author.Author, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	allowed := map[string]struct{}{}
	if f.IDs != nil {
		for _, id := range f.IDs {
			allowed[id] = struct{}{}
		}
	}

	var out []author.Author
	for _, id := range r.order {
		a := r.authors[id]
		if !matches(a, f, allowed) {
			continue
		}
		out = append(out, *a.Clone())
		if f.Limit > 0 && len(out) >= f.Limit {
			break
		}
	}
	return out, nil
}

func matches(a *author.Author, f author.Filter, allowed map[string]struct{}) bool {
	if f.ID != "" && a.ID != f.ID {
		return false
	}
	if f.IDs != nil {
		if _, ok := allowed[a.ID]; !ok {
			return false
		}
	}
	if !match.Fold(a.FullName, f.FullName) {
		return false
	}
	if !match.HasAll(a.Genres, f.Genres) {
		return false
	}
	return true
}
