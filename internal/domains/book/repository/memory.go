package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/book"
	"library-backend/internal/shared/apperror"
	"library-backend/internal/shared/match"
)

// MemoryRepository is the in-process book store, mirroring the author
// memory store: map plus order slice under an RWMutex, clone on read and
// write.
type MemoryRepository struct {
	mu    sync.RWMutex
	books map[string]*book.Book
	order []string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{books: make(map[string]*book.Book)}
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*book.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.books[id]
	if !ok {
		return nil, apperror.NewNotFound("Book", id)
	}
	return b.Clone(), nil
}

func (r *MemoryRepository) Insert(ctx context.Context, b *book.Book) (*book.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := b.Clone()
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.books[stored.ID] = stored
	r.order = append(r.order, stored.ID)
	return stored.Clone(), nil
}

func (r *MemoryRepository) Update(ctx context.Context, id string, mutate func(*book.Book) error) (*book.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.books[id]
	if !ok {
		return nil, apperror.NewNotFound("Book", id)
	}

	next := current.Clone()
	if err := mutate(next); err != nil {
		return nil, err
	}
	next.ID = current.ID
	next.CreatedAt = current.CreatedAt
	next.UpdatedAt = time.Now().UTC()

	r.books[id] = next
	return next.Clone(), nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[id]; !ok {
		return apperror.NewNotFound("Book", id)
	}
	delete(r.books, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *MemoryRepository) Query(ctx context.Context, f book.Filter) ([]book.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []book.Book
	for _, id := range r.order {
		b := r.books[id]
		if !matches(b, f) {
			continue
		}
		out = append(out, *b.Clone())
		if f.Limit > 0 && len(out) >= f.Limit {
			break
		}
	}
	return out, nil
}

func matches(b *book.Book, f book.Filter) bool {
	if f.ID != "" && b.ID != f.ID {
		return false
	}
	if f.AuthorID != "" && !match.ContainsString(b.AuthorIDs, f.AuthorID) {
		return false
	}
	if f.AuthorIDs != nil && !match.Intersects(b.AuthorIDs, f.AuthorIDs) {
		return false
	}
	if !match.Fold(b.Title, f.Title) {
		return false
	}
	if !match.HasAll(b.Genres, f.Genres) {
		return false
	}
	if f.ISBN13 != "" && b.ISBN13 != f.ISBN13 {
		return false
	}
	if f.ISBN10 != "" && b.ISBN10 != f.ISBN10 {
		return false
	}
	if !match.Fold(b.Publisher, f.Publisher) {
		return false
	}
	if f.PublishDateStart != nil || f.PublishDateEnd != nil {
		if b.PublishDate == nil {
			return false
		}
		if f.PublishDateStart != nil && b.PublishDate.Before(f.PublishDateStart.Time) {
			return false
		}
		if f.PublishDateEnd != nil && !b.PublishDate.Before(f.PublishDateEnd.Time) {
			return false
		}
	}
	return true
}
