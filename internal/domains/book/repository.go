package book

import (
	"context"

	"library-backend/internal/shared/types"
)

// Filter selects books. Fields conjoin; zero values do not constrain.
// AuthorIDs is the resolved form of an author-side criterion: nil means
// unconstrained, a non-nil empty slice matches nothing. A book matches
// AuthorIDs when it references at least one id in the set.
// The publish date window is half-open: start inclusive, end exclusive.
// A book without a publish date never matches a dated window.
type Filter struct {
	ID               string
	AuthorID         string
	AuthorIDs        []string
	Title            string // case-insensitive substring
	Genres           []string
	ISBN13           string
	ISBN10           string
	Publisher        string // case-insensitive substring
	PublishDateStart *types.Date
	PublishDateEnd   *types.Date
	Limit            int
}

// Repository is the book data access contract.
type Repository interface {
	GetByID(ctx context.Context, id string) (*Book, error)
	Insert(ctx context.Context, b *Book) (*Book, error)
	Update(ctx context.Context, id string, mutate func(*Book) error) (*Book, error)
	Delete(ctx context.Context, id string) error
	Query(ctx context.Context, f Filter) ([]Book, error)
}
