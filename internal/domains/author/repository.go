package author

import "context"

// Filter selects authors. Fields conjoin; zero values do not constrain.
// IDs is special: nil means unconstrained, a non-nil empty slice matches
// nothing (the resolved form of a cross-entity criterion with no hits).
type Filter struct {
	ID       string
	IDs      []string
	FullName string // case-insensitive substring
	Genres   []string
	Limit    int
}

// Repository is the author data access contract, implemented by the
// in-memory store and the postgres store.
type Repository interface {
	// GetByID returns the author or a NotFoundError.
	GetByID(ctx context.Context, id string) (*Author, error)

	// Insert stores a new author, assigning its id and timestamps.
	Insert(ctx context.Context, a *Author) (*Author, error)

	// Update applies mutate to the stored author under the store's write
	// lock, so concurrent merge-patches to the same id serialize. A
	// NotFoundError is returned when the id has no active author.
	Update(ctx context.Context, id string, mutate func(*Author) error) (*Author, error)

	// Delete removes the author permanently or returns a NotFoundError.
	Delete(ctx context.Context, id string) error

	// Query returns authors matching the filter in insertion order.
	Query(ctx context.Context, f Filter) ([]Author, error)
}
