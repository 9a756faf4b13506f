package author

import "context"

// BookLookup resolves book-side criteria into author id sets. Implemented
// by the catalog resolver; declared here so this package stays independent
// of the book domain.
type BookLookup interface {
	// AuthorIDsForBook returns the author ids of the given book, or an
	// empty set when the book does not exist.
	AuthorIDsForBook(ctx context.Context, bookID string) ([]string, error)

	// AuthorIDsForBookTitle returns the union of author ids across books
	// whose title contains the given string, case-insensitively.
	AuthorIDsForBookTitle(ctx context.Context, title string) ([]string, error)
}

// Service is the author business logic contract.
type Service interface {
	Create(ctx context.Context, req *CreateAuthorRequest) (*Author, error)
	Edit(ctx context.Context, id string, req *EditAuthorRequest) (*Author, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*Author, error)
	Search(ctx context.Context, query *SearchAuthorsQuery) ([]Author, error)
}
