package book

import (
	"context"

	"library-backend/internal/domains/author"
)

// Service is the book business logic contract. Authors and ByAuthor serve
// the cross-listing endpoints.
type Service interface {
	Create(ctx context.Context, req *CreateBookRequest) (*Book, error)
	Edit(ctx context.Context, id string, req *EditBookRequest) (*Book, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*Book, error)
	Search(ctx context.Context, query *SearchBooksQuery) ([]Book, error)

	// Authors lists the book's authors in reference order, skipping ids
	// that no longer resolve. The book must exist.
	Authors(ctx context.Context, bookID string) ([]author.Author, error)

	// ByAuthor lists the books referencing the author. The author must
	// exist.
	ByAuthor(ctx context.Context, authorID string) ([]Book, error)
}
