// Package catalog resolves the many-to-many relationship between authors
// and books across their stores. It sits above both domains, so neither
// domain package needs to import the other.
package catalog

import (
	"context"

	"library-backend/internal/domains/author"
	"library-backend/internal/domains/book"
	"library-backend/internal/shared/apperror"
	"library-backend/internal/shared/match"
)

// Resolver answers cross-entity questions against the two repositories.
// It implements author.BookLookup.
type Resolver struct {
	Authors author.Repository
	Books   book.Repository
}

func NewResolver(authors author.Repository, books book.Repository) *Resolver {
	return &Resolver{Authors: authors, Books: books}
}

// AuthorIDsForBook returns the book's author ids in reference order, or an
// empty set when the book does not exist. Search treats an unresolved book
// criterion as matching nothing, not as an error; store failures still
// propagate.
func (r *Resolver) AuthorIDsForBook(ctx context.Context, bookID string) ([]string, error) {
	b, err := r.Books.GetByID(ctx, bookID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return []string{}, nil
		}
		return nil, err
	}
	return append([]string{}, b.AuthorIDs...), nil
}

// AuthorIDsForBookTitle returns the union of author ids across books whose
// title contains the given string, deduplicated in first-seen order.
func (r *Resolver) AuthorIDsForBookTitle(ctx context.Context, title string) ([]string, error) {
	books, err := r.Books.Query(ctx, book.Filter{Title: title})
	if err != nil {
		return nil, err
	}
	var ids []string
	for i := range books {
		ids = append(ids, books[i].AuthorIDs...)
	}
	deduped := match.Dedupe(ids)
	if deduped == nil {
		deduped = []string{}
	}
	return deduped, nil
}
