package service

import (
	"context"

	"library-backend/internal/domains/author"
	"library-backend/internal/shared/apperror"
	"library-backend/internal/shared/authz"
	"library-backend/internal/shared/match"
)

// AuthorService implements author.Service. Cross-entity search criteria are
// resolved into author id sets through the BookLookup before the repository
// filter runs.
type AuthorService struct {
	repo       author.Repository
	books      author.BookLookup
	maxResults int
}

func NewAuthorService(repo author.Repository, books author.BookLookup, maxResults int) *AuthorService {
	return &AuthorService{repo: repo, books: books, maxResults: maxResults}
}

func (s *AuthorService) Create(ctx context.Context, req *author.CreateAuthorRequest) (*author.Author, error) {
	if err := authz.Require(ctx, authz.ResourceAuthor, authz.ActionWrite); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, apperror.NewValidation("%s", err)
	}

	return s.repo.Insert(ctx, &author.Author{
		FullName: req.FullName,
		About:    req.About,
		Genres:   match.Dedupe(req.Genres),
	})
}

func (s *AuthorService) Edit(ctx context.Context, id string, req *author.EditAuthorRequest) (*author.Author, error) {
	if err := authz.Require(ctx, authz.ResourceAuthor, authz.ActionWrite); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, apperror.NewValidation("%s", err)
	}

	return s.repo.Update(ctx, id, func(a *author.Author) error {
		if req.FullName != nil {
			a.FullName = *req.FullName
		}
		if req.About != nil {
			a.About = *req.About
		}
		if req.Genres != nil {
			a.Genres = match.Dedupe(*req.Genres)
		}
		return nil
	})
}

// Delete removes the author only. Books keep their reference list; readers
// of a book's authors skip ids that no longer resolve.
func (s *AuthorService) Delete(ctx context.Context, id string) error {
	if err := authz.Require(ctx, authz.ResourceAuthor, authz.ActionWrite); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *AuthorService) Get(ctx context.Context, id string) (*author.Author, error) {
	return s.repo.GetByID(ctx, id)
}

// Search evaluates the conjunction of all present criteria. Book-side
// criteria resolve to author id sets first; an id set that resolves empty
// short-circuits the whole search to zero results.
func (s *AuthorService) Search(ctx context.Context, query *author.SearchAuthorsQuery) ([]author.Author, error) {
	if query == nil {
		query = &author.SearchAuthorsQuery{}
	}

	var ids []string
	if query.BookID != "" {
		resolved, err := s.books.AuthorIDsForBook(ctx, query.BookID)
		if err != nil {
			return nil, err
		}
		ids = match.Intersect(ids, resolved)
	}
	if query.BookTitle != "" {
		resolved, err := s.books.AuthorIDsForBookTitle(ctx, query.BookTitle)
		if err != nil {
			return nil, err
		}
		ids = match.Intersect(ids, resolved)
	}

	return s.repo.Query(ctx, author.Filter{
		ID:       query.ID,
		IDs:      ids,
		FullName: query.FullName,
		Genres:   query.Genres,
		Limit:    s.maxResults,
	})
}
