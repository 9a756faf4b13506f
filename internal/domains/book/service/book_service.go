package service

import (
	"context"

	"library-backend/internal/domains/author"
	"library-backend/internal/domains/book"
	"library-backend/internal/shared/apperror"
	"library-backend/internal/shared/authz"
	"library-backend/internal/shared/match"
)

// BookService implements book.Service. It owns the author-reference
// invariant: every mutation that sets the reference list first checks that
// all ids resolve, and the list is deduplicated preserving order.
type BookService struct {
	repo       book.Repository
	authors    author.Repository
	maxResults int
}

func NewBookService(repo book.Repository, authors author.Repository, maxResults int) *BookService {
	return &BookService{repo: repo, authors: authors, maxResults: maxResults}
}

func (s *BookService) Create(ctx context.Context, req *book.CreateBookRequest) (*book.Book, error) {
	if err := authz.Require(ctx, authz.ResourceBook, authz.ActionWrite); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, apperror.NewValidation("%s", err)
	}

	authorIDs := match.Dedupe(req.AuthorIDs)
	if err := s.checkAuthorRefs(ctx, authorIDs); err != nil {
		return nil, err
	}

	return s.repo.Insert(ctx, &book.Book{
		AuthorIDs:   authorIDs,
		Title:       req.Title,
		About:       req.About,
		Genres:      match.Dedupe(req.Genres),
		ISBN13:      req.ISBN13,
		ISBN10:      req.ISBN10,
		Publisher:   req.Publisher,
		PublishDate: req.PublishDate,
	})
}

func (s *BookService) Edit(ctx context.Context, id string, req *book.EditBookRequest) (*book.Book, error) {
	if err := authz.Require(ctx, authz.ResourceBook, authz.ActionWrite); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, apperror.NewValidation("%s", err)
	}

	var authorIDs []string
	if req.AuthorIDs != nil {
		authorIDs = match.Dedupe(*req.AuthorIDs)
		if err := s.checkAuthorRefs(ctx, authorIDs); err != nil {
			return nil, err
		}
	}

	return s.repo.Update(ctx, id, func(b *book.Book) error {
		if req.AuthorIDs != nil {
			b.AuthorIDs = authorIDs
		}
		if req.Title != nil {
			b.Title = *req.Title
		}
		if req.About != nil {
			b.About = *req.About
		}
		if req.Genres != nil {
			b.Genres = match.Dedupe(*req.Genres)
		}
		if req.ISBN13 != nil {
			b.ISBN13 = *req.ISBN13
		}
		if req.ISBN10 != nil {
			b.ISBN10 = *req.ISBN10
		}
		if req.Publisher != nil {
			b.Publisher = *req.Publisher
		}
		if req.PublishDate != nil {
			b.PublishDate = req.PublishDate
		}
		return nil
	})
}

func (s *BookService) Delete(ctx context.Context, id string) error {
	if err := authz.Require(ctx, authz.ResourceBook, authz.ActionWrite); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *BookService) Get(ctx context.Context, id string) (*book.Book, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *BookService) Search(ctx context.Context, query *book.SearchBooksQuery) ([]book.Book, error) {
	if query == nil {
		query = &book.SearchBooksQuery{}
	}

	var authorIDs []string
	if query.AuthorFullName != "" {
		resolved, err := s.authors.Query(ctx, author.Filter{FullName: query.AuthorFullName})
		if err != nil {
			return nil, err
		}
		authorIDs = make([]string, 0, len(resolved))
		for i := range resolved {
			authorIDs = append(authorIDs, resolved[i].ID)
		}
	}

	return s.repo.Query(ctx, book.Filter{
		ID:               query.ID,
		AuthorID:         query.AuthorID,
		AuthorIDs:        authorIDs,
		Title:            query.Title,
		Genres:           query.Genres,
		ISBN13:           query.ISBN13,
		ISBN10:           query.ISBN10,
		Publisher:        query.Publisher,
		PublishDateStart: query.PublishDateStart,
		PublishDateEnd:   query.PublishDateEnd,
		Limit:            s.maxResults,
	})
}

func (s *BookService) Authors(ctx context.Context, bookID string) ([]author.Author, error) {
	b, err := s.repo.GetByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	out := make([]author.Author, 0, len(b.AuthorIDs))
	for _, id := range b.AuthorIDs {
		a, err := s.authors.GetByID(ctx, id)
		if err != nil {
			// Dangling reference from a deleted author.
			if apperror.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		out = append(out, *a)
	}
	return out, nil
}

func (s *BookService) ByAuthor(ctx context.Context, authorID string) ([]book.Book, error) {
	if _, err := s.authors.GetByID(ctx, authorID); err != nil {
		return nil, err
	}
	return s.repo.Query(ctx, book.Filter{AuthorID: authorID, Limit: s.maxResults})
}

func (s *BookService) checkAuthorRefs(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if _, err := s.authors.GetByID(ctx, id); err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewValidation("author with id %s does not exist", id)
			}
			return err
		}
	}
	return nil
}
