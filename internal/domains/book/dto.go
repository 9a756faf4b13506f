package book

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"library-backend/internal/shared/types"
)

var (
	isbn13Pattern = regexp.MustCompile(`^97[89]-?\d{1,5}-?\d{1,7}-?\d{1,7}-?\d$`)
	isbn10Pattern = regexp.MustCompile(`^\d{1,5}-?\d{1,7}-?\d{1,7}-?[\dXx]$`)
)

// BookView is the wire representation of a book.
type BookView struct {
	ID          string      `json:"id"`
	AuthorIDs   []string    `json:"authorIds"`
	Title       string      `json:"title"`
	About       string      `json:"about,omitempty"`
	Genres      []string    `json:"genres"`
	ISBN13      string      `json:"isbn13,omitempty"`
	ISBN10      string      `json:"isbn10,omitempty"`
	Publisher   string      `json:"publisher,omitempty"`
	PublishDate *types.Date `json:"publishDate,omitempty"`
}

func (b *Book) View() BookView {
	authorIDs := b.AuthorIDs
	if authorIDs == nil {
		authorIDs = []string{}
	}
	genres := b.Genres
	if genres == nil {
		genres = []string{}
	}
	return BookView{
		ID:          b.ID,
		AuthorIDs:   authorIDs,
		Title:       b.Title,
		About:       b.About,
		Genres:      genres,
		ISBN13:      b.ISBN13,
		ISBN10:      b.ISBN10,
		Publisher:   b.Publisher,
		PublishDate: b.PublishDate,
	}
}

func Views(books []Book) []BookView {
	out := make([]BookView, 0, len(books))
	for i := range books {
		out = append(out, books[i].View())
	}
	return out
}

// CreateBookRequest - POST /api/book
type CreateBookRequest struct {
	AuthorIDs   []string    `json:"authorIds"`
	Title       string      `json:"title"`
	About       string      `json:"about"`
	Genres      []string    `json:"genres"`
	ISBN13      string      `json:"isbn13"`
	ISBN10      string      `json:"isbn10"`
	Publisher   string      `json:"publisher"`
	PublishDate *types.Date `json:"publishDate"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.AuthorIDs,
			validation.Required.Error("authorIds is required"),
			validation.Length(1, 0).Error("authorIds must not be empty"),
		),
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 512),
		),
		validation.Field(&r.About, validation.Length(0, 5000)),
		validation.Field(&r.ISBN13,
			validation.When(r.ISBN13 != "",
				validation.Match(isbn13Pattern).Error("invalid isbn13"),
			),
		),
		validation.Field(&r.ISBN10,
			validation.When(r.ISBN10 != "",
				validation.Match(isbn10Pattern).Error("invalid isbn10"),
			),
		),
	)
}

// EditBookRequest - PUT /api/book/:id
// Merge-patch semantics matching EditAuthorRequest: nil leaves the field
// unchanged, non-nil replaces it.
type EditBookRequest struct {
	AuthorIDs   *[]string   `json:"authorIds"`
	Title       *string     `json:"title"`
	About       *string     `json:"about"`
	Genres      *[]string   `json:"genres"`
	ISBN13      *string     `json:"isbn13"`
	ISBN10      *string     `json:"isbn10"`
	Publisher   *string     `json:"publisher"`
	PublishDate *types.Date `json:"publishDate"`
}

func (r EditBookRequest) isEmpty() bool {
	return r.AuthorIDs == nil && r.Title == nil && r.About == nil &&
		r.Genres == nil && r.ISBN13 == nil && r.ISBN10 == nil &&
		r.Publisher == nil && r.PublishDate == nil
}

func (r EditBookRequest) Validate() error {
	if r.isEmpty() {
		return validation.NewError("validation_empty_patch", "at least one field must be set")
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty.Error("title cannot be blank")),
		validation.Field(&r.AuthorIDs,
			validation.When(r.AuthorIDs != nil,
				validation.By(func(interface{}) error {
					if len(*r.AuthorIDs) == 0 {
						return validation.NewError("validation_authors_empty", "authorIds must not be empty")
					}
					return nil
				}),
			),
		),
		validation.Field(&r.ISBN13,
			validation.When(r.ISBN13 != nil && *r.ISBN13 != "",
				validation.By(func(interface{}) error {
					if !isbn13Pattern.MatchString(*r.ISBN13) {
						return validation.NewError("validation_isbn13", "invalid isbn13")
					}
					return nil
				}),
			),
		),
		validation.Field(&r.ISBN10,
			validation.When(r.ISBN10 != nil && *r.ISBN10 != "",
				validation.By(func(interface{}) error {
					if !isbn10Pattern.MatchString(*r.ISBN10) {
						return validation.NewError("validation_isbn10", "invalid isbn10")
					}
					return nil
				}),
			),
		),
	)
}

// SearchBooksQuery is the filter object of POST /api/book/search. Present
// fields conjoin; author criteria resolve against the author store first.
type SearchBooksQuery struct {
	ID               string      `json:"id"`
	AuthorID         string      `json:"authorId"`
	AuthorFullName   string      `json:"authorFullName"`
	Title            string      `json:"title"`
	Genres           []string    `json:"genres"`
	ISBN13           string      `json:"isbn13"`
	ISBN10           string      `json:"isbn10"`
	Publisher        string      `json:"publisher"`
	PublishDateStart *types.Date `json:"publishDateStart"`
	PublishDateEnd   *types.Date `json:"publishDateEnd"`
}
