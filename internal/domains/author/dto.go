package author

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// AuthorView is the wire representation of an author. Timestamps and
// internal bookkeeping stay server-side.
type AuthorView struct {
	ID       string   `json:"id"`
	FullName string   `json:"fullName"`
	About    string   `json:"about,omitempty"`
	Genres   []string `json:"genres"`
}

// View converts the entity to its wire form; a nil genre set serializes as
// an empty list.
func (a *Author) View() AuthorView {
	genres := a.Genres
	if genres == nil {
		genres = []string{}
	}
	return AuthorView{
		ID:       a.ID,
		FullName: a.FullName,
		About:    a.About,
		Genres:   genres,
	}
}

// Views maps a slice of entities to wire form, preserving order.
func Views(authors []Author) []AuthorView {
	out := make([]AuthorView, 0, len(authors))
	for i := range authors {
		out = append(out, authors[i].View())
	}
	return out
}

// CreateAuthorRequest - POST /api/author
type CreateAuthorRequest struct {
	FullName string   `json:"fullName"`
	About    string   `json:"about"`
	Genres   []string `json:"genres"`
}

func (r CreateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FullName,
			validation.Required.Error("fullName is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.About, validation.Length(0, 5000)),
	)
}

// EditAuthorRequest - PUT /api/author/:id
// Merge-patch semantics: nil fields are left unchanged, non-nil fields
// replace the stored value. An explicit empty string or empty list clears.
type EditAuthorRequest struct {
	FullName *string   `json:"fullName"`
	About    *string   `json:"about"`
	Genres   *[]string `json:"genres"`
}

func (r EditAuthorRequest) Validate() error {
	if r.FullName == nil && r.About == nil && r.Genres == nil {
		return validation.NewError("validation_empty_patch", "at least one field must be set")
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.FullName, validation.NilOrNotEmpty.Error("fullName cannot be blank")),
		validation.Field(&r.About, validation.Length(0, 5000)),
	)
}

// SearchAuthorsQuery is the filter object of POST /api/author/search.
// Absent fields do not constrain; present fields are conjoined.
type SearchAuthorsQuery struct {
	ID        string   `json:"id"`
	FullName  string   `json:"fullName"`
	Genres    []string `json:"genres"`
	BookID    string   `json:"bookId"`
	BookTitle string   `json:"bookTitle"`
}
