package book

import (
	"time"

	"library-backend/internal/shared/types"
)

// Book is the domain entity. AuthorIDs keeps the creation order of the
// author references; it may point at authors that have since been deleted.
type Book struct {
	ID          string      `json:"id"`
	AuthorIDs   []string    `json:"authorIds"`
	Title       string      `json:"title"`
	About       string      `json:"about"`
	Genres      []string    `json:"genres"`
	ISBN13      string      `json:"isbn13"`
	ISBN10      string      `json:"isbn10"`
	Publisher   string      `json:"publisher"`
	PublishDate *types.Date `json:"publishDate"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Book) Clone() *Book {
	if b == nil {
		return nil
	}
	out := *b
	if b.AuthorIDs != nil {
		out.AuthorIDs = append([]string(nil), b.AuthorIDs...)
	}
	if b.Genres != nil {
		out.Genres = append([]string(nil), b.Genres...)
	}
	if b.PublishDate != nil {
		d := *b.PublishDate
		out.PublishDate = &d
	}
	return &out
}
