package author

import "time"

// Author is the domain entity. Genres is the set of genres the author
// writes in; order follows what the client sent.
type Author struct {
	ID       string   `json:"id"`
	FullName string   `json:"fullName"`
	About    string   `json:"about"`
	Genres   []string `json:"genres"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Clone returns a deep copy so callers can mutate freely without aliasing
// stored state.
func (a *Author) Clone() *Author {
	if a == nil {
		return nil
	}
	out := *a
	if a.Genres != nil {
		out.Genres = append([]string(nil), a.Genres...)
	}
	return &out
}
