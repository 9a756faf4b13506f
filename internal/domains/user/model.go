package user

import "time"

// User is an administrative account. PasswordHash is a bcrypt hash and
// never leaves the server.
type User struct {
	ID           string   `json:"id"`
	Username     string   `json:"username"`
	FullName     string   `json:"fullName"`
	PasswordHash string   `json:"-"`
	Roles        []string `json:"roles"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	out := *u
	if u.Roles != nil {
		out.Roles = append([]string(nil), u.Roles...)
	}
	return &out
}
