package user

import "context"

// Filter selects users. Fields conjoin; zero values do not constrain.
type Filter struct {
	ID       string
	Username string // case-insensitive substring
	FullName string // case-insensitive substring
	Limit    int
}

// Repository is the user data access contract. Username uniqueness is
// byte-exact; Insert returns a ConflictError on a duplicate.
type Repository interface {
	GetByID(ctx context.Context, id string) (*User, error)

	// FindByUsername looks up a user by exact username, returning a
	// NotFoundError when absent.
	FindByUsername(ctx context.Context, username string) (*User, error)

	Insert(ctx context.Context, u *User) (*User, error)
	Update(ctx context.Context, id string, mutate func(*User) error) (*User, error)
	Delete(ctx context.Context, id string) error
	Query(ctx context.Context, f Filter) ([]User, error)
}
