package user

import "context"

// Service is the user business logic contract. All operations except Login
// require the user-admin role, reads included.
type Service interface {
	Create(ctx context.Context, req *CreateUserRequest) (*User, error)
	Edit(ctx context.Context, id string, req *UpdateUserRequest) (*User, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*User, error)
	Search(ctx context.Context, query *SearchUsersQuery) ([]User, error)

	// Login verifies credentials and mints an access token. Failures are
	// indistinguishable between unknown username and wrong password.
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
}
