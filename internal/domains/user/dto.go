package user

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"library-backend/internal/shared/authz"
)

// UserView is the wire representation of a user. The password hash is
// never serialized.
type UserView struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	FullName string   `json:"fullName"`
	Roles    []string `json:"roles"`
}

func (u *User) View() UserView {
	roles := u.Roles
	if roles == nil {
		roles = []string{}
	}
	return UserView{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Roles:    roles,
	}
}

func Views(users []User) []UserView {
	out := make([]UserView, 0, len(users))
	for i := range users {
		out = append(out, users[i].View())
	}
	return out
}

var validRoles = []interface{}{
	string(authz.RoleAuthorAdmin),
	string(authz.RoleBookAdmin),
	string(authz.RoleUserAdmin),
}

// CreateUserRequest - POST /api/admin/user
type CreateUserRequest struct {
	Username   string   `json:"username"`
	FullName   string   `json:"fullName"`
	Password   string   `json:"password"`
	RePassword string   `json:"rePassword"`
	Roles      []string `json:"roles"`
}

func (r CreateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.Required.Error("username is required"),
			is.Email.Error("username must be an email address"),
		),
		validation.Field(&r.FullName,
			validation.Required.Error("fullName is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be 8-128 characters"),
		),
		validation.Field(&r.Roles,
			validation.Each(validation.In(validRoles...).Error("unknown role")),
		),
	)
}

// UpdateUserRequest - PUT /api/admin/user/:id
// Username and roles are immutable; only the profile and password change.
type UpdateUserRequest struct {
	FullName   *string `json:"fullName"`
	Password   *string `json:"password"`
	RePassword *string `json:"rePassword"`
}

func (r UpdateUserRequest) Validate() error {
	if r.FullName == nil && r.Password == nil {
		return validation.NewError("validation_empty_patch", "at least one field must be set")
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.FullName, validation.NilOrNotEmpty.Error("fullName cannot be blank")),
		validation.Field(&r.Password,
			validation.When(r.Password != nil,
				validation.By(func(interface{}) error {
					if len(*r.Password) < 8 || len(*r.Password) > 128 {
						return validation.NewError("validation_password_length", "password must be 8-128 characters")
					}
					return nil
				}),
			),
		),
	)
}

// SearchUsersQuery is the filter object of POST /api/admin/user/search.
type SearchUsersQuery struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
}

// LoginRequest - POST /api/auth/login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// LoginResponse carries the minted access token.
type LoginResponse struct {
	AccessToken string   `json:"accessToken"`
	User        UserView `json:"user"`
}
