// Package authz implements the authorization gate: a static policy table
// mapping (resource, action) to the roles allowed to perform it, plus the
// request-scoped carriage of the caller's role set. The gate is a pure
// function of its inputs; it is consulted by every service before a mutation
// (and before user reads) regardless of what the transport layer checked.
package authz

import (
	"context"

	"library-backend/internal/shared/apperror"
)

type Role string

const (
	RoleAuthorAdmin Role = "AUTHOR_ADMIN"
	RoleBookAdmin   Role = "BOOK_ADMIN"
	RoleUserAdmin   Role = "USER_ADMIN"
)

type Resource string

const (
	ResourceAuthor Resource = "Author"
	ResourceBook   Resource = "Book"
	ResourceUser   Resource = "User"
)

type Action string

const (
	ActionRead  Action = "read"
	ActionWrite Action = "write"
)

// policy lists the roles allowed per resource and action. A missing entry
// means the operation is public.
var policy = map[Resource]map[Action][]Role{
	ResourceAuthor: {
		ActionWrite: {RoleAuthorAdmin},
	},
	ResourceBook: {
		ActionWrite: {RoleBookAdmin},
	},
	ResourceUser: {
		ActionRead:  {RoleUserAdmin},
		ActionWrite: {RoleUserAdmin},
	},
}

// Allowed reports whether the given role set satisfies the policy for the
// resource and action.
func Allowed(resource Resource, action Action, roles []Role) bool {
	required, ok := policy[resource][action]
	if !ok {
		return true
	}
	for _, need := range required {
		for _, have := range roles {
			if need == have {
				return true
			}
		}
	}
	return false
}

// Require evaluates the policy against the roles carried by ctx and returns
// an AuthorizationError on denial.
func Require(ctx context.Context, resource Resource, action Action) error {
	if Allowed(resource, action, RolesFromContext(ctx)) {
		return nil
	}
	return apperror.NewAuthorization("access to %s %s denied", resource, action)
}

type rolesKey struct{}

// WithRoles returns a context carrying the caller's role set.
func WithRoles(ctx context.Context, roles []Role) context.Context {
	return context.WithValue(ctx, rolesKey{}, roles)
}

// RolesFromContext returns the role set stored by WithRoles, or nil for an
// anonymous caller.
func RolesFromContext(ctx context.Context) []Role {
	roles, _ := ctx.Value(rolesKey{}).([]Role)
	return roles
}

// ParseRoles converts raw role names (e.g. JWT claims) into Roles, dropping
// names that are not part of the policy vocabulary.
func ParseRoles(names []string) []Role {
	var roles []Role
	for _, n := range names {
		switch Role(n) {
		case RoleAuthorAdmin, RoleBookAdmin, RoleUserAdmin:
			roles = append(roles, Role(n))
		}
	}
	return roles
}
