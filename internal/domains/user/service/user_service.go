package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"library-backend/internal/domains/user"
	"library-backend/internal/shared/apperror"
	"library-backend/internal/shared/authz"
	"library-backend/pkg/jwt"
)

const bcryptCost = 12

// UserService implements user.Service. Every operation except Login runs
// through the authorization gate; user reads are gated too.
type UserService struct {
	repo       user.Repository
	tokens     *jwt.Manager
	maxResults int
}

func NewUserService(repo user.Repository, tokens *jwt.Manager, maxResults int) *UserService {
	return &UserService{repo: repo, tokens: tokens, maxResults: maxResults}
}

func (s *UserService) Create(ctx context.Context, req *user.CreateUserRequest) (*user.User, error) {
	if err := authz.Require(ctx, authz.ResourceUser, authz.ActionWrite); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, apperror.NewValidation("%s", err)
	}
	if req.RePassword != "" && req.RePassword != req.Password {
		return nil, apperror.NewValidation("Passwords don't match")
	}

	if _, err := s.repo.FindByUsername(ctx, req.Username); err == nil {
		return nil, apperror.NewConflict("Username exists")
	} else if !apperror.IsNotFound(err) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	return s.repo.Insert(ctx, &user.User{
		Username:     req.Username,
		FullName:     req.FullName,
		PasswordHash: string(hash),
		Roles:        req.Roles,
	})
}

func (s *UserService) Edit(ctx context.Context, id string, req *user.UpdateUserRequest) (*user.User, error) {
	if err := authz.Require(ctx, authz.ResourceUser, authz.ActionWrite); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, apperror.NewValidation("%s", err)
	}

	var hash string
	if req.Password != nil {
		if req.RePassword == nil || *req.RePassword != *req.Password {
			return nil, apperror.NewValidation("Passwords don't match")
		}
		h, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcryptCost)
		if err != nil {
			return nil, err
		}
		hash = string(h)
	}

	return s.repo.Update(ctx, id, func(u *user.User) error {
		if req.FullName != nil {
			u.FullName = *req.FullName
		}
		if req.Password != nil {
			u.PasswordHash = hash
		}
		return nil
	})
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := authz.Require(ctx, authz.ResourceUser, authz.ActionWrite); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *UserService) Get(ctx context.Context, id string) (*user.User, error) {
	if err := authz.Require(ctx, authz.ResourceUser, authz.ActionRead); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) Search(ctx context.Context, query *user.SearchUsersQuery) ([]user.User, error) {
	if err := authz.Require(ctx, authz.ResourceUser, authz.ActionRead); err != nil {
		return nil, err
	}
	if query == nil {
		query = &user.SearchUsersQuery{}
	}
	return s.repo.Query(ctx, user.Filter{
		ID:       query.ID,
		Username: query.Username,
		FullName: query.FullName,
		Limit:    s.maxResults,
	})
}

func (s *UserService) Login(ctx context.Context, req *user.LoginRequest) (*user.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.NewValidation("%s", err)
	}

	u, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewAuthorization("invalid credentials")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.NewAuthorization("invalid credentials")
	}

	token, err := s.tokens.Generate(u.ID, u.Username, u.Roles)
	if err != nil {
		return nil, err
	}

	return &user.LoginResponse{AccessToken: token, User: u.View()}, nil
}
