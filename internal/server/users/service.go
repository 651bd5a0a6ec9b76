package users

import (
	"context"
	"errors"
	"time"

	"contactbook/internal/common"
	"contactbook/internal/server/auth"
	"contactbook/internal/server/config"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	repo                  Repository
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

func NewService(repo Repository, cfg *config.Config) *Service {
	return &Service{
		repo:                  repo,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Register creates a new account. A taken username yields
// common.ErrorAlreadyExists; the password is stored as a bcrypt hash.
func (s *Service) Register(ctx context.Context, username string, name string, password string) (*User, error) {

	count, err := s.repo.CountByUsername(ctx, username)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if count > 0 {
		return nil, common.ErrorAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &User{
		Username: username,
		Name:     name,
		Password: string(hash),
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return user, nil
}

// Login authenticates the credentials, mints a bearer token, and persists
// it as the account's single current session. Unknown username and wrong
// password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username string, password string) (*User, error) {

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.Username, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	// Last writer wins: a concurrent login for the same account simply
	// overwrites the stored token.
	if err := s.repo.SetToken(ctx, user.Username, &token); err != nil {
		return nil, common.ErrorInternal
	}

	user.Token = &token
	return user, nil
}

// Update applies a partial update of the display name and/or password.
func (s *Service) Update(ctx context.Context, user *User, name *string, password *string) (*User, error) {

	if name != nil {
		if err := s.repo.UpdateName(ctx, user.Username, *name); err != nil {
			return nil, common.ErrorInternal
		}
		user.Name = *name
	}

	if password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
		if err != nil {
			return nil, common.ErrorInternal
		}
		if err := s.repo.UpdatePassword(ctx, user.Username, string(hash)); err != nil {
			return nil, common.ErrorInternal
		}
		user.Password = string(hash)
	}

	return user, nil
}

// Logout clears the account's stored session token.
func (s *Service) Logout(ctx context.Context, user *User) error {
	if err := s.repo.SetToken(ctx, user.Username, nil); err != nil {
		return common.ErrorInternal
	}
	user.Token = nil
	return nil
}

// FindByUsername resolves a persisted account, used by the session binder
// to turn a verified token into a live principal.
func (s *Service) FindByUsername(ctx context.Context, username string) (*User, error) {
	return s.repo.FindByUsername(ctx, username)
}
