package users

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	CountByUsername(ctx context.Context, username string) (int64, error)
	SetToken(ctx context.Context, username string, token *string) error
	UpdateName(ctx context.Context, username string, name string) error
	UpdatePassword(ctx context.Context, username string, passwordHash string) error
}
