package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"contactbook/internal/common"
	"contactbook/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *User) (*User, error) {

	query :=
		`INSERT INTO users (username, name, password)
         VALUES ($1, $2, $3)
		 `

	_, err := r.db.ExecContext(ctx, query, user.Username, user.Name, user.Password)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	query :=
		`SELECT username, name, password, token FROM users
		 WHERE username = $1
		 `

	user := &User{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(&user.Username, &user.Name, &user.Password, &user.Token)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) CountByUsername(ctx context.Context, username string) (int64, error) {
	query :=
		`SELECT count(*) FROM users
		 WHERE username = $1
		 `

	var count int64
	err := r.db.QueryRowContext(ctx, query, username).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return count, nil
}

func (r *PostgresRepository) SetToken(ctx context.Context, username string, token *string) error {
	query :=
		`UPDATE users SET token = $2
		 WHERE username = $1
		 `

	_, err := r.db.ExecContext(ctx, query, username, token)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) UpdateName(ctx context.Context, username string, name string) error {
	query :=
		`UPDATE users SET name = $2
		 WHERE username = $1
		 `

	_, err := r.db.ExecContext(ctx, query, username, name)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) UpdatePassword(ctx context.Context, username string, passwordHash string) error {
	query :=
		`UPDATE users SET password = $2
		 WHERE username = $1
		 `

	_, err := r.db.ExecContext(ctx, query, username, passwordHash)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
