package contacts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"contactbook/internal/common"
	"contactbook/internal/dbx"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, contact *Contact) (*Contact, error) {

	query :=
		`INSERT INTO contacts (username, first_name, last_name, email, phone)
         VALUES ($1, $2, $3, $4, $5)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		contact.Username, contact.FirstName, contact.LastName, contact.Email, contact.Phone).Scan(&contact.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return contact, nil
}

func (r *PostgresRepository) FindByIDAndOwner(ctx context.Context, username string, id int64) (*Contact, error) {
	query :=
		`SELECT id, username, first_name, last_name, email, phone FROM contacts
		 WHERE id = $1 AND username = $2
		 `

	contact := &Contact{}
	err := r.db.QueryRowContext(ctx, query, id, username).
		Scan(&contact.ID, &contact.Username, &contact.FirstName, &contact.LastName, &contact.Email, &contact.Phone)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return contact, nil
}

func (r *PostgresRepository) Update(ctx context.Context, contact *Contact) (*Contact, error) {
	query :=
		`UPDATE contacts SET first_name = $3, last_name = $4, email = $5, phone = $6
		 WHERE id = $1 AND username = $2
		 `

	res, err := r.db.ExecContext(ctx, query,
		contact.ID, contact.Username, contact.FirstName, contact.LastName, contact.Email, contact.Phone)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return nil, common.ErrorNotFound
	}

	return contact, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, username string, id int64) error {
	query :=
		`DELETE FROM contacts
		 WHERE id = $1 AND username = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, username)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

// Search runs the count and the page select inside one read-only
// transaction so both see the same snapshot.
func (r *PostgresRepository) Search(ctx context.Context, username string, filter SearchFilter) ([]*Contact, int64, error) {

	where, args := searchPredicate(username, filter)

	var total int64
	result := []*Contact{}

	err := dbx.WithTx(ctx, r.db, &sql.TxOptions{ReadOnly: true}, func(ctx context.Context, tx dbx.DBTX) error {

		countQuery := `SELECT count(*) FROM contacts WHERE ` + where

		if err := tx.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
			return err
		}

		pageQuery := fmt.Sprintf(
			`SELECT id, username, first_name, last_name, email, phone FROM contacts WHERE %s ORDER BY id LIMIT $%d OFFSET $%d`,
			where, len(args)+1, len(args)+2)

		offset := (filter.Page - 1) * filter.Size
		pageArgs := append(args, filter.Size, offset)

		rows, err := tx.QueryContext(ctx, pageQuery, pageArgs...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			contact := &Contact{}
			if err := rows.Scan(&contact.ID, &contact.Username, &contact.FirstName, &contact.LastName, &contact.Email, &contact.Phone); err != nil {
				return err
			}
			result = append(result, contact)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	return result, total, nil
}
