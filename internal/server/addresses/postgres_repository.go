package addresses

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

func (r *PostgresRepository) Create(ctx context.Context, address *Address) (*Address, error) {

	query :=
		`INSERT INTO addresses (contact_id, street, city, province, country, postal_code)
         VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		address.ContactID, address.Street, address.City, address.Province, address.Country, address.PostalCode).Scan(&address.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return address, nil
}

func (r *PostgresRepository) FindByIDAndContact(ctx context.Context, contactID int64, id int64) (*Address, error) {
	query :=
		`SELECT id, contact_id, street, city, province, country, postal_code FROM addresses
		 WHERE id = $1 AND contact_id = $2
		 `

	address := &Address{}
	err := r.db.QueryRowContext(ctx, query, id, contactID).
		Scan(&address.ID, &address.ContactID, &address.Street, &address.City, &address.Province, &address.Country, &address.PostalCode)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return address, nil
}

func (r *PostgresRepository) Update(ctx context.Context, address *Address) (*Address, error) {
	query :=
		`UPDATE addresses SET street = $3, city = $4, province = $5, country = $6, postal_code = $7
		 WHERE id = $1 AND contact_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query,
		address.ID, address.ContactID, address.Street, address.City, address.Province, address.Country, address.PostalCode)
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

	return address, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, contactID int64, id int64) error {
	query :=
		`DELETE FROM addresses
		 WHERE id = $1 AND contact_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, contactID)
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

func (r *PostgresRepository) ListByContact(ctx context.Context, contactID int64) ([]*Address, error) {
	query :=
		`SELECT id, contact_id, street, city, province, country, postal_code FROM addresses
		 WHERE contact_id = $1
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, contactID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*Address{}
	for rows.Next() {
		address := &Address{}
		if err := rows.Scan(&address.ID, &address.ContactID, &address.Street, &address.City, &address.Province, &address.Country, &address.PostalCode); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, address)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
