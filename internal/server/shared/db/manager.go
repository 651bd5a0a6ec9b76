// Package db wires the Postgres connection, migrations, and repository
// implementations together behind a single manager.
package db

import (
	"database/sql"

	"contactbook/internal/server/addresses"
	"contactbook/internal/server/contacts"
	"contactbook/internal/server/users"
)

type RepositoryManager interface {
	Conn() *sql.DB
	Users() users.Repository
	Contacts() contacts.Repository
	Addresses() addresses.Repository
}
