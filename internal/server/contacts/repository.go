package contacts

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, contact *Contact) (*Contact, error)

	// FindByIDAndOwner resolves a contact by id scoped to its owner in a
	// single predicate. A contact owned by someone else comes back as
	// common.ErrorNotFound, indistinguishable from an absent row.
	FindByIDAndOwner(ctx context.Context, username string, id int64) (*Contact, error)

	Update(ctx context.Context, contact *Contact) (*Contact, error)
	Delete(ctx context.Context, username string, id int64) error

	// Search returns one page of the owner's contacts matching the filter
	// plus the total matching count. Both reads run against the same
	// predicate.
	Search(ctx context.Context, username string, filter SearchFilter) ([]*Contact, int64, error)
}
