package addresses

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, address *Address) (*Address, error)

	// FindByIDAndContact resolves an address by id scoped to its parent
	// contact in a single predicate. An address hanging off a different
	// contact comes back as common.ErrorNotFound.
	FindByIDAndContact(ctx context.Context, contactID int64, id int64) (*Address, error)

	Update(ctx context.Context, address *Address) (*Address, error)
	Delete(ctx context.Context, contactID int64, id int64) error
	ListByContact(ctx context.Context, contactID int64) ([]*Address, error)
}
