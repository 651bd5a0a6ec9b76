package addresses

import (
	"context"
	"errors"

	"contactbook/internal/common"
	"contactbook/internal/server/contacts"
)

// ContactResolver is the slice of the contact service the address layer
// needs: resolving a contact the principal owns. Failing that resolution
// aborts the address operation before any address row is touched.
type ContactResolver interface {
	Get(ctx context.Context, username string, id int64) (*contacts.Contact, error)
}

type Service struct {
	repo     Repository
	contacts ContactResolver
}

func NewService(repo Repository, contacts ContactResolver) *Service {
	return &Service{repo: repo, contacts: contacts}
}

// resolveOwnedContact gates every address operation on ownership of the
// parent contact.
func (s *Service) resolveOwnedContact(ctx context.Context, username string, contactID int64) error {
	_, err := s.contacts.Get(ctx, username, contactID)
	return err
}

func (s *Service) Create(ctx context.Context, username string, address *Address) (*Address, error) {
	if err := s.resolveOwnedContact(ctx, username, address.ContactID); err != nil {
		return nil, err
	}

	address, err := s.repo.Create(ctx, address)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return address, nil
}

func (s *Service) Get(ctx context.Context, username string, contactID int64, addressID int64) (*Address, error) {
	if err := s.resolveOwnedContact(ctx, username, contactID); err != nil {
		return nil, err
	}

	address, err := s.repo.FindByIDAndContact(ctx, contactID, addressID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	return address, nil
}

func (s *Service) Update(ctx context.Context, username string, address *Address) (*Address, error) {
	if err := s.resolveOwnedContact(ctx, username, address.ContactID); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByIDAndContact(ctx, address.ContactID, address.ID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	address, err := s.repo.Update(ctx, address)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	return address, nil
}

func (s *Service) Delete(ctx context.Context, username string, contactID int64, addressID int64) (*Address, error) {
	if err := s.resolveOwnedContact(ctx, username, contactID); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByIDAndContact(ctx, contactID, addressID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	if err := s.repo.Delete(ctx, contactID, addressID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	return existing, nil
}

func (s *Service) List(ctx context.Context, username string, contactID int64) ([]*Address, error) {
	if err := s.resolveOwnedContact(ctx, username, contactID); err != nil {
		return nil, err
	}

	result, err := s.repo.ListByContact(ctx, contactID)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return result, nil
}
