package contacts

import (
	"context"
	"errors"

	"contactbook/internal/common"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a new contact under the given owner.
func (s *Service) Create(ctx context.Context, username string, contact *Contact) (*Contact, error) {
	contact.Username = username

	contact, err := s.repo.Create(ctx, contact)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return contact, nil
}

// Get resolves a contact the owner is allowed to see. Wrong owner and
// absent id both surface as common.ErrorNotFound.
func (s *Service) Get(ctx context.Context, username string, id int64) (*Contact, error) {
	contact, err := s.repo.FindByIDAndOwner(ctx, username, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return contact, nil
}

// Update overwrites an owned contact's descriptive fields.
func (s *Service) Update(ctx context.Context, username string, contact *Contact) (*Contact, error) {
	existing, err := s.Get(ctx, username, contact.ID)
	if err != nil {
		return nil, err
	}

	contact.Username = existing.Username
	contact, err = s.repo.Update(ctx, contact)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	return contact, nil
}

// Delete removes an owned contact (addresses go with it via the schema's
// cascade).
func (s *Service) Delete(ctx context.Context, username string, id int64) (*Contact, error) {
	existing, err := s.Get(ctx, username, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, username, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	return existing, nil
}

// Search returns one page of the owner's contacts matching the filter,
// with paging metadata. Page and size must both be at least 1.
func (s *Service) Search(ctx context.Context, username string, filter SearchFilter) ([]*Contact, *Paging, error) {
	if filter.Page < 1 || filter.Size < 1 {
		return nil, nil, common.ErrorValidation
	}

	result, total, err := s.repo.Search(ctx, username, filter)
	if err != nil {
		return nil, nil, common.ErrorInternal
	}

	paging := &Paging{
		CurrentPage: filter.Page,
		Size:        filter.Size,
		TotalPage:   int((total + int64(filter.Size) - 1) / int64(filter.Size)),
	}

	return result, paging, nil
}
