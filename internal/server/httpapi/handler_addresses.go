package httpapi

import (
	"net/http"
	"strconv"

	"contactbook/internal/common"
	"contactbook/internal/server/addresses"
	"github.com/go-chi/chi/v5"
)

type AddressRequest struct {
	Street     *string `json:"street" validate:"omitempty,min=1,max=255"`
	City       *string `json:"city" validate:"omitempty,min=1,max=100"`
	Province   *string `json:"province" validate:"omitempty,min=1,max=100"`
	Country    string  `json:"country" validate:"required,min=1,max=100"`
	PostalCode string  `json:"postal_code" validate:"required,min=1,max=10"`
}

type AddressResponse struct {
	ID         int64   `json:"id"`
	Street     *string `json:"street"`
	City       *string `json:"city"`
	Province   *string `json:"province"`
	Country    string  `json:"country"`
	PostalCode string  `json:"postal_code"`
}

func toAddressResponse(address *addresses.Address) *AddressResponse {
	return &AddressResponse{
		ID:         address.ID,
		Street:     address.Street,
		City:       address.City,
		Province:   address.Province,
		Country:    address.Country,
		PostalCode: address.PostalCode,
	}
}

func toAddressResponses(list []*addresses.Address) []*AddressResponse {
	result := make([]*AddressResponse, 0, len(list))
	for _, a := range list {
		result = append(result, toAddressResponse(a))
	}
	return result
}

func addressIDFromRequest(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "addressId"), 10, 64)
	if err != nil {
		return 0, common.ErrorNotFound
	}
	return id, nil
}

func (s *Server) handleCreateAddress(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	contactID, err := contactIDFromRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	req := &AddressRequest{}
	if err := s.decodeAndValidate(r, req); err != nil {
		s.writeError(w, r, err)
		return
	}

	address, err := s.addresses.Create(r.Context(), user.Username, &addresses.Address{
		ContactID:  contactID,
		Street:     req.Street,
		City:       req.City,
		Province:   req.Province,
		Country:    req.Country,
		PostalCode: req.PostalCode,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeSuccess(w, http.StatusCreated, toAddressResponse(address), nil)
}

func (s *Server) handleGetAddress(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	contactID, err := contactIDFromRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	addressID, err := addressIDFromRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	address, err := s.addresses.Get(r.Context(), user.Username, contactID, addressID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeSuccess(w, http.StatusOK, toAddressResponse(address), nil)
}

func (s *Server) handleUpdateAddress(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	contactID, err := contactIDFromRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	addressID, err := addressIDFromRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	req := &AddressRequest{}
	if err := s.decodeAndValidate(r, req); err != nil {
		s.writeError(w, r, err)
		return
	}

	address, err := s.addresses.Update(r.Context(), user.Username, &addresses.Address{
		ID:         addressID,
		ContactID:  contactID,
		Street:     req.Street,
		City:       req.City,
		Province:   req.Province,
		Country:    req.Country,
		PostalCode: req.PostalCode,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeSuccess(w, http.StatusOK, toAddressResponse(address), nil)
}

func (s *Server) handleDeleteAddress(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	contactID, err := contactIDFromRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	addressID, err := addressIDFromRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if _, err := s.addresses.Delete(r.Context(), user.Username, contactID, addressID); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeSuccess(w, http.StatusOK, true, nil)
}

func (s *Server) handleListAddresses(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	contactID, err := contactIDFromRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	list, err := s.addresses.List(r.Context(), user.Username, contactID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeSuccess(w, http.StatusOK, toAddressResponses(list), nil)
}
