package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"contactbook/internal/common"
	"contactbook/internal/server/contacts"
	"github.com/go-chi/chi/v5"
)

type ContactRequest struct {
	FirstName string  `json:"first_name" validate:"required,min=1,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,min=1,max=100"`
	Email     *string `json:"email" validate:"omitempty,min=1,max=100,email"`
	Phone     *string `json:"phone" validate:"omitempty,min=1,max=20"`
}

type ContactResponse struct {
	ID        int64   `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
}

func toContactResponse(contact *contacts.Contact) *ContactResponse {
	return &ContactResponse{
		ID:        contact.ID,
		FirstName: contact.FirstName,
		LastName:  contact.LastName,
		Email:     contact.Email,
		Phone:     contact.Phone,
	}
}

func toContactResponses(list []*contacts.Contact) []*ContactResponse {
	result := make([]*ContactResponse, 0, len(list))
	for _, c := range list {
		result = append(result, toContactResponse(c))
	}
	return result
}

// contactIDFromRequest parses the contactId path segment. A non-numeric id
// can never name a row, so it reads as not found rather than a validation
// failure.
func contactIDFromRequest(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "contactId"), 10, 64)
	if err != nil {
		return 0, common.ErrorNotFound
	}
	return id, nil
}

func (s *Server) handleCreateContact(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	req := &ContactRequest{}
	if err := s.decodeAndValidate(r, req); err != nil {
		s.writeError(w, r, err)
		return
	}

	contact, err := s.contacts.Create(r.Context(), user.Username, &contacts.Contact{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeSuccess(w, http.StatusCreated, toContactResponse(contact), nil)
}

func (s *Server) handleGetContact(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	id, err := contactIDFromRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	contact, err := s.contacts.Get(r.Context(), user.Username, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeSuccess(w, http.StatusOK, toContactResponse(contact), nil)
}

func (s *Server) handleUpdateContact(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	id, err := contactIDFromRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	req := &ContactRequest{}
	if err := s.decodeAndValidate(r, req); err != nil {
		s.writeError(w, r, err)
		return
	}

	contact, err := s.contacts.Update(r.Context(), user.Username, &contacts.Contact{
		ID:        id,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeSuccess(w, http.StatusOK, toContactResponse(contact), nil)
}

func (s *Server) handleDeleteContact(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	id, err := contactIDFromRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if _, err := s.contacts.Delete(r.Context(), user.Username, id); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeSuccess(w, http.StatusOK, true, nil)
}

// pagingParam parses an optional positive integer query parameter,
// applying def when the parameter is omitted or empty.
func pagingParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", common.ErrorValidation, name)
	}
	return v, nil
}

func (s *Server) handleSearchContacts(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	page, err := pagingParam(r, "page", 1)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	size, err := pagingParam(r, "size", 10)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	q := r.URL.Query()
	filter := contacts.SearchFilter{
		Name:    q.Get("name"),
		Email:   q.Get("email"),
		Phone:   q.Get("phone"),
		Keyword: q.Get("keyword"),
		Page:    page,
		Size:    size,
	}

	result, paging, err := s.contacts.Search(r.Context(), user.Username, filter)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeSuccess(w, http.StatusOK, toContactResponses(result), &Paging{
		CurrentPage: paging.CurrentPage,
		Size:        paging.Size,
		TotalPage:   paging.TotalPage,
	})
}
