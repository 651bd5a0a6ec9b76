package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"contactbook/internal/common"
	"github.com/go-playground/validator/v10"
)

// WebResponse is the uniform response envelope. Success responses carry
// code/msg/data (+paging for search); failures carry code/errors.
type WebResponse struct {
	Code   int     `json:"code"`
	Msg    string  `json:"msg,omitempty"`
	Errors string  `json:"errors,omitempty"`
	Data   any     `json:"data,omitempty"`
	Paging *Paging `json:"paging,omitempty"`
}

type Paging struct {
	CurrentPage int `json:"current_page"`
	Size        int `json:"size"`
	TotalPage   int `json:"total_page"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body *WebResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error(context.Background(), "response encode error", "error", err)
	}
}

func (s *Server) writeSuccess(w http.ResponseWriter, status int, data any, paging *Paging) {
	msg := "ok"
	if status == http.StatusCreated {
		msg = "Created"
	}
	s.writeJSON(w, status, &WebResponse{Code: status, Msg: msg, Data: data, Paging: paging})
}

func (s *Server) writeFailure(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, &WebResponse{Code: status, Errors: message})
}

// writeError is the single translator from service errors to the
// client-visible envelope. Internal detail never leaks past it.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		s.writeFailure(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrorAlreadyExists):
		s.writeFailure(w, http.StatusBadRequest, "username already exists")
	case errors.Is(err, common.ErrorUnauthorized):
		s.writeFailure(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, common.ErrorNotFound):
		s.writeFailure(w, http.StatusNotFound, "not found")
	default:
		s.logger.Error(r.Context(), "internal error", "error", err)
		s.writeFailure(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeAndValidate parses a JSON body into dst and checks its validate
// tags. Both kinds of failure surface as common.ErrorValidation with
// field detail attached.
func (s *Server) decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed request body", common.ErrorValidation)
	}
	if err := s.validate.Struct(dst); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			return fmt.Errorf("%w: %s", common.ErrorValidation, vErrs.Error())
		}
		return fmt.Errorf("%w: invalid request body", common.ErrorValidation)
	}
	return nil
}
