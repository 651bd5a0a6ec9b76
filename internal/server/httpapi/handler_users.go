package httpapi

import (
	"errors"
	"net/http"

	"contactbook/internal/common"
	"contactbook/internal/server/users"
)

type RegisterUserRequest struct {
	Username string `json:"username" validate:"required,min=1,max=100"`
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Password string `json:"password" validate:"required,min=1,max=100"`
}

type LoginUserRequest struct {
	Username string `json:"username" validate:"required,min=1,max=100"`
	Password string `json:"password" validate:"required,min=1,max=100"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=100"`
	Password *string `json:"password" validate:"omitempty,min=1,max=100"`
}

type UserResponse struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Token    string `json:"token,omitempty"`
}

func toUserResponse(user *users.User, withToken bool) *UserResponse {
	resp := &UserResponse{Username: user.Username, Name: user.Name}
	if withToken && user.Token != nil {
		resp.Token = *user.Token
	}
	return resp
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {

	req := &RegisterUserRequest{}
	if err := s.decodeAndValidate(r, req); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Registration request", "username", req.Username)

	user, err := s.users.Register(r.Context(), req.Username, req.Name, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Registered", "username", user.Username)
	s.writeSuccess(w, http.StatusCreated, toUserResponse(user, false), nil)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {

	req := &LoginUserRequest{}
	if err := s.decodeAndValidate(r, req); err != nil {
		s.writeError(w, r, err)
		return
	}

	user, err := s.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		// failed credentials are a client error, phrased so the caller
		// cannot tell whether the username exists
		if errors.Is(err, common.ErrorUnauthorized) {
			s.writeFailure(w, http.StatusBadRequest, "username or password is wrong")
			return
		}
		s.writeError(w, r, err)
		return
	}

	s.writeSuccess(w, http.StatusOK, toUserResponse(user, true), nil)
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	s.writeSuccess(w, http.StatusOK, toUserResponse(user, false), nil)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	req := &UpdateUserRequest{}
	if err := s.decodeAndValidate(r, req); err != nil {
		s.writeError(w, r, err)
		return
	}

	user, err := s.users.Update(r.Context(), user, req.Name, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeSuccess(w, http.StatusOK, toUserResponse(user, false), nil)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	if err := s.users.Logout(r.Context(), user); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeSuccess(w, http.StatusOK, true, nil)
}
