package server

import (
	"errors"
	"net/http"

	"github.com/chartproof/chartproof/internal/services/users"
)

// handleUsers serves POST /api/users.
func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var params users.CreateParams
	if !DecodeJSON(w, r, &params, 1<<20) {
		return
	}

	user, err := s.app.Users.Create(r.Context(), params)
	if err != nil {
		s.writeUserError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, user)
}

// handleUserByID serves GET/PATCH/DELETE /api/users/{id}.
func (s *Server) handleUserByID(w http.ResponseWriter, r *http.Request) {
	id := PathSuffix(r, "/api/users/")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "User ID is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		user, err := s.app.Users.Get(r.Context(), id)
		if err != nil {
			s.writeUserError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, user)

	case http.MethodPatch:
		var params users.UpdateParams
		if !DecodeJSON(w, r, &params, 1<<20) {
			return
		}
		user, err := s.app.Users.Update(r.Context(), id, params)
		if err != nil {
			s.writeUserError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, user)

	case http.MethodDelete:
		if err := s.app.Users.Delete(r.Context(), id); err != nil {
			s.writeUserError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]bool{"success": true})

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPatch, http.MethodDelete)
	}
}

func (s *Server) writeUserError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, users.ErrNotFound):
		WriteError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, users.ErrUsernameTaken):
		WriteError(w, http.StatusConflict, "Username already taken")
	case errors.Is(err, users.ErrInvalidInput):
		WriteError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error().Err(err).Msg("User operation failed")
		WriteError(w, http.StatusInternalServerError, "User operation failed")
	}
}
