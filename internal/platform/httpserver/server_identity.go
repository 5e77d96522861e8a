package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	identityerrors "electora/contexts/identity-access/identity-service/domain/errors"
	identityhttp "electora/contexts/identity-access/identity-service/transport/http"
)

func (s *Server) registerIdentityRoutes() {
	s.mux.HandleFunc("POST /auth/register", s.handleRegister)
	s.mux.HandleFunc("POST /auth/login", s.handleLogin)
	s.mux.HandleFunc("POST /auth/logout", s.handleLogout)

	s.mux.HandleFunc("GET /users", s.handleListUsers)
	s.mux.HandleFunc("POST /users", s.handleCreateUser)
	s.mux.HandleFunc("GET /users/{user_id}", s.handleGetUser)
	s.mux.HandleFunc("PUT /users/{user_id}", s.handleUpdateUser)
	s.mux.HandleFunc("DELETE /users/{user_id}", s.handleDeleteUser)
	s.mux.HandleFunc("POST /users/import", s.handleImportUsers)
}

// handleLogout acknowledges session end. Tokens are stateless; the client
// discards its copy and the token ages out at its expiry.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAuth(w, r); !ok {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req identityhttp.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeIdentityError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.identity.Handler.RegisterHandler(r.Context(), req)
	if err != nil {
		writeIdentityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req identityhttp.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeIdentityError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.identity.Handler.LoginHandler(r.Context(), req)
	if err != nil {
		writeIdentityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleCreateUser is the admin path into the same registration flow. New
// accounts start as members either way; promotion is a separate update.
func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	var req identityhttp.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeIdentityError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.identity.Handler.RegisterHandler(r.Context(), req)
	if err != nil {
		writeIdentityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	resp, err := s.identity.Handler.ListUsersHandler(r.Context())
	if err != nil {
		writeIdentityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	claims, ok := s.requireAuth(w, r)
	if !ok {
		return
	}
	userID := r.PathValue("user_id")
	// Members can read their own profile; everything else is admin-only.
	if claims.UserID != userID {
		if _, ok := s.requireAdmin(w, r); !ok {
			return
		}
	}
	resp, err := s.identity.Handler.GetUserHandler(r.Context(), userID)
	if err != nil {
		writeIdentityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	var req identityhttp.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeIdentityError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.identity.Handler.UpdateUserHandler(r.Context(), r.PathValue("user_id"), req)
	if err != nil {
		writeIdentityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	if err := s.identity.Handler.DeleteUserHandler(r.Context(), r.PathValue("user_id")); err != nil {
		writeIdentityDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleImportUsers(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	resp, err := s.identity.Handler.ImportUsersHandler(r.Context(), r.Body)
	if err != nil {
		writeIdentityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeIdentityDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, identityerrors.ErrInvalidUserInput):
		writeIdentityError(w, http.StatusBadRequest, "invalid_user_input", err.Error())
	case errors.Is(err, identityerrors.ErrEmailTaken):
		writeIdentityError(w, http.StatusConflict, "email_taken", err.Error())
	case errors.Is(err, identityerrors.ErrMembershipIDTaken):
		writeIdentityError(w, http.StatusConflict, "membership_id_taken", err.Error())
	case errors.Is(err, identityerrors.ErrUserNotFound):
		writeIdentityError(w, http.StatusNotFound, "user_not_found", err.Error())
	case errors.Is(err, identityerrors.ErrInvalidCredentials):
		writeIdentityError(w, http.StatusUnauthorized, "invalid_credentials", err.Error())
	default:
		writeIdentityError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeIdentityError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, identityhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
