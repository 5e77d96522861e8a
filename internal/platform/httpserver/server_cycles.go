package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	cycleerrors "electora/contexts/election-core/cycle-registry/domain/errors"
	cyclehttp "electora/contexts/election-core/cycle-registry/transport/http"
)

func (s *Server) registerCycleRoutes() {
	s.mux.HandleFunc("POST /voting-cycles", s.handleCreateCycle)
	s.mux.HandleFunc("GET /voting-cycles", s.handleListCycles)
	s.mux.HandleFunc("GET /voting-cycles/active", s.handleGetActiveCycle)
	s.mux.HandleFunc("GET /voting-cycles/{cycle_id}", s.handleGetCycle)
	s.mux.HandleFunc("PUT /voting-cycles/{cycle_id}", s.handleUpdateCycle)
	s.mux.HandleFunc("PUT /voting-cycles/{cycle_id}/activate", s.handleActivateCycle)
	s.mux.HandleFunc("DELETE /voting-cycles/{cycle_id}", s.handleDeleteCycle)
}

func (s *Server) handleCreateCycle(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	var req cyclehttp.CreateCycleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCycleError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.cycles.Handler.CreateCycleHandler(r.Context(), req)
	if err != nil {
		writeCycleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListCycles(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAuth(w, r); !ok {
		return
	}
	resp, err := s.cycles.Handler.ListCyclesHandler(r.Context())
	if err != nil {
		writeCycleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetActiveCycle(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAuth(w, r); !ok {
		return
	}
	resp, err := s.cycles.Handler.GetActiveCycleHandler(r.Context())
	if err != nil {
		writeCycleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetCycle(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAuth(w, r); !ok {
		return
	}
	resp, err := s.cycles.Handler.GetCycleHandler(r.Context(), r.PathValue("cycle_id"))
	if err != nil {
		writeCycleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateCycle(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	var req cyclehttp.UpdateCycleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCycleError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.cycles.Handler.UpdateCycleHandler(r.Context(), r.PathValue("cycle_id"), req)
	if err != nil {
		writeCycleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleActivateCycle(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	resp, err := s.cycles.Handler.ActivateCycleHandler(r.Context(), r.PathValue("cycle_id"))
	if err != nil {
		writeCycleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteCycle(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	if err := s.cycles.Handler.DeleteCycleHandler(r.Context(), r.PathValue("cycle_id")); err != nil {
		writeCycleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeCycleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cycleerrors.ErrInvalidCycleInput):
		writeCycleError(w, http.StatusBadRequest, "invalid_cycle_input", err.Error())
	case errors.Is(err, cycleerrors.ErrCycleNotFound):
		writeCycleError(w, http.StatusNotFound, "cycle_not_found", err.Error())
	case errors.Is(err, cycleerrors.ErrNoActiveCycle):
		writeCycleError(w, http.StatusNotFound, "no_active_cycle", err.Error())
	case errors.Is(err, cycleerrors.ErrCycleExists):
		writeCycleError(w, http.StatusConflict, "cycle_exists", err.Error())
	case errors.Is(err, cycleerrors.ErrCycleInUse):
		writeCycleError(w, http.StatusConflict, "cycle_in_use", err.Error())
	default:
		writeCycleError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeCycleError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, cyclehttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
