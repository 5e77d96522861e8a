package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	balloterrors "electora/contexts/election-core/ballot-catalog/domain/errors"
	ballothttp "electora/contexts/election-core/ballot-catalog/transport/http"
)

func (s *Server) registerBallotRoutes() {
	s.mux.HandleFunc("POST /positions", s.handleCreatePosition)
	s.mux.HandleFunc("GET /positions", s.handleListPositions)
	s.mux.HandleFunc("GET /positions/{position_id}", s.handleGetPosition)
	s.mux.HandleFunc("PUT /positions/{position_id}", s.handleUpdatePosition)
	s.mux.HandleFunc("DELETE /positions/{position_id}", s.handleDeletePosition)
	s.mux.HandleFunc("GET /positions/{position_id}/candidates", s.handleListPositionCandidates)

	s.mux.HandleFunc("POST /candidates", s.handleCreateCandidate)
	s.mux.HandleFunc("GET /candidates/{candidate_id}", s.handleGetCandidate)
	s.mux.HandleFunc("PUT /candidates/{candidate_id}", s.handleUpdateCandidate)
	s.mux.HandleFunc("DELETE /candidates/{candidate_id}", s.handleDeleteCandidate)

	s.mux.HandleFunc("GET /voting-cycles/{cycle_id}/candidates", s.handleListCycleCandidates)
	s.mux.HandleFunc("GET /votes/candidates/{cycle_id}", s.handleBallotForCycle)
}

func (s *Server) handleCreatePosition(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	var req ballothttp.CreatePositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBallotError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.ballots.Handler.CreatePositionHandler(r.Context(), req)
	if err != nil {
		writeBallotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListPositions(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAuth(w, r); !ok {
		return
	}
	cycleID := r.URL.Query().Get("voting_cycle_id")
	resp, err := s.ballots.Handler.ListPositionsHandler(r.Context(), cycleID)
	if err != nil {
		writeBallotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetPosition(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAuth(w, r); !ok {
		return
	}
	resp, err := s.ballots.Handler.GetPositionHandler(r.Context(), r.PathValue("position_id"))
	if err != nil {
		writeBallotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdatePosition(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	var req ballothttp.UpdatePositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBallotError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.ballots.Handler.UpdatePositionHandler(r.Context(), r.PathValue("position_id"), req)
	if err != nil {
		writeBallotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeletePosition(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	if err := s.ballots.Handler.DeletePositionHandler(r.Context(), r.PathValue("position_id")); err != nil {
		writeBallotDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListPositionCandidates(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAuth(w, r); !ok {
		return
	}
	resp, err := s.ballots.Handler.ListCandidatesByPositionHandler(r.Context(), r.PathValue("position_id"))
	if err != nil {
		writeBallotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateCandidate(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	var req ballothttp.CandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBallotError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.ballots.Handler.CreateCandidateHandler(r.Context(), req)
	if err != nil {
		writeBallotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetCandidate(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAuth(w, r); !ok {
		return
	}
	resp, err := s.ballots.Handler.GetCandidateHandler(r.Context(), r.PathValue("candidate_id"))
	if err != nil {
		writeBallotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateCandidate(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	var req ballothttp.CandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBallotError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.ballots.Handler.UpdateCandidateHandler(r.Context(), r.PathValue("candidate_id"), req)
	if err != nil {
		writeBallotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteCandidate(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	if err := s.ballots.Handler.DeleteCandidateHandler(r.Context(), r.PathValue("candidate_id")); err != nil {
		writeBallotDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListCycleCandidates(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAuth(w, r); !ok {
		return
	}
	resp, err := s.ballots.Handler.ListCandidatesByCycleHandler(r.Context(), r.PathValue("cycle_id"))
	if err != nil {
		writeBallotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleBallotForCycle is the public ballot display: same payload as the
// authenticated cycle candidates listing.
func (s *Server) handleBallotForCycle(w http.ResponseWriter, r *http.Request) {
	resp, err := s.ballots.Handler.ListCandidatesByCycleHandler(r.Context(), r.PathValue("cycle_id"))
	if err != nil {
		writeBallotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeBallotDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, balloterrors.ErrInvalidBallotInput):
		writeBallotError(w, http.StatusBadRequest, "invalid_ballot_input", err.Error())
	case errors.Is(err, balloterrors.ErrPositionNotFound):
		writeBallotError(w, http.StatusNotFound, "position_not_found", err.Error())
	case errors.Is(err, balloterrors.ErrCandidateNotFound):
		writeBallotError(w, http.StatusNotFound, "candidate_not_found", err.Error())
	case errors.Is(err, balloterrors.ErrCycleNotFound):
		writeBallotError(w, http.StatusNotFound, "cycle_not_found", err.Error())
	case errors.Is(err, balloterrors.ErrCycleMismatch):
		writeBallotError(w, http.StatusUnprocessableEntity, "cycle_mismatch", err.Error())
	case errors.Is(err, balloterrors.ErrBallotInUse):
		writeBallotError(w, http.StatusConflict, "ballot_in_use", err.Error())
	default:
		writeBallotError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeBallotError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, ballothttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
