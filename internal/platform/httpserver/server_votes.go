package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	votingerrors "electora/contexts/election-core/voting-engine/domain/errors"
	votinghttp "electora/contexts/election-core/voting-engine/transport/http"
)

func (s *Server) registerVoteRoutes() {
	s.mux.HandleFunc("POST /votes", s.handleCastVote)
	s.mux.HandleFunc("GET /votes/results/{cycle_id}", s.handleVoteResults)
	s.mux.HandleFunc("GET /votes/winners/{cycle_id}", s.handleVoteWinners)
	s.mux.HandleFunc("GET /votes/live-scores/{cycle_id}", s.handleLiveScores)
	s.mux.HandleFunc("GET /votes/eligibility/{cycle_id}", s.handleVoteEligibility)
	s.mux.HandleFunc("POST /votes/simulate-favor", s.handleSimulateVotes)
}

// handleCastVote takes the voter from the token, never from the body. A
// member cannot cast on someone else's behalf.
func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	claims, ok := s.requireAuth(w, r)
	if !ok {
		return
	}
	var req votinghttp.CastVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeVotingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.votes.Handler.CastVoteHandler(r.Context(), claims.UserID, req)
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleVoteResults(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	resp, err := s.votes.Handler.ResultsHandler(r.Context(), r.PathValue("cycle_id"))
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleVoteWinners(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	resp, err := s.votes.Handler.WinnersHandler(r.Context(), r.PathValue("cycle_id"))
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleLiveScores is deliberately unauthenticated.
func (s *Server) handleLiveScores(w http.ResponseWriter, r *http.Request) {
	resp, err := s.votes.Handler.LiveScoresHandler(r.Context(), r.PathValue("cycle_id"))
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleVoteEligibility(w http.ResponseWriter, r *http.Request) {
	claims, ok := s.requireAuth(w, r)
	if !ok {
		return
	}
	resp, err := s.votes.Handler.EligibilityHandler(r.Context(), claims.UserID, r.PathValue("cycle_id"))
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSimulateVotes(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	var req votinghttp.SimulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeVotingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.votes.Handler.SimulateHandler(r.Context(), req)
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeVotingDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, votingerrors.ErrInvalidVoteInput):
		writeVotingError(w, http.StatusBadRequest, "invalid_vote_input", err.Error())
	case errors.Is(err, votingerrors.ErrNotEligible):
		writeVotingError(w, http.StatusForbidden, "not_eligible", err.Error())
	case errors.Is(err, votingerrors.ErrCandidateNotFound):
		writeVotingError(w, http.StatusNotFound, "candidate_not_found", err.Error())
	case errors.Is(err, votingerrors.ErrCycleNotFound):
		writeVotingError(w, http.StatusNotFound, "cycle_not_found", err.Error())
	case errors.Is(err, votingerrors.ErrVoterNotFound):
		writeVotingError(w, http.StatusNotFound, "voter_not_found", err.Error())
	case errors.Is(err, votingerrors.ErrVoteNotFound):
		writeVotingError(w, http.StatusNotFound, "vote_not_found", err.Error())
	case errors.Is(err, votingerrors.ErrVotingClosed):
		writeVotingError(w, http.StatusConflict, "voting_closed", err.Error())
	case errors.Is(err, votingerrors.ErrAlreadyVoted):
		writeVotingError(w, http.StatusConflict, "already_voted", err.Error())
	case errors.Is(err, votingerrors.ErrUnknownTargetCandidate):
		writeVotingError(w, http.StatusUnprocessableEntity, "unknown_target_candidate", err.Error())
	default:
		writeVotingError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeVotingError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, votinghttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
