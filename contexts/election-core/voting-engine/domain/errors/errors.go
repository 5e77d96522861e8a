package errors

import "errors"

var (
	ErrInvalidVoteInput       = errors.New("invalid vote input")
	ErrNotEligible            = errors.New("only members can cast votes")
	ErrCandidateNotFound      = errors.New("candidate not found")
	ErrCycleNotFound          = errors.New("voting cycle not found")
	ErrVotingClosed           = errors.New("voting is not active for this cycle")
	ErrAlreadyVoted           = errors.New("voter has already voted for this position")
	ErrVoteNotFound           = errors.New("vote not found")
	ErrVoterNotFound          = errors.New("voter not found")
	ErrUnknownTargetCandidate = errors.New("target candidate does not belong to the cycle")
)
