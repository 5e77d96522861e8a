package errors

import "errors"

var (
	ErrInvalidBallotInput = errors.New("ballot input is invalid")
	ErrPositionNotFound   = errors.New("position not found")
	ErrCandidateNotFound  = errors.New("candidate not found")
	ErrCycleNotFound      = errors.New("voting cycle not found")
	ErrCycleMismatch      = errors.New("candidate cycle does not match the position's cycle")
	ErrBallotInUse        = errors.New("ballot entry has recorded votes and cannot be deleted")
)
