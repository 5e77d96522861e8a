package errors

import "errors"

var (
	ErrInvalidCycleInput = errors.New("voting cycle input is invalid")
	ErrCycleNotFound     = errors.New("voting cycle not found")
	ErrCycleExists       = errors.New("a voting cycle for that year already exists")
	ErrCycleInUse        = errors.New("voting cycle has recorded votes and cannot be deleted")
	ErrNoActiveCycle     = errors.New("no voting cycle is currently active")
)
