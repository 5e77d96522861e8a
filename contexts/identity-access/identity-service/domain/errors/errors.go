package errors

import "errors"

var (
	ErrInvalidUserInput   = errors.New("user input is invalid")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrMembershipIDTaken  = errors.New("membership id is already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("email or password is incorrect")
)
