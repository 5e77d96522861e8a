package errors

import "errors"

var (
	ErrInvalidNotificationInput = errors.New("notification input is invalid")
	ErrAllProvidersFailed       = errors.New("all delivery providers failed")
	ErrNoProviderConfigured     = errors.New("no delivery provider is configured")
)
