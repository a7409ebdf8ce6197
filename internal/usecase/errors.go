package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	// ErrMalformedPayload marks an upstream body that parsed as JSON but could
	// not be assembled into a profile.
	ErrMalformedPayload = errors.New("malformed upstream payload")
)
