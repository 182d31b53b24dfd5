package recompute

import "errors"

var (
	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrProviderNotFound is returned when the provider does not exist.
	ErrProviderNotFound = errors.New("provider not found")

	// ErrInternal is returned for unexpected service failures.
	ErrInternal = errors.New("service: internal error")
)
