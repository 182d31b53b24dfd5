package providerservice

import "errors"

var (
	// ErrProviderNotFound is returned when the provider does not exist.
	ErrProviderNotFound = errors.New("providerservice: provider not found")

	// ErrInvalidResponse is returned for unexpected status codes or bodies.
	ErrInvalidResponse = errors.New("providerservice: invalid response")

	// ErrInternal is returned for request construction or transport failures.
	ErrInternal = errors.New("providerservice: internal error")
)
