package get_effective_config

import "errors"

var (
	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidDate is returned for a date that does not parse as YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")

	// ErrProviderNotFound is returned when the provider does not exist.
	ErrProviderNotFound = errors.New("provider not found")

	// ErrInvalidTimezone is returned when the provider profile carries a
	// timezone the host cannot load.
	ErrInvalidTimezone = errors.New("invalid provider timezone")

	// ErrInternal is returned for unexpected usecase failures.
	ErrInternal = errors.New("usecase: internal error")
)
