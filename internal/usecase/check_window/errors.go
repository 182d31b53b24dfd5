package check_window

import "errors"

var (
	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidWindow is returned when the proposed end is not strictly
	// after the proposed start.
	ErrInvalidWindow = errors.New("window end must be after start")

	// ErrProviderNotFound is returned when the provider does not exist.
	ErrProviderNotFound = errors.New("provider not found")

	// ErrBookingStoreUnavailable is returned when bookings cannot be read.
	ErrBookingStoreUnavailable = errors.New("booking store unavailable")

	// ErrInternal is returned for unexpected usecase failures.
	ErrInternal = errors.New("usecase: internal error")
)
