package get_availability

import "errors"

var (
	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrProviderNotFound is returned when the provider does not exist.
	ErrProviderNotFound = errors.New("provider not found")

	// ErrInvalidDate is returned for a date that does not parse as YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")

	// ErrDateBeyondHorizon is returned when the date lies past the provider's
	// published booking horizon.
	ErrDateBeyondHorizon = errors.New("date is beyond the booking horizon")

	// ErrInvalidTimezone is returned when the provider profile carries a
	// timezone the host cannot load.
	ErrInvalidTimezone = errors.New("invalid provider timezone")

	// ErrBookingStoreUnavailable is returned when bookings cannot be read.
	// Distinct from an empty booking set, which is a normal result.
	ErrBookingStoreUnavailable = errors.New("booking store unavailable")

	// ErrInternal is returned for unexpected usecase failures.
	ErrInternal = errors.New("usecase: internal error")
)
