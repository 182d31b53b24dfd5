package schedule

import "errors"

var (
	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidInterval is returned when a window or break ends before it
	// starts.
	ErrInvalidInterval = errors.New("interval end must be after start")

	// ErrDuplicateTemplate is returned when the provider already has an
	// enabled template for the requested weekday.
	ErrDuplicateTemplate = errors.New("enabled template for this weekday already exists")

	// ErrTemplateNotFound is returned when the template does not exist.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrOverrideNotFound is returned when the override does not exist.
	ErrOverrideNotFound = errors.New("override not found")

	// ErrProviderNotFound is returned when the provider does not exist.
	ErrProviderNotFound = errors.New("provider not found")

	// ErrAccessDenied is returned when the template belongs to a different
	// provider than the caller named.
	ErrAccessDenied = errors.New("access denied")

	// ErrInternal is returned for unexpected service failures.
	ErrInternal = errors.New("service: internal error")
)
