package booking

import "errors"

var (
	// ErrBuildQuery is returned when SQL construction fails.
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery is returned when a SQL statement fails to execute.
	// Callers treat it as the booking collaborator being unavailable.
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails.
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
