package schedule

import "errors"

var (
	// ErrTemplateNotFound is returned when no matching daily template exists.
	ErrTemplateNotFound = errors.New("schedule.repository: template not found")

	// ErrOverrideNotFound is returned when no matching date override exists.
	ErrOverrideNotFound = errors.New("schedule.repository: override not found")

	// ErrBuildQuery is returned when SQL construction fails.
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery is returned when a SQL statement fails to execute.
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails.
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
