package domain

import "errors"

var (
	// ErrInvalidInterval is returned when an interval's end is not strictly
	// after its start (template window, break, or override window).
	ErrInvalidInterval = errors.New("domain: interval end must be after start")

	// ErrInvalidSlotDuration is returned for slot durations outside the
	// allowed bounds.
	ErrInvalidSlotDuration = errors.New("domain: invalid slot duration")
)
