package types

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDateFormat is returned for calendar dates that are not valid "YYYY-MM-DD".
var ErrInvalidDateFormat = errors.New("types: invalid date format, expected YYYY-MM-DD")

// DateLayout is the canonical calendar-date form used as the lookup key for overrides.
const DateLayout = "2006-01-02"

// FormatDate renders t as a "YYYY-MM-DD" key in the given location.
// The location must be the provider's configured timezone so that "today"
// is unambiguous regardless of where a request originates.
func FormatDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateLayout)
}

// ParseDateInLocation parses a "YYYY-MM-DD" key at midnight of the given location.
func ParseDateInLocation(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}
	return t, nil
}

// DayBounds returns the half-open absolute interval [start, end) covering the
// calendar day of t in the given location.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}
