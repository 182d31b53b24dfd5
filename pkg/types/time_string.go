package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeFormat is returned for any clock value that is not a valid "HH:MM"
// with hour in 0-23 and minute in 0-59. Malformed stored values are a data-integrity
// fault and must be surfaced to the caller, never coerced to "closed".
var ErrInvalidTimeFormat = errors.New("types: invalid time format, expected HH:MM")

// ErrMinutesOutOfRange is returned when converting minutes-since-midnight
// outside [0, 1440) into a TimeString.
var ErrMinutesOutOfRange = errors.New("types: minutes out of range [0, 1440)")

const (
	timeStringLayout = "15:04"
	minutesPerDay    = 24 * 60
)

// TimeString is a day-local clock value in "HH:MM" form.
// Valid values compare correctly as plain strings because both fields are zero-padded.
type TimeString string

// NewTimeString builds a TimeString from the clock part of t.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeStringLayout))
}

// NewTimeStringFromString parses and validates an "HH:MM" value.
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// NewTimeStringFromMinutes converts minutes since midnight into a TimeString.
// Values outside [0, 1440) are rejected.
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= minutesPerDay {
		return "", fmt.Errorf("%w: got %d", ErrMinutesOutOfRange, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// String returns the raw "HH:MM" value.
func (t TimeString) String() string {
	return string(t)
}

// IsZero returns true for the empty value.
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate checks the "HH:MM" shape and field ranges.
func (t TimeString) Validate() error {
	_, err := t.Minutes()
	return err
}

// Minutes converts the value into minutes since midnight.
func (t TimeString) Minutes() (int, error) {
	s := string(t)
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	hour, ok := parseTwoDigits(s[0], s[1])
	if !ok || hour > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	minute, ok := parseTwoDigits(s[3], s[4])
	if !ok || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	return hour*60 + minute, nil
}

// AddMinutes returns the value shifted forward by the given number of minutes.
// The result must stay inside the same day.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	current, err := t.Minutes()
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(current + minutes)
}

// IsBefore reports whether t is strictly earlier than other.
// Valid values are zero-padded, so lexical order equals clock order.
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter reports whether t is strictly later than other.
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// Scan implements sql.Scanner. Postgres TIME columns come back as "HH:MM:SS",
// varchar columns as "HH:MM"; both are accepted.
func (t *TimeString) Scan(value interface{}) error {
	if value == nil {
		*t = ""
		return nil
	}

	var s string
	switch v := value.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeFormat, value)
	}

	if len(s) > 5 {
		s = s[:5]
	}

	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value implements driver.Valuer.
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

func parseTwoDigits(hi, lo byte) (int, bool) {
	if hi < '0' || hi > '9' || lo < '0' || lo > '9' {
		return 0, false
	}
	return int(hi-'0')*10 + int(lo-'0'), true
}
