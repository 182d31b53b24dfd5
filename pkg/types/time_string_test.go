package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr error
	}{
		{name: "valid morning", input: "09:00", want: TimeString("09:00")},
		{name: "valid midnight", input: "00:00", want: TimeString("00:00")},
		{name: "valid last minute", input: "23:59", want: TimeString("23:59")},
		{name: "missing leading zero", input: "9:00", wantErr: ErrInvalidTimeFormat},
		{name: "hour out of range", input: "24:00", wantErr: ErrInvalidTimeFormat},
		{name: "minute out of range", input: "12:60", wantErr: ErrInvalidTimeFormat},
		{name: "not a time", input: "banana", wantErr: ErrInvalidTimeFormat},
		{name: "empty", input: "", wantErr: ErrInvalidTimeFormat},
		{name: "with seconds", input: "09:00:00", wantErr: ErrInvalidTimeFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Minutes(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"00:00", 0},
		{"01:00", 60},
		{"09:30", 570},
		{"23:59", 1439},
	}

	for _, tt := range tests {
		ts, err := NewTimeStringFromString(tt.input)
		require.NoError(t, err)

		minutes, err := ts.Minutes()
		require.NoError(t, err)
		assert.Equal(t, tt.want, minutes, "minutes of %s", tt.input)
	}
}

func TestNewTimeStringFromMinutes(t *testing.T) {
	ts, err := NewTimeStringFromMinutes(570)
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:30"), ts)

	_, err = NewTimeStringFromMinutes(1440)
	assert.ErrorIs(t, err, ErrMinutesOutOfRange)

	_, err = NewTimeStringFromMinutes(-1)
	assert.ErrorIs(t, err, ErrMinutesOutOfRange)
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts := TimeString("09:00")

	got, err := ts.AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:30"), got)

	// Wrapping past midnight is a caller error, not a modulo.
	_, err = TimeString("23:30").AddMinutes(60)
	assert.ErrorIs(t, err, ErrMinutesOutOfRange)
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore(TimeString("10:00")))
	assert.False(t, TimeString("10:00").IsBefore(TimeString("10:00")))
	assert.True(t, TimeString("17:00").IsAfter(TimeString("09:00")))

	// Lexical order is chronological order for zero-padded HH:MM.
	assert.True(t, TimeString("09:59").IsBefore(TimeString("10:00")))
}

func TestNewTimeString(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	ts := NewTimeString(time.Date(2026, 3, 14, 9, 5, 59, 0, loc))
	assert.Equal(t, TimeString("09:05"), ts)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	// Postgres TIME columns render as HH:MM:SS; only HH:MM is kept.
	require.NoError(t, ts.Scan("09:30:00"))
	assert.Equal(t, TimeString("09:30"), ts)

	require.NoError(t, ts.Scan([]byte("17:45")))
	assert.Equal(t, TimeString("17:45"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())
}
