package schedule

import "github.com/m-orlv/STB-AvailabilityService/pkg/types"

// normalizeStoredTime converts a stored clock value to a validated TimeString.
// Postgres TIME columns render as "HH:MM:SS"; only the HH:MM part is kept.
// A malformed value fails with types.ErrInvalidTimeFormat so the data fault
// is surfaced instead of being read as "closed".
func normalizeStoredTime(s string) (types.TimeString, error) {
	if len(s) > 5 {
		s = s[:5]
	}
	return types.NewTimeStringFromString(s)
}
