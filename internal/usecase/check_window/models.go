package check_window

import "time"

// Request proposes an arbitrary absolute window for one provider.
// The window does not have to align to any configured slot duration.
type Request struct {
	ProviderID int64
	Start      time.Time
	End        time.Time
}

// Response reports whether the window is free of booking conflicts.
// ConflictCount counts the occupying bookings overlapping the window.
type Response struct {
	ProviderID    int64
	Start         time.Time
	End           time.Time
	IsFree        bool
	ConflictCount int
}
