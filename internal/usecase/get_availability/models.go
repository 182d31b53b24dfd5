package get_availability

import (
	"github.com/m-orlv/STB-AvailabilityService/internal/domain"
	"github.com/m-orlv/STB-AvailabilityService/pkg/types"
)

// Request asks for the availability of one provider on one date.
// Date is the raw YYYY-MM-DD value; it is parsed in the provider's configured
// timezone, never the caller's. DurationMinutes of 0 selects the default.
type Request struct {
	ProviderID      int64
	Date            string
	DurationMinutes int
}

// Response carries the computed availability for the date.
type Response struct {
	ProviderID  int64
	Date        string
	Closed      bool
	Reason      *string
	Source      domain.ConfigSource
	WindowStart types.TimeString // zero when closed
	WindowEnd   types.TimeString
	Slots       []Slot
}

// Slot is one candidate window with its occupancy flag.
type Slot struct {
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	IsAvailable     bool
	Label           *string // override reason, when one applies to the date
}
