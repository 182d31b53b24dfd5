package domain

// Default configuration values
const (
	DefaultSlotDurationMinutes = 60
	// DefaultBookingHorizonDays limits how far ahead availability is published
	// when the provider profile does not specify its own horizon.
	DefaultBookingHorizonDays = 90
)

// Business validation constants
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 480 // 8 hours
	MinBookingHorizonDays  = 1
	MaxBookingHorizonDays  = 365 // 1 year
	MaxLabelLength         = 200
	MaxReasonLength        = 500
)

// Weekday bounds, 0=Sunday .. 6=Saturday (matches time.Weekday).
const (
	MinDayOfWeek = 0
	MaxDayOfWeek = 6
)

// Time format constants
const (
	TimeFormat      = "15:04"      // HH:MM
	DateFormat      = "2006-01-02" // YYYY-MM-DD
	TimestampFormat = "2006-01-02T15:04:05Z07:00"
)

// OccupyingStatuses lists the booking statuses that occupy calendar time.
// A pending booking occupies its slot: time awaiting confirmation must not be
// offered to a second client.
var OccupyingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}

// NonOccupyingStatuses lists the statuses excluded from occupancy marking.
var NonOccupyingStatuses = []BookingStatus{
	StatusDeclined,
	StatusCancelledByClient,
	StatusCancelledByProvider,
}
