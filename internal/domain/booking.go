package domain

import "time"

// BookingStatus represents the lifecycle status of a booking.
type BookingStatus string

const (
	StatusPending             BookingStatus = "pending"
	StatusConfirmed           BookingStatus = "confirmed"
	StatusCompleted           BookingStatus = "completed"
	StatusDeclined            BookingStatus = "declined"
	StatusCancelledByClient   BookingStatus = "cancelled_by_client"
	StatusCancelledByProvider BookingStatus = "cancelled_by_provider"
)

// Booking is the read model of a booking record. The booking service owns the
// lifecycle (creation, status transitions, cancellation); this service only
// reads bookings to reconcile computed availability with committed time.
type Booking struct {
	ID         int64
	ProviderID int64
	ClientID   int64
	StartAt    time.Time // absolute timestamp, half-open interval [StartAt, EndAt)
	EndAt      time.Time
	Status     BookingStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOccupying reports whether the booking blocks calendar time.
// Pending bookings occupy their window; declined and cancelled ones do not.
func (b *Booking) IsOccupying() bool {
	switch b.Status {
	case StatusPending, StatusConfirmed, StatusCompleted:
		return true
	default:
		return false
	}
}

// Overlaps reports whether the booking's [StartAt, EndAt) interval overlaps
// [start, end). Sharing only a boundary point is not an overlap.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartAt.Before(end) && b.EndAt.After(start)
}
