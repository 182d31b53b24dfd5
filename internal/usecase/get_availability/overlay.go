package get_availability

import (
	"time"

	"github.com/m-orlv/STB-AvailabilityService/internal/domain"
)

// overlaySlots marks each candidate slot available or occupied against the
// occupying bookings of the date. A slot is occupied when its half-open
// [start, end) interval really overlaps a booking's [startAt, endAt) — a
// booking ending exactly where a slot starts (or vice versa) does not occupy
// it. Absolute slot bounds are built with wall-clock arithmetic in the
// provider's timezone so DST transition days stay correct.
func overlaySlots(
	candidates []domain.CandidateSlot,
	bookings []*domain.Booking,
	durationMinutes int,
	date time.Time,
	loc *time.Location,
	label *string,
) ([]Slot, error) {
	slots := make([]Slot, 0, len(candidates))

	for _, candidate := range candidates {
		startAbs, err := clockToAbsolute(candidate.StartTime.String(), date, loc)
		if err != nil {
			return nil, err
		}
		endAbs, err := clockToAbsolute(candidate.EndTime.String(), date, loc)
		if err != nil {
			return nil, err
		}

		occupied := false
		for _, b := range bookings {
			if !b.IsOccupying() {
				continue
			}
			if b.Overlaps(startAbs, endAbs) {
				occupied = true
				break
			}
		}

		slots = append(slots, Slot{
			StartTime:       candidate.StartTime,
			EndTime:         candidate.EndTime,
			DurationMinutes: durationMinutes,
			IsAvailable:     !occupied,
			Label:           label,
		})
	}

	return slots, nil
}

// clockToAbsolute anchors an HH:MM value on the calendar day of date in loc.
func clockToAbsolute(clock string, date time.Time, loc *time.Location) (time.Time, error) {
	parsed, err := time.Parse(domain.TimeFormat, clock)
	if err != nil {
		return time.Time{}, err
	}

	local := date.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, loc), nil
}
