package domain

import (
	"fmt"

	"github.com/m-orlv/STB-AvailabilityService/pkg/types"
)

// IntervalsOverlap reports whether the half-open minute intervals
// [aStart, aEnd) and [bStart, bEnd) intersect. Sharing only a boundary point
// is not an intersection.
func IntervalsOverlap(aStart, aEnd, bStart, bEnd int) bool {
	return !(aEnd <= bStart || aStart >= bEnd)
}

// GenerateSlots enumerates the candidate slots of an effective configuration
// in ascending time order. The window [start, end) is walked in fixed
// durationMinutes steps; a trailing remainder shorter than one full duration
// is discarded, never emitted as a short slot. A step is dropped when it
// half-open-intersects any break — a slot that merely touches a break
// boundary is kept. Overlapping breaks need no merging: the per-step test
// already excludes their union.
//
// A closed config, or a window fully covered by breaks, yields an empty
// sequence; that is a valid outcome, not an error. The function has no hidden
// state: equal inputs always produce equal output.
func GenerateSlots(cfg *EffectiveDayConfig, durationMinutes int) ([]CandidateSlot, error) {
	if durationMinutes < MinSlotDurationMinutes || durationMinutes > MaxSlotDurationMinutes {
		return nil, fmt.Errorf("%w: %d minutes", ErrInvalidSlotDuration, durationMinutes)
	}

	slots := make([]CandidateSlot, 0)

	if cfg == nil || cfg.Closed {
		return slots, nil
	}

	startMin, err := cfg.StartTime.Minutes()
	if err != nil {
		return nil, err
	}
	endMin, err := cfg.EndTime.Minutes()
	if err != nil {
		return nil, err
	}

	type breakSpan struct{ start, end int }
	breaks := make([]breakSpan, 0, len(cfg.Breaks))
	for _, br := range cfg.Breaks {
		brStart, err := br.StartTime.Minutes()
		if err != nil {
			return nil, err
		}
		brEnd, err := br.EndTime.Minutes()
		if err != nil {
			return nil, err
		}
		breaks = append(breaks, breakSpan{start: brStart, end: brEnd})
	}

	for stepStart := startMin; stepStart+durationMinutes <= endMin; stepStart += durationMinutes {
		stepEnd := stepStart + durationMinutes

		conflicts := false
		for _, br := range breaks {
			if IntervalsOverlap(stepStart, stepEnd, br.start, br.end) {
				conflicts = true
				break
			}
		}
		if conflicts {
			continue
		}

		slotStart, err := types.NewTimeStringFromMinutes(stepStart)
		if err != nil {
			return nil, err
		}
		slotEnd, err := types.NewTimeStringFromMinutes(stepEnd)
		if err != nil {
			return nil, err
		}

		slots = append(slots, CandidateSlot{
			Date:      cfg.Date,
			StartTime: slotStart,
			EndTime:   slotEnd,
		})
	}

	return slots, nil
}
