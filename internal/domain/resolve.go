package domain

import (
	"fmt"
	"time"

	"github.com/m-orlv/STB-AvailabilityService/pkg/types"
)

// ResolveDay computes the single effective configuration for one provider/date
// pair. An override for the date takes absolute precedence over any template
// for that weekday: it fully replaces the template's contribution, it never
// merges with it. With no override, the weekday template applies unless it is
// missing, disabled, or missing either bound — all of which resolve to closed.
//
// The caller fetches the records (override by date key, template by weekday,
// each with its breaks) and passes them in; the function itself is pure.
//
// A malformed stored time value fails with types.ErrInvalidTimeFormat and an
// inverted interval with ErrInvalidInterval: configuration-shape faults are
// surfaced, never silently resolved to closed.
func ResolveDay(date time.Time, loc *time.Location, override *DateOverride, tmpl *DailyTemplate) (*EffectiveDayConfig, error) {
	dateKey := types.FormatDate(date, loc)

	// 1. An override for the date wins unconditionally.
	if override != nil {
		if override.IsClosedAllDay() {
			return &EffectiveDayConfig{
				Date:   dateKey,
				Closed: true,
				Reason: override.Reason,
				Source: SourceOverride,
			}, nil
		}

		if err := validateWindow(*override.StartTime, *override.EndTime); err != nil {
			return nil, fmt.Errorf("override id=%d: %w", override.ID, err)
		}

		breaks := make([]BreakWindow, 0, len(override.Breaks))
		for _, br := range override.Breaks {
			if err := validateBreak(br.StartTime, br.EndTime); err != nil {
				return nil, fmt.Errorf("override break id=%d: %w", br.ID, err)
			}
			breaks = append(breaks, BreakWindow{StartTime: br.StartTime, EndTime: br.EndTime, Label: br.Label})
		}

		return &EffectiveDayConfig{
			Date:      dateKey,
			StartTime: *override.StartTime,
			EndTime:   *override.EndTime,
			Breaks:    breaks,
			Reason:    override.Reason,
			Source:    SourceOverride,
		}, nil
	}

	// 2. No override: the weekday template applies, if it can contribute.
	if tmpl == nil || !tmpl.ContributesSlots() {
		return &EffectiveDayConfig{
			Date:   dateKey,
			Closed: true,
			Source: SourceNone,
		}, nil
	}

	if err := validateWindow(tmpl.StartTime, tmpl.EndTime); err != nil {
		return nil, fmt.Errorf("template id=%d: %w", tmpl.ID, err)
	}

	breaks := make([]BreakWindow, 0, len(tmpl.Breaks))
	for _, br := range tmpl.Breaks {
		if err := validateBreak(br.StartTime, br.EndTime); err != nil {
			return nil, fmt.Errorf("template break id=%d: %w", br.ID, err)
		}
		breaks = append(breaks, BreakWindow{StartTime: br.StartTime, EndTime: br.EndTime, Label: br.Label})
	}

	return &EffectiveDayConfig{
		Date:      dateKey,
		StartTime: tmpl.StartTime,
		EndTime:   tmpl.EndTime,
		Breaks:    breaks,
		Source:    SourceTemplate,
	}, nil
}

// validateWindow checks both clock values of a working window. An inverted
// window is a data fault; an equal-bounds window is allowed and simply yields
// no slots.
func validateWindow(start, end types.TimeString) error {
	startMin, err := start.Minutes()
	if err != nil {
		return err
	}
	endMin, err := end.Minutes()
	if err != nil {
		return err
	}
	if endMin < startMin {
		return fmt.Errorf("%w: %s..%s", ErrInvalidInterval, start, end)
	}
	return nil
}

// validateBreak checks a break interval; a break must be strictly non-empty.
func validateBreak(start, end types.TimeString) error {
	startMin, err := start.Minutes()
	if err != nil {
		return err
	}
	endMin, err := end.Minutes()
	if err != nil {
		return err
	}
	if endMin <= startMin {
		return fmt.Errorf("%w: %s..%s", ErrInvalidInterval, start, end)
	}
	return nil
}
