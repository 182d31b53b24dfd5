package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m-orlv/STB-AvailabilityService/pkg/types"
)

func openDay(start, end types.TimeString, breaks ...BreakWindow) *EffectiveDayConfig {
	return &EffectiveDayConfig{
		Date:      "2026-03-02",
		StartTime: start,
		EndTime:   end,
		Breaks:    breaks,
		Source:    SourceTemplate,
	}
}

func slotStarts(slots []CandidateSlot) []string {
	starts := make([]string, 0, len(slots))
	for _, s := range slots {
		starts = append(starts, s.StartTime.String())
	}
	return starts
}

func TestGenerateSlots_FullDayWithLunchBreak(t *testing.T) {
	cfg := openDay("09:00", "17:00", BreakWindow{StartTime: "12:00", EndTime: "13:00"})

	slots, err := GenerateSlots(cfg, 60)
	require.NoError(t, err)

	// Eight hourly steps minus the one swallowed by lunch.
	assert.Equal(t, []string{
		"09:00", "10:00", "11:00", "13:00", "14:00", "15:00", "16:00",
	}, slotStarts(slots))
}

func TestGenerateSlots_BoundaryTouchIsNotAConflict(t *testing.T) {
	// The 11:00-12:00 slot ends exactly where the break starts and the
	// 13:00-14:00 slot starts exactly where it ends; both are kept.
	cfg := openDay("09:00", "17:00", BreakWindow{StartTime: "12:00", EndTime: "13:00"})

	slots, err := GenerateSlots(cfg, 60)
	require.NoError(t, err)

	starts := slotStarts(slots)
	assert.Contains(t, starts, "11:00")
	assert.Contains(t, starts, "13:00")
	assert.NotContains(t, starts, "12:00")
}

func TestGenerateSlots_TrailingRemainderDropped(t *testing.T) {
	cfg := openDay("09:00", "17:30")

	slots, err := GenerateSlots(cfg, 60)
	require.NoError(t, err)

	// 17:00+60 would exceed 17:30; no short slot is emitted.
	require.Len(t, slots, 8)
	assert.Equal(t, types.TimeString("17:00"), slots[len(slots)-1].EndTime)
}

func TestGenerateSlots_PartialBreakOverlapDropsStep(t *testing.T) {
	// A break covering any part of a step removes the whole step.
	cfg := openDay("09:00", "12:00", BreakWindow{StartTime: "09:30", EndTime: "09:45"})

	slots, err := GenerateSlots(cfg, 60)
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00", "11:00"}, slotStarts(slots))
}

func TestGenerateSlots_OverlappingBreaksNeedNoMerge(t *testing.T) {
	cfg := openDay("09:00", "13:00",
		BreakWindow{StartTime: "10:00", EndTime: "11:30"},
		BreakWindow{StartTime: "11:00", EndTime: "12:00"},
	)

	slots, err := GenerateSlots(cfg, 60)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "12:00"}, slotStarts(slots))
}

func TestGenerateSlots_ClosedDayIsEmpty(t *testing.T) {
	cfg := &EffectiveDayConfig{Date: "2026-03-02", Closed: true, Source: SourceOverride}

	slots, err := GenerateSlots(cfg, 60)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlots_WindowShorterThanDuration(t *testing.T) {
	cfg := openDay("09:00", "09:30")

	slots, err := GenerateSlots(cfg, 60)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlots_NonHourDuration(t *testing.T) {
	cfg := openDay("09:00", "10:30")

	slots, err := GenerateSlots(cfg, 45)
	require.NoError(t, err)

	// 09:00-09:45 and 09:45-10:30 fit exactly.
	assert.Equal(t, []string{"09:00", "09:45"}, slotStarts(slots))
}

func TestGenerateSlots_InvalidDuration(t *testing.T) {
	cfg := openDay("09:00", "17:00")

	_, err := GenerateSlots(cfg, 0)
	assert.ErrorIs(t, err, ErrInvalidSlotDuration)

	_, err = GenerateSlots(cfg, MaxSlotDurationMinutes+1)
	assert.ErrorIs(t, err, ErrInvalidSlotDuration)
}

func TestGenerateSlots_Idempotent(t *testing.T) {
	cfg := openDay("09:00", "17:00", BreakWindow{StartTime: "12:00", EndTime: "13:00"})

	first, err := GenerateSlots(cfg, 60)
	require.NoError(t, err)
	second, err := GenerateSlots(cfg, 60)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestIntervalsOverlap(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd int
		want                       bool
	}{
		{"disjoint", 540, 600, 720, 780, false},
		{"touching end-to-start", 540, 600, 600, 660, false},
		{"touching start-to-end", 600, 660, 540, 600, false},
		{"partial overlap", 540, 620, 600, 660, true},
		{"containment", 540, 780, 600, 660, true},
		{"identical", 540, 600, 540, 600, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IntervalsOverlap(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
		})
	}
}
