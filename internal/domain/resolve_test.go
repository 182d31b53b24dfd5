package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m-orlv/STB-AvailabilityService/pkg/ptr"
	"github.com/m-orlv/STB-AvailabilityService/pkg/types"
)

// 2026-03-02 is a Monday.
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func mondayTemplate() *DailyTemplate {
	return &DailyTemplate{
		ID:         1,
		ProviderID: 10,
		DayOfWeek:  1,
		StartTime:  "09:00",
		EndTime:    "17:00",
		IsEnabled:  true,
		Breaks: []TemplateBreak{
			{ID: 1, TemplateID: 1, StartTime: "12:00", EndTime: "13:00", Label: ptr.Ptr("lunch")},
		},
	}
}

func TestResolveDay_TemplateApplies(t *testing.T) {
	cfg, err := ResolveDay(monday, time.UTC, nil, mondayTemplate())
	require.NoError(t, err)

	assert.Equal(t, "2026-03-02", cfg.Date)
	assert.False(t, cfg.Closed)
	assert.Equal(t, types.TimeString("09:00"), cfg.StartTime)
	assert.Equal(t, types.TimeString("17:00"), cfg.EndTime)
	assert.Equal(t, SourceTemplate, cfg.Source)
	require.Len(t, cfg.Breaks, 1)
	assert.Equal(t, types.TimeString("12:00"), cfg.Breaks[0].StartTime)
}

func TestResolveDay_OverrideReplacesTemplate(t *testing.T) {
	override := &DateOverride{
		ID:         5,
		ProviderID: 10,
		Date:       "2026-03-02",
		StartTime:  ptr.Ptr(types.TimeString("10:00")),
		EndTime:    ptr.Ptr(types.TimeString("14:00")),
		Reason:     ptr.Ptr("equipment maintenance"),
	}

	cfg, err := ResolveDay(monday, time.UTC, override, mondayTemplate())
	require.NoError(t, err)

	// Full replacement: the template's window and breaks contribute nothing.
	assert.Equal(t, types.TimeString("10:00"), cfg.StartTime)
	assert.Equal(t, types.TimeString("14:00"), cfg.EndTime)
	assert.Empty(t, cfg.Breaks)
	assert.Equal(t, SourceOverride, cfg.Source)
	require.NotNil(t, cfg.Reason)
	assert.Equal(t, "equipment maintenance", *cfg.Reason)
}

func TestResolveDay_OverrideClosedAllDay(t *testing.T) {
	override := &DateOverride{
		ProviderID: 10,
		Date:       "2026-03-02",
		Reason:     ptr.Ptr("public holiday"),
	}

	cfg, err := ResolveDay(monday, time.UTC, override, mondayTemplate())
	require.NoError(t, err)

	assert.True(t, cfg.Closed)
	assert.Equal(t, SourceOverride, cfg.Source)
}

func TestResolveDay_OverrideSingleNilBoundCloses(t *testing.T) {
	override := &DateOverride{
		ProviderID: 10,
		Date:       "2026-03-02",
		StartTime:  ptr.Ptr(types.TimeString("10:00")),
	}

	cfg, err := ResolveDay(monday, time.UTC, override, mondayTemplate())
	require.NoError(t, err)
	assert.True(t, cfg.Closed)
}

func TestResolveDay_NoConfiguration(t *testing.T) {
	cfg, err := ResolveDay(monday, time.UTC, nil, nil)
	require.NoError(t, err)

	assert.True(t, cfg.Closed)
	assert.Equal(t, SourceNone, cfg.Source)
}

func TestResolveDay_DisabledTemplateIsClosed(t *testing.T) {
	tmpl := mondayTemplate()
	tmpl.IsEnabled = false

	cfg, err := ResolveDay(monday, time.UTC, nil, tmpl)
	require.NoError(t, err)
	assert.True(t, cfg.Closed)
	assert.Equal(t, SourceNone, cfg.Source)
}

func TestResolveDay_TemplateMissingBoundIsClosed(t *testing.T) {
	tmpl := mondayTemplate()
	tmpl.EndTime = ""

	cfg, err := ResolveDay(monday, time.UTC, nil, tmpl)
	require.NoError(t, err)
	assert.True(t, cfg.Closed)
}

func TestResolveDay_MalformedTimeSurfaced(t *testing.T) {
	tmpl := mondayTemplate()
	tmpl.StartTime = "25:00"

	_, err := ResolveDay(monday, time.UTC, nil, tmpl)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrInvalidTimeFormat)
}

func TestResolveDay_InvertedWindowSurfaced(t *testing.T) {
	tmpl := mondayTemplate()
	tmpl.StartTime = "17:00"
	tmpl.EndTime = "09:00"
	tmpl.Breaks = nil

	_, err := ResolveDay(monday, time.UTC, nil, tmpl)
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestResolveDay_EmptyBreakRejected(t *testing.T) {
	tmpl := mondayTemplate()
	tmpl.Breaks = []TemplateBreak{{StartTime: "12:00", EndTime: "12:00"}}

	_, err := ResolveDay(monday, time.UTC, nil, tmpl)
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestResolveDay_EqualBoundsWindowAllowed(t *testing.T) {
	tmpl := mondayTemplate()
	tmpl.StartTime = "09:00"
	tmpl.EndTime = "09:00"
	tmpl.Breaks = nil

	cfg, err := ResolveDay(monday, time.UTC, nil, tmpl)
	require.NoError(t, err)
	assert.False(t, cfg.Closed)

	slots, err := GenerateSlots(cfg, 60)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestResolveDay_DateKeyUsesLocation(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	// 23:30 UTC on March 2nd is already March 3rd in Tokyo.
	lateUTC := time.Date(2026, 3, 2, 23, 30, 0, 0, time.UTC)

	cfg, err := ResolveDay(lateUTC, loc, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-03", cfg.Date)
}
