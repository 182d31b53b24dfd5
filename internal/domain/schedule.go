package domain

import (
	"time"

	"github.com/m-orlv/STB-AvailabilityService/pkg/types"
)

// DailyTemplate is one recurring weekly working-hours rule for a provider.
// At most one enabled template may exist per (provider, weekday); the write
// boundary enforces this.
type DailyTemplate struct {
	ID         int64
	ProviderID int64
	DayOfWeek  int // 0=Sunday .. 6=Saturday
	StartTime  types.TimeString
	EndTime    types.TimeString
	IsEnabled  bool

	Breaks []TemplateBreak

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ContributesSlots reports whether the template can produce slots at all.
// A disabled template or one missing either bound contributes nothing.
func (t *DailyTemplate) ContributesSlots() bool {
	return t.IsEnabled && !t.StartTime.IsZero() && !t.EndTime.IsZero()
}

// TemplateBreak is a sub-interval of its template's window excluded from
// generated slots. Breaks may overlap each other; exclusion covers their union.
type TemplateBreak struct {
	ID         int64
	TemplateID int64
	StartTime  types.TimeString
	EndTime    types.TimeString
	Label      *string

	CreatedAt time.Time
}

// DateOverride is a date-specific exception replacing any template for that
// date. Both bounds nil means the provider is closed that date regardless of
// templates. Date is the canonical YYYY-MM-DD key, unique per provider.
type DateOverride struct {
	ID         int64
	ProviderID int64
	Date       string
	StartTime  *types.TimeString
	EndTime    *types.TimeString
	Reason     *string

	Breaks []OverrideBreak

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsClosedAllDay reports whether the override closes the whole date.
// Per the resolution contract a single missing bound also closes the date.
func (o *DateOverride) IsClosedAllDay() bool {
	return o.StartTime == nil || o.EndTime == nil
}

// OverrideBreak is a break interval scoped to a single override date.
type OverrideBreak struct {
	ID         int64
	OverrideID int64
	StartTime  types.TimeString
	EndTime    types.TimeString
	Label      *string

	CreatedAt time.Time
}

// ConfigSource identifies which layer produced an effective configuration.
type ConfigSource string

const (
	SourceTemplate ConfigSource = "template"
	SourceOverride ConfigSource = "override"
	SourceNone     ConfigSource = "none"
)

// BreakWindow is a resolved break interval inside an effective configuration.
type BreakWindow struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	Label     *string
}

// EffectiveDayConfig is the resolved working-window-plus-breaks for one
// provider/date pair. Derived, never persisted; lives for one computation.
type EffectiveDayConfig struct {
	Date      string // YYYY-MM-DD in the provider's timezone
	Closed    bool
	StartTime types.TimeString
	EndTime   types.TimeString
	Breaks    []BreakWindow
	Reason    *string // override reason, surfaced on slot titles
	Source    ConfigSource
}

// CandidateSlot is one fixed-duration bookable window derived from an
// effective configuration. Derived, never persisted.
type CandidateSlot struct {
	Date      string
	StartTime types.TimeString
	EndTime   types.TimeString
}
