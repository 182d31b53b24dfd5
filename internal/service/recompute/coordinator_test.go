package recompute

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m-orlv/STB-AvailabilityService/internal/domain"
	storage "github.com/m-orlv/STB-AvailabilityService/internal/infra/storage/schedule"
	providerClient "github.com/m-orlv/STB-AvailabilityService/internal/integrations/providerservice"
	"github.com/m-orlv/STB-AvailabilityService/pkg/ptr"
	"github.com/m-orlv/STB-AvailabilityService/pkg/types"
)

type fakeScheduleRepo struct {
	override *domain.DateOverride
	tmpl     *domain.DailyTemplate
}

func (f *fakeScheduleRepo) GetOverrideByProviderAndDate(_ context.Context, _ int64, date string) (*domain.DateOverride, error) {
	if f.override == nil || f.override.Date != date {
		return nil, storage.ErrOverrideNotFound
	}
	return f.override, nil
}

func (f *fakeScheduleRepo) GetEnabledTemplateForWeekday(_ context.Context, _ int64, dayOfWeek int) (*domain.DailyTemplate, error) {
	if f.tmpl == nil || f.tmpl.DayOfWeek != dayOfWeek {
		return nil, storage.ErrTemplateNotFound
	}
	return f.tmpl, nil
}

type fakeProviderClient struct {
	provider *providerClient.Provider
	err      error
}

func (f *fakeProviderClient) GetProvider(_ context.Context, _ int64) (*providerClient.Provider, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.provider, nil
}

type fixedClock struct {
	now time.Time
}

func (f fixedClock) Now() time.Time { return f.now }

type recordingSink struct {
	providerIDs []int64
	batches     [][]string
}

func (s *recordingSink) InvalidateDates(_ context.Context, providerID int64, dates []string) {
	s.providerIDs = append(s.providerIDs, providerID)
	s.batches = append(s.batches, dates)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// 2026-03-02 is a Monday.
var monday = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

func utcProvider(horizon int) *providerClient.Provider {
	return &providerClient.Provider{ID: 10, Timezone: "UTC", BookingHorizonDays: horizon}
}

func newTestCoordinator(repo *fakeScheduleRepo, provider *providerClient.Provider, now time.Time) (*Coordinator, *recordingSink) {
	c := NewCoordinator(repo, &fakeProviderClient{provider: provider}, fixedClock{now: now}, nopLogger{})
	sink := &recordingSink{}
	c.RegisterSink(sink)
	return c, sink
}

func TestOnTemplateChanged_InvalidatesMatchingWeekdays(t *testing.T) {
	c, sink := newTestCoordinator(&fakeScheduleRepo{}, utcProvider(28), monday)

	c.OnTemplateChanged(context.Background(), 10, 1)

	require.Len(t, sink.batches, 1)
	// Four weeks starting on a Monday contain exactly four Mondays,
	// today included.
	assert.Equal(t, []string{
		"2026-03-02", "2026-03-09", "2026-03-16", "2026-03-23",
	}, sink.batches[0])
	assert.Equal(t, int64(10), sink.providerIDs[0])
}

func TestOnTemplateChanged_TodayExcludedWhenWeekdayPassed(t *testing.T) {
	// Changing the Sunday template on a Monday: the first affected date is
	// six days out, never yesterday.
	c, sink := newTestCoordinator(&fakeScheduleRepo{}, utcProvider(14), monday)

	c.OnTemplateChanged(context.Background(), 10, 0)

	require.Len(t, sink.batches, 1)
	assert.Equal(t, []string{"2026-03-08", "2026-03-15"}, sink.batches[0])
}

func TestOnTemplateChanged_WeekdayOutOfRangeIgnored(t *testing.T) {
	c, sink := newTestCoordinator(&fakeScheduleRepo{}, utcProvider(28), monday)

	c.OnTemplateChanged(context.Background(), 10, 7)
	c.OnTemplateChanged(context.Background(), 10, -1)

	assert.Empty(t, sink.batches)
}

func TestOnTemplateChanged_HorizonClampedToDefault(t *testing.T) {
	c, sink := newTestCoordinator(&fakeScheduleRepo{}, utcProvider(0), monday)

	c.OnTemplateChanged(context.Background(), 10, 1)

	require.Len(t, sink.batches, 1)
	// 90 days from a Monday contain 13 Mondays.
	assert.Len(t, sink.batches[0], 13)
}

func TestOnTemplateChanged_ProviderTimezoneDecidesWeekday(t *testing.T) {
	// 23:30 UTC on Sunday March 1st is already Monday morning in Tokyo, so
	// the first invalidated Monday is March 2nd local.
	sundayLateUTC := time.Date(2026, 3, 1, 23, 30, 0, 0, time.UTC)
	provider := &providerClient.Provider{ID: 10, Timezone: "Asia/Tokyo", BookingHorizonDays: 7}
	c, sink := newTestCoordinator(&fakeScheduleRepo{}, provider, sundayLateUTC)

	c.OnTemplateChanged(context.Background(), 10, 1)

	require.Len(t, sink.batches, 1)
	assert.Equal(t, []string{"2026-03-02"}, sink.batches[0])
}

func TestOnOverrideChanged_SingleDate(t *testing.T) {
	c, sink := newTestCoordinator(&fakeScheduleRepo{}, utcProvider(90), monday)

	c.OnOverrideChanged(context.Background(), 10, "2026-03-05")

	require.Len(t, sink.batches, 1)
	assert.Equal(t, []string{"2026-03-05"}, sink.batches[0])
}

func TestOnOverrideChanged_MalformedDateIgnored(t *testing.T) {
	c, sink := newTestCoordinator(&fakeScheduleRepo{}, utcProvider(90), monday)

	c.OnOverrideChanged(context.Background(), 10, "05.03.2026")

	assert.Empty(t, sink.batches)
}

func TestRegisterSink_FanOut(t *testing.T) {
	c, first := newTestCoordinator(&fakeScheduleRepo{}, utcProvider(90), monday)
	second := &recordingSink{}
	c.RegisterSink(second)

	c.OnOverrideChanged(context.Background(), 10, "2026-03-05")

	assert.Len(t, first.batches, 1)
	assert.Len(t, second.batches, 1)
}

func TestRegenerateForDate_FromTemplate(t *testing.T) {
	repo := &fakeScheduleRepo{
		tmpl: &domain.DailyTemplate{
			ID:         1,
			ProviderID: 10,
			DayOfWeek:  1,
			StartTime:  "09:00",
			EndTime:    "12:00",
			IsEnabled:  true,
		},
	}
	c, _ := newTestCoordinator(repo, utcProvider(90), monday)

	slots, err := c.RegenerateForDate(context.Background(), 10, "2026-03-02")
	require.NoError(t, err)

	require.Len(t, slots, 3)
	assert.Equal(t, types.TimeString("09:00"), slots[0].StartTime)
	assert.Equal(t, types.TimeString("11:00"), slots[2].StartTime)
}

func TestRegenerateForDate_OverrideWinsOverTemplate(t *testing.T) {
	repo := &fakeScheduleRepo{
		override: &domain.DateOverride{
			ProviderID: 10,
			Date:       "2026-03-02",
			StartTime:  ptr.Ptr(types.TimeString("14:00")),
			EndTime:    ptr.Ptr(types.TimeString("16:00")),
		},
		tmpl: &domain.DailyTemplate{
			ID: 1, ProviderID: 10, DayOfWeek: 1,
			StartTime: "09:00", EndTime: "17:00", IsEnabled: true,
		},
	}
	c, _ := newTestCoordinator(repo, utcProvider(90), monday)

	slots, err := c.RegenerateForDate(context.Background(), 10, "2026-03-02")
	require.NoError(t, err)

	require.Len(t, slots, 2)
	assert.Equal(t, types.TimeString("14:00"), slots[0].StartTime)
}

func TestRegenerateForDate_NoConfigurationYieldsNoSlots(t *testing.T) {
	c, _ := newTestCoordinator(&fakeScheduleRepo{}, utcProvider(90), monday)

	slots, err := c.RegenerateForDate(context.Background(), 10, "2026-03-02")
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestRegenerateForDate_InvalidDate(t *testing.T) {
	c, _ := newTestCoordinator(&fakeScheduleRepo{}, utcProvider(90), monday)

	_, err := c.RegenerateForDate(context.Background(), 10, "03/02/2026")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRegenerateForHorizon_KeyedByDate(t *testing.T) {
	repo := &fakeScheduleRepo{
		tmpl: &domain.DailyTemplate{
			ID: 1, ProviderID: 10, DayOfWeek: 1,
			StartTime: "09:00", EndTime: "11:00", IsEnabled: true,
		},
	}
	c, _ := newTestCoordinator(repo, utcProvider(90), monday)

	result, err := c.RegenerateForHorizon(context.Background(), 10, "2026-03-02", 7)
	require.NoError(t, err)

	require.Len(t, result, 7)
	assert.Len(t, result["2026-03-02"], 2, "Monday has the template")
	assert.Empty(t, result["2026-03-03"], "Tuesday has no configuration")

	_, ok := result["2026-03-09"]
	assert.False(t, ok, "next Monday is outside the requested range")
}

func TestRegenerateForHorizon_DaysOutOfRange(t *testing.T) {
	c, _ := newTestCoordinator(&fakeScheduleRepo{}, utcProvider(90), monday)

	_, err := c.RegenerateForHorizon(context.Background(), 10, "2026-03-02", 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = c.RegenerateForHorizon(context.Background(), 10, "2026-03-02", domain.MaxBookingHorizonDays+1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestOnTemplateChanged_ProviderNotFoundIsSwallowed(t *testing.T) {
	c := NewCoordinator(
		&fakeScheduleRepo{},
		&fakeProviderClient{err: providerClient.ErrProviderNotFound},
		fixedClock{now: monday},
		nopLogger{},
	)
	sink := &recordingSink{}
	c.RegisterSink(sink)

	c.OnTemplateChanged(context.Background(), 99, 1)

	assert.Empty(t, sink.batches)
}
