package recompute

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/m-orlv/STB-AvailabilityService/internal/domain"
	storage "github.com/m-orlv/STB-AvailabilityService/internal/infra/storage/schedule"
	providerClient "github.com/m-orlv/STB-AvailabilityService/internal/integrations/providerservice"
	"github.com/m-orlv/STB-AvailabilityService/pkg/types"
)

// Coordinator turns configuration changes into the set of dates whose
// availability went stale. Slots are never persisted, so this is a freshness
// contract: registered sinks hear about every affected date and re-query on
// demand, nothing is recomputed eagerly on the write path.
type Coordinator struct {
	scheduleRepo   ScheduleRepository
	providerClient ProviderServiceClient
	timeProvider   TimeProvider
	logger         Logger

	mu    sync.RWMutex
	sinks []InvalidationSink
}

// NewCoordinator builds the recomputation coordinator.
func NewCoordinator(
	scheduleRepo ScheduleRepository,
	providerClient ProviderServiceClient,
	timeProvider TimeProvider,
	logger Logger,
) *Coordinator {
	return &Coordinator{
		scheduleRepo:   scheduleRepo,
		providerClient: providerClient,
		timeProvider:   timeProvider,
		logger:         logger,
	}
}

// RegisterSink adds a sink to the fan-out set.
func (c *Coordinator) RegisterSink(sink InvalidationSink) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sinks = append(c.sinks, sink)
}

// OnTemplateChanged invalidates every date out to the provider's booking
// horizon whose weekday, in the provider's timezone, matches the changed
// template. Changes never reach past dates.
func (c *Coordinator) OnTemplateChanged(ctx context.Context, providerID int64, dayOfWeek int) {
	if dayOfWeek < domain.MinDayOfWeek || dayOfWeek > domain.MaxDayOfWeek {
		c.logger.Warn("OnTemplateChanged: provider=%d, weekday=%d out of range, ignoring", providerID, dayOfWeek)
		return
	}

	provider, loc, err := c.providerContext(ctx, providerID)
	if err != nil {
		c.logger.Error("OnTemplateChanged: provider=%d: %v", providerID, err)
		return
	}

	dates := c.weekdayDates(loc, dayOfWeek, horizonDays(provider))
	if len(dates) == 0 {
		return
	}

	c.logger.Info("OnTemplateChanged: provider=%d, weekday=%d, invalidating %d dates",
		providerID, dayOfWeek, len(dates))
	c.notifySinks(ctx, providerID, dates)
}

// OnOverrideChanged invalidates the single date the override governs.
func (c *Coordinator) OnOverrideChanged(ctx context.Context, providerID int64, date string) {
	if _, err := time.Parse(domain.DateFormat, date); err != nil {
		c.logger.Warn("OnOverrideChanged: provider=%d, malformed date %q, ignoring", providerID, date)
		return
	}

	c.logger.Info("OnOverrideChanged: provider=%d, invalidating date=%s", providerID, date)
	c.notifySinks(ctx, providerID, []string{date})
}

// RegenerateForDate re-runs resolution and slot generation for one date and
// returns the fresh candidate slots. Sinks use it to rebuild an entry they
// chose to warm instead of drop.
func (c *Coordinator) RegenerateForDate(ctx context.Context, providerID int64, date string) ([]domain.CandidateSlot, error) {
	_, loc, err := c.providerContext(ctx, providerID)
	if err != nil {
		return nil, err
	}

	day, err := types.ParseDateInLocation(date, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD: %v", ErrInvalidInput, err)
	}

	return c.regenerateDay(ctx, providerID, day, loc)
}

// RegenerateForHorizon re-runs resolution and slot generation for `days`
// consecutive dates starting at `from`, keyed by date.
func (c *Coordinator) RegenerateForHorizon(ctx context.Context, providerID int64, from string, days int) (map[string][]domain.CandidateSlot, error) {
	if days <= 0 || days > domain.MaxBookingHorizonDays {
		return nil, fmt.Errorf("%w: days must be between 1 and %d", ErrInvalidInput, domain.MaxBookingHorizonDays)
	}

	_, loc, err := c.providerContext(ctx, providerID)
	if err != nil {
		return nil, err
	}

	start, err := types.ParseDateInLocation(from, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: from must be YYYY-MM-DD: %v", ErrInvalidInput, err)
	}

	result := make(map[string][]domain.CandidateSlot, days)
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		slots, err := c.regenerateDay(ctx, providerID, day, loc)
		if err != nil {
			return nil, err
		}
		result[types.FormatDate(day, loc)] = slots
	}
	return result, nil
}

func (c *Coordinator) regenerateDay(ctx context.Context, providerID int64, day time.Time, loc *time.Location) ([]domain.CandidateSlot, error) {
	dateKey := types.FormatDate(day, loc)

	override, err := c.scheduleRepo.GetOverrideByProviderAndDate(ctx, providerID, dateKey)
	if err != nil && !errors.Is(err, storage.ErrOverrideNotFound) {
		return nil, fmt.Errorf("%w: regenerate - get override: %v", ErrInternal, err)
	}

	var tmpl *domain.DailyTemplate
	if override == nil {
		weekday := int(day.In(loc).Weekday())
		tmpl, err = c.scheduleRepo.GetEnabledTemplateForWeekday(ctx, providerID, weekday)
		if err != nil && !errors.Is(err, storage.ErrTemplateNotFound) {
			return nil, fmt.Errorf("%w: regenerate - get template: %v", ErrInternal, err)
		}
	}

	cfg, err := domain.ResolveDay(day, loc, override, tmpl)
	if err != nil {
		return nil, err
	}

	return domain.GenerateSlots(cfg, domain.DefaultSlotDurationMinutes)
}

// weekdayDates lists the dates from today (inclusive, provider-local) out to
// the horizon whose weekday matches.
func (c *Coordinator) weekdayDates(loc *time.Location, dayOfWeek, horizonDays int) []string {
	today := c.timeProvider.Now().In(loc)

	dates := make([]string, 0, horizonDays/7+1)
	for i := 0; i < horizonDays; i++ {
		day := today.AddDate(0, 0, i)
		if int(day.Weekday()) == dayOfWeek {
			dates = append(dates, types.FormatDate(day, loc))
		}
	}
	return dates
}

func (c *Coordinator) notifySinks(ctx context.Context, providerID int64, dates []string) {
	c.mu.RLock()
	sinks := make([]InvalidationSink, len(c.sinks))
	copy(sinks, c.sinks)
	c.mu.RUnlock()

	for _, sink := range sinks {
		sink.InvalidateDates(ctx, providerID, dates)
	}
}

func (c *Coordinator) providerContext(ctx context.Context, providerID int64) (*providerClient.Provider, *time.Location, error) {
	provider, err := c.providerClient.GetProvider(ctx, providerID)
	if err != nil {
		if errors.Is(err, providerClient.ErrProviderNotFound) {
			return nil, nil, ErrProviderNotFound
		}
		return nil, nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}

	loc, err := time.LoadLocation(provider.Timezone)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: provider timezone %q: %v", ErrInternal, provider.Timezone, err)
	}
	return provider, loc, nil
}

func horizonDays(provider *providerClient.Provider) int {
	if provider.BookingHorizonDays >= domain.MinBookingHorizonDays &&
		provider.BookingHorizonDays <= domain.MaxBookingHorizonDays {
		return provider.BookingHorizonDays
	}
	return domain.DefaultBookingHorizonDays
}
