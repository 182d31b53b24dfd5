package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m-orlv/STB-AvailabilityService/internal/domain"
	scheduleRepo "github.com/m-orlv/STB-AvailabilityService/internal/infra/storage/schedule"
	providerClient "github.com/m-orlv/STB-AvailabilityService/internal/integrations/providerservice"
)

// UseCase computes the bookable slots of one provider/date pair and marks
// each slot available or occupied against the booking collaborator.
//
// Nothing here is cached or mutated: every call re-reads configuration and
// re-derives slots, so the result always reflects the latest templates,
// breaks and overrides. Bookings are the single source of truth for
// committed time; occupancy is never inferred from configuration alone.
type UseCase struct {
	scheduleRepo   ScheduleRepository
	bookingRepo    BookingRepository
	providerClient ProviderServiceClient
	logger         Logger
}

// NewUseCase builds the availability usecase.
func NewUseCase(
	scheduleRepo ScheduleRepository,
	bookingRepo BookingRepository,
	providerClient ProviderServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo:   scheduleRepo,
		bookingRepo:    bookingRepo,
		providerClient: providerClient,
		logger:         logger,
	}
}

// Execute runs the pipeline: resolve effective config, generate candidate
// slots, overlay occupancy.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: provider=%d, date=%s, duration=%d",
		req.ProviderID, req.Date, req.DurationMinutes)

	// 1. Validate the request shape.
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = domain.DefaultSlotDurationMinutes
	}

	// 2. Fetch the provider profile; its timezone anchors all date math.
	provider, err := uc.providerClient.GetProvider(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, providerClient.ErrProviderNotFound) {
			uc.logger.Warn("GetAvailability: provider id=%d not found", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("GetAvailability: failed to get provider id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}

	loc, err := time.LoadLocation(provider.Timezone)
	if err != nil {
		uc.logger.Error("GetAvailability: provider id=%d has invalid timezone %q: %v",
			req.ProviderID, provider.Timezone, err)
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, provider.Timezone)
	}

	date, err := parseDate(req.Date, loc)
	if err != nil {
		uc.logger.Warn("GetAvailability: invalid date %q: %v", req.Date, err)
		return nil, err
	}

	// 3. Enforce the published booking horizon.
	if err := validateHorizon(date, time.Now().In(loc), horizonDays(provider)); err != nil {
		uc.logger.Warn("GetAvailability: date validation failed: %v", err)
		return nil, err
	}

	// 4. Resolve the effective configuration for the date.
	cfg, err := uc.resolveDay(ctx, req.ProviderID, date, loc)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to resolve config for provider=%d date=%s: %v",
			req.ProviderID, req.Date, err)
		return nil, err
	}

	if cfg.Closed {
		uc.logger.Info("GetAvailability: provider=%d is closed on %s (source=%s)",
			req.ProviderID, cfg.Date, cfg.Source)
		return &Response{
			ProviderID: req.ProviderID,
			Date:       cfg.Date,
			Closed:     true,
			Reason:     cfg.Reason,
			Source:     cfg.Source,
			Slots:      []Slot{},
		}, nil
	}

	// 5. Generate the candidate slots.
	candidates, err := domain.GenerateSlots(cfg, duration)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSlotDuration) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		uc.logger.Error("GetAvailability: failed to generate slots: %v", err)
		return nil, err
	}

	// 6. Fetch occupying bookings overlapping the date.
	dayStart := date
	dayEnd := date.AddDate(0, 0, 1)
	bookings, err := uc.bookingRepo.GetOccupyingByProviderAndRange(ctx, req.ProviderID, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("GetAvailability: booking store unreachable for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: %v", ErrBookingStoreUnavailable, err)
	}

	// 7. Mark occupancy per slot.
	slots, err := overlaySlots(candidates, bookings, duration, date, loc, cfg.Reason)
	if err != nil {
		uc.logger.Error("GetAvailability: overlay failed: %v", err)
		return nil, fmt.Errorf("%w: overlay failed: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailability: provider=%d date=%s slots=%d bookings=%d",
		req.ProviderID, cfg.Date, len(slots), len(bookings))

	return &Response{
		ProviderID:  req.ProviderID,
		Date:        cfg.Date,
		Closed:      false,
		Reason:      cfg.Reason,
		Source:      cfg.Source,
		WindowStart: cfg.StartTime,
		WindowEnd:   cfg.EndTime,
		Slots:       slots,
	}, nil
}

// resolveDay fetches the override and, absent one, the weekday template, and
// resolves them into the effective configuration for the date.
func (uc *UseCase) resolveDay(ctx context.Context, providerID int64, date time.Time, loc *time.Location) (*domain.EffectiveDayConfig, error) {
	dateKey := date.In(loc).Format(domain.DateFormat)

	override, err := uc.scheduleRepo.GetOverrideByProviderAndDate(ctx, providerID, dateKey)
	if err != nil && !errors.Is(err, scheduleRepo.ErrOverrideNotFound) {
		return nil, fmt.Errorf("%w: failed to get override: %v", ErrInternal, err)
	}

	var tmpl *domain.DailyTemplate
	if override == nil {
		weekday := int(date.In(loc).Weekday())
		tmpl, err = uc.scheduleRepo.GetEnabledTemplateForWeekday(ctx, providerID, weekday)
		if err != nil && !errors.Is(err, scheduleRepo.ErrTemplateNotFound) {
			return nil, fmt.Errorf("%w: failed to get template: %v", ErrInternal, err)
		}
	}

	return domain.ResolveDay(date, loc, override, tmpl)
}

func horizonDays(provider *providerClient.Provider) int {
	if provider.BookingHorizonDays > 0 {
		return provider.BookingHorizonDays
	}
	return domain.DefaultBookingHorizonDays
}
