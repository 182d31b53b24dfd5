package get_effective_config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m-orlv/STB-AvailabilityService/internal/domain"
	scheduleRepo "github.com/m-orlv/STB-AvailabilityService/internal/infra/storage/schedule"
	providerClient "github.com/m-orlv/STB-AvailabilityService/internal/integrations/providerservice"
	"github.com/m-orlv/STB-AvailabilityService/pkg/types"
)

// UseCase resolves the effective working-window-plus-breaks for one
// provider/date pair. The configuration UI also uses it to preview a pending
// template or override edit: a draft in the request substitutes the stored
// record before resolution, without touching the store.
type UseCase struct {
	scheduleRepo   ScheduleRepository
	providerClient ProviderServiceClient
	logger         Logger
}

// NewUseCase builds the effective-config usecase.
func NewUseCase(
	scheduleRepo ScheduleRepository,
	providerClient ProviderServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo:   scheduleRepo,
		providerClient: providerClient,
		logger:         logger,
	}
}

// Execute resolves the configuration, applying a draft when one is present.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetEffectiveConfig: provider=%d, date=%s, draftOverride=%t, draftTemplate=%t",
		req.ProviderID, req.Date, req.DraftOverride != nil, req.DraftTemplate != nil)

	// 1. Validate the request shape.
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetEffectiveConfig: validation failed: %v", err)
		return nil, err
	}

	// 2. Fetch the provider profile for its timezone.
	provider, err := uc.providerClient.GetProvider(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, providerClient.ErrProviderNotFound) {
			uc.logger.Warn("GetEffectiveConfig: provider id=%d not found", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("GetEffectiveConfig: failed to get provider id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}

	loc, err := time.LoadLocation(provider.Timezone)
	if err != nil {
		uc.logger.Error("GetEffectiveConfig: provider id=%d has invalid timezone %q: %v",
			req.ProviderID, provider.Timezone, err)
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, provider.Timezone)
	}

	date, err := types.ParseDateInLocation(req.Date, loc)
	if err != nil {
		uc.logger.Warn("GetEffectiveConfig: invalid date %q: %v", req.Date, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	// 3. Assemble the override: draft wins over the stored record.
	override, err := uc.effectiveOverride(ctx, req, date, loc)
	if err != nil {
		return nil, err
	}

	// 4. Assemble the template the same way, only when no override applies.
	var tmpl *domain.DailyTemplate
	if override == nil {
		tmpl, err = uc.effectiveTemplate(ctx, req, date, loc)
		if err != nil {
			return nil, err
		}
	}

	// 5. Resolve.
	cfg, err := domain.ResolveDay(date, loc, override, tmpl)
	if err != nil {
		uc.logger.Error("GetEffectiveConfig: resolution failed for provider=%d date=%s: %v",
			req.ProviderID, req.Date, err)
		return nil, err
	}

	uc.logger.Info("GetEffectiveConfig: provider=%d date=%s closed=%t source=%s",
		req.ProviderID, cfg.Date, cfg.Closed, cfg.Source)

	return &Response{
		ProviderID: req.ProviderID,
		Date:       cfg.Date,
		Closed:     cfg.Closed,
		StartTime:  cfg.StartTime,
		EndTime:    cfg.EndTime,
		Breaks:     cfg.Breaks,
		Reason:     cfg.Reason,
		Source:     cfg.Source,
	}, nil
}

func (uc *UseCase) effectiveOverride(ctx context.Context, req *Request, date time.Time, loc *time.Location) (*domain.DateOverride, error) {
	if req.DraftOverride != nil {
		return draftOverrideToDomain(req, date, loc), nil
	}

	// A draft template edit previews against the template layer only.
	if req.DraftTemplate != nil {
		return nil, nil
	}

	dateKey := types.FormatDate(date, loc)
	override, err := uc.scheduleRepo.GetOverrideByProviderAndDate(ctx, req.ProviderID, dateKey)
	if err != nil && !errors.Is(err, scheduleRepo.ErrOverrideNotFound) {
		uc.logger.Error("GetEffectiveConfig: failed to get override: %v", err)
		return nil, fmt.Errorf("%w: failed to get override: %v", ErrInternal, err)
	}
	return override, nil
}

func (uc *UseCase) effectiveTemplate(ctx context.Context, req *Request, date time.Time, loc *time.Location) (*domain.DailyTemplate, error) {
	if req.DraftTemplate != nil {
		return draftTemplateToDomain(req, date, loc), nil
	}

	weekday := int(date.In(loc).Weekday())
	tmpl, err := uc.scheduleRepo.GetEnabledTemplateForWeekday(ctx, req.ProviderID, weekday)
	if err != nil && !errors.Is(err, scheduleRepo.ErrTemplateNotFound) {
		uc.logger.Error("GetEffectiveConfig: failed to get template: %v", err)
		return nil, fmt.Errorf("%w: failed to get template: %v", ErrInternal, err)
	}
	return tmpl, nil
}

func draftOverrideToDomain(req *Request, date time.Time, loc *time.Location) *domain.DateOverride {
	draft := req.DraftOverride
	override := &domain.DateOverride{
		ProviderID: req.ProviderID,
		Date:       types.FormatDate(date, loc),
		StartTime:  draft.StartTime,
		EndTime:    draft.EndTime,
		Reason:     draft.Reason,
	}
	for _, br := range draft.Breaks {
		override.Breaks = append(override.Breaks, domain.OverrideBreak{
			StartTime: br.StartTime,
			EndTime:   br.EndTime,
			Label:     br.Label,
		})
	}
	return override
}

func draftTemplateToDomain(req *Request, date time.Time, loc *time.Location) *domain.DailyTemplate {
	draft := req.DraftTemplate
	tmpl := &domain.DailyTemplate{
		ProviderID: req.ProviderID,
		DayOfWeek:  int(date.In(loc).Weekday()),
		StartTime:  draft.StartTime,
		EndTime:    draft.EndTime,
		IsEnabled:  draft.IsEnabled,
	}
	for _, br := range draft.Breaks {
		tmpl.Breaks = append(tmpl.Breaks, domain.TemplateBreak{
			StartTime: br.StartTime,
			EndTime:   br.EndTime,
			Label:     br.Label,
		})
	}
	return tmpl
}

func validateRequest(req *Request) error {
	if req.ProviderID <= 0 {
		return fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}
	if req.Date == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.DraftOverride != nil && req.DraftTemplate != nil {
		return fmt.Errorf("%w: at most one draft may be supplied", ErrInvalidInput)
	}
	return nil
}
