package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m-orlv/STB-AvailabilityService/internal/domain"
	storage "github.com/m-orlv/STB-AvailabilityService/internal/infra/storage/schedule"
	providerClient "github.com/m-orlv/STB-AvailabilityService/internal/integrations/providerservice"
	"github.com/m-orlv/STB-AvailabilityService/internal/service/schedule/models"
)

// Service is the write boundary for schedule configuration. All template and
// override mutations pass through it, so the one-enabled-template-per-weekday
// rule is enforced here and every acknowledged write reaches the recompute
// coordinator.
type Service struct {
	scheduleRepo   ScheduleRepository
	providerClient ProviderServiceClient
	coordinator    RecomputeCoordinator
	txManager      TransactionManager
	logger         Logger
}

// NewService builds the schedule configuration service.
func NewService(
	scheduleRepo ScheduleRepository,
	providerClient ProviderServiceClient,
	coordinator RecomputeCoordinator,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo:   scheduleRepo,
		providerClient: providerClient,
		coordinator:    coordinator,
		txManager:      txManager,
		logger:         logger,
	}
}

// CreateTemplate creates a recurring weekly template. Creating a second
// enabled template for the same (provider, weekday) is rejected with
// ErrDuplicateTemplate; the check and the insert share a serializable
// transaction so concurrent creates cannot both pass.
func (s *Service) CreateTemplate(ctx context.Context, req *models.CreateTemplateRequest) (*models.TemplateResponse, error) {
	s.logger.Info("CreateTemplate: provider=%d, weekday=%d, window=%s-%s, enabled=%t",
		req.ProviderID, req.DayOfWeek, req.StartTime, req.EndTime, req.IsEnabled)

	if err := validateTemplateFields(req.ProviderID, req.DayOfWeek, req.StartTime, req.EndTime, req.Breaks); err != nil {
		s.logger.Warn("CreateTemplate: validation failed: %v", err)
		return nil, err
	}

	if err := s.checkProviderExists(ctx, req.ProviderID); err != nil {
		return nil, err
	}

	tmpl := &domain.DailyTemplate{
		ProviderID: req.ProviderID,
		DayOfWeek:  req.DayOfWeek,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		IsEnabled:  req.IsEnabled,
		Breaks:     breaksToDomain(req.Breaks),
	}

	var created *domain.DailyTemplate
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if req.IsEnabled {
			exists, err := s.scheduleRepo.HasEnabledTemplateForWeekday(txCtx, req.ProviderID, req.DayOfWeek, nil)
			if err != nil {
				return fmt.Errorf("%w: CreateTemplate - check duplicate: %v", ErrInternal, err)
			}
			if exists {
				return ErrDuplicateTemplate
			}
		}

		var err error
		created, err = s.scheduleRepo.CreateTemplate(txCtx, tmpl)
		if err != nil {
			return fmt.Errorf("%w: CreateTemplate - insert: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateTemplate) {
			s.logger.Warn("CreateTemplate: provider=%d already has an enabled template for weekday=%d",
				req.ProviderID, req.DayOfWeek)
			return nil, ErrDuplicateTemplate
		}
		s.logger.Error("CreateTemplate: transaction failed: %v", err)
		return nil, err
	}

	if created.IsEnabled {
		s.coordinator.OnTemplateChanged(ctx, created.ProviderID, created.DayOfWeek)
	}

	s.logger.Info("CreateTemplate: created template id=%d for provider=%d", created.ID, created.ProviderID)
	return models.TemplateFromDomain(created), nil
}

// UpdateTemplate replaces the template's window, enabled flag and break set.
// Enabling it on a weekday that already has another enabled template is
// rejected with ErrDuplicateTemplate.
func (s *Service) UpdateTemplate(ctx context.Context, templateID int64, req *models.UpdateTemplateRequest) (*models.TemplateResponse, error) {
	s.logger.Info("UpdateTemplate: id=%d, provider=%d, weekday=%d, window=%s-%s, enabled=%t",
		templateID, req.ProviderID, req.DayOfWeek, req.StartTime, req.EndTime, req.IsEnabled)

	if templateID <= 0 {
		return nil, fmt.Errorf("%w: templateID must be positive", ErrInvalidInput)
	}
	if err := validateTemplateFields(req.ProviderID, req.DayOfWeek, req.StartTime, req.EndTime, req.Breaks); err != nil {
		s.logger.Warn("UpdateTemplate: validation failed: %v", err)
		return nil, err
	}

	var existing, updated *domain.DailyTemplate
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		existing, err = s.scheduleRepo.GetTemplateByID(txCtx, templateID)
		if err != nil {
			if errors.Is(err, storage.ErrTemplateNotFound) {
				return ErrTemplateNotFound
			}
			return fmt.Errorf("%w: UpdateTemplate - get template: %v", ErrInternal, err)
		}
		if existing.ProviderID != req.ProviderID {
			return ErrAccessDenied
		}

		if req.IsEnabled {
			exists, err := s.scheduleRepo.HasEnabledTemplateForWeekday(txCtx, req.ProviderID, req.DayOfWeek, &templateID)
			if err != nil {
				return fmt.Errorf("%w: UpdateTemplate - check duplicate: %v", ErrInternal, err)
			}
			if exists {
				return ErrDuplicateTemplate
			}
		}

		updated, err = s.scheduleRepo.UpdateTemplate(txCtx, templateID, &domain.DailyTemplate{
			DayOfWeek: req.DayOfWeek,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			IsEnabled: req.IsEnabled,
		})
		if err != nil {
			return fmt.Errorf("%w: UpdateTemplate - update: %v", ErrInternal, err)
		}

		breaks, err := s.scheduleRepo.ReplaceTemplateBreaks(txCtx, templateID, breaksToDomain(req.Breaks))
		if err != nil {
			return fmt.Errorf("%w: UpdateTemplate - replace breaks: %v", ErrInternal, err)
		}
		updated.Breaks = breaks
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrTemplateNotFound):
			s.logger.Warn("UpdateTemplate: template id=%d not found", templateID)
		case errors.Is(err, ErrAccessDenied):
			s.logger.Warn("UpdateTemplate: template id=%d does not belong to provider=%d", templateID, req.ProviderID)
		case errors.Is(err, ErrDuplicateTemplate):
			s.logger.Warn("UpdateTemplate: provider=%d already has an enabled template for weekday=%d",
				req.ProviderID, req.DayOfWeek)
		default:
			s.logger.Error("UpdateTemplate: transaction failed: %v", err)
		}
		return nil, err
	}

	// Both the weekday the template used to serve and the one it serves now
	// need recomputation.
	if existing.IsEnabled {
		s.coordinator.OnTemplateChanged(ctx, existing.ProviderID, existing.DayOfWeek)
	}
	if updated.IsEnabled && (!existing.IsEnabled || updated.DayOfWeek != existing.DayOfWeek) {
		s.coordinator.OnTemplateChanged(ctx, updated.ProviderID, updated.DayOfWeek)
	}

	s.logger.Info("UpdateTemplate: updated template id=%d", templateID)
	return models.TemplateFromDomain(updated), nil
}

// DeleteTemplate removes a template and its breaks.
func (s *Service) DeleteTemplate(ctx context.Context, providerID, templateID int64) error {
	s.logger.Info("DeleteTemplate: id=%d, provider=%d", templateID, providerID)

	if providerID <= 0 || templateID <= 0 {
		return fmt.Errorf("%w: providerID and templateID must be positive", ErrInvalidInput)
	}

	var existing *domain.DailyTemplate
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		existing, err = s.scheduleRepo.GetTemplateByID(txCtx, templateID)
		if err != nil {
			if errors.Is(err, storage.ErrTemplateNotFound) {
				return ErrTemplateNotFound
			}
			return fmt.Errorf("%w: DeleteTemplate - get template: %v", ErrInternal, err)
		}
		if existing.ProviderID != providerID {
			return ErrAccessDenied
		}
		if err := s.scheduleRepo.DeleteTemplate(txCtx, templateID); err != nil {
			return fmt.Errorf("%w: DeleteTemplate - delete: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrTemplateNotFound):
			s.logger.Warn("DeleteTemplate: template id=%d not found", templateID)
		case errors.Is(err, ErrAccessDenied):
			s.logger.Warn("DeleteTemplate: template id=%d does not belong to provider=%d", templateID, providerID)
		default:
			s.logger.Error("DeleteTemplate: transaction failed: %v", err)
		}
		return err
	}

	if existing.IsEnabled {
		s.coordinator.OnTemplateChanged(ctx, existing.ProviderID, existing.DayOfWeek)
	}

	s.logger.Info("DeleteTemplate: deleted template id=%d", templateID)
	return nil
}

// ListTemplates returns all templates of the provider, breaks included.
func (s *Service) ListTemplates(ctx context.Context, providerID int64) ([]*models.TemplateResponse, error) {
	if providerID <= 0 {
		return nil, fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}

	templates, err := s.scheduleRepo.GetTemplatesByProvider(ctx, providerID)
	if err != nil {
		s.logger.Error("ListTemplates: failed to list templates for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: ListTemplates: %v", ErrInternal, err)
	}

	result := make([]*models.TemplateResponse, 0, len(templates))
	for _, tmpl := range templates {
		result = append(result, models.TemplateFromDomain(tmpl))
	}
	return result, nil
}

// UpsertOverride creates or fully replaces the override for one date.
func (s *Service) UpsertOverride(ctx context.Context, req *models.UpsertOverrideRequest) (*models.OverrideResponse, error) {
	s.logger.Info("UpsertOverride: provider=%d, date=%s, closed=%t",
		req.ProviderID, req.Date, req.StartTime == nil || req.EndTime == nil)

	if err := validateOverrideRequest(req); err != nil {
		s.logger.Warn("UpsertOverride: validation failed: %v", err)
		return nil, err
	}

	if err := s.checkProviderExists(ctx, req.ProviderID); err != nil {
		return nil, err
	}

	override := &domain.DateOverride{
		ProviderID: req.ProviderID,
		Date:       req.Date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Reason:     req.Reason,
	}
	for _, br := range req.Breaks {
		override.Breaks = append(override.Breaks, domain.OverrideBreak{
			StartTime: br.StartTime,
			EndTime:   br.EndTime,
			Label:     br.Label,
		})
	}

	var saved *domain.DateOverride
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		saved, err = s.scheduleRepo.UpsertOverride(txCtx, override)
		if err != nil {
			return fmt.Errorf("%w: UpsertOverride - upsert: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("UpsertOverride: transaction failed: %v", err)
		return nil, err
	}

	s.coordinator.OnOverrideChanged(ctx, saved.ProviderID, saved.Date)

	s.logger.Info("UpsertOverride: saved override id=%d for provider=%d date=%s",
		saved.ID, saved.ProviderID, saved.Date)
	return models.OverrideFromDomain(saved), nil
}

// DeleteOverride removes the override for one date; the date falls back to
// its weekday template.
func (s *Service) DeleteOverride(ctx context.Context, providerID int64, date string) error {
	s.logger.Info("DeleteOverride: provider=%d, date=%s", providerID, date)

	if providerID <= 0 {
		return fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}
	if _, err := time.Parse(domain.DateFormat, date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD: %v", ErrInvalidInput, err)
	}

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		return s.scheduleRepo.DeleteOverride(txCtx, providerID, date)
	})
	if err != nil {
		if errors.Is(err, storage.ErrOverrideNotFound) {
			s.logger.Warn("DeleteOverride: override for provider=%d date=%s not found", providerID, date)
			return ErrOverrideNotFound
		}
		s.logger.Error("DeleteOverride: transaction failed: %v", err)
		return fmt.Errorf("%w: DeleteOverride: %v", ErrInternal, err)
	}

	s.coordinator.OnOverrideChanged(ctx, providerID, date)

	s.logger.Info("DeleteOverride: deleted override for provider=%d date=%s", providerID, date)
	return nil
}

// ListOverrides returns the provider's overrides with dates in [from, to].
func (s *Service) ListOverrides(ctx context.Context, providerID int64, from, to string) ([]*models.OverrideResponse, error) {
	if providerID <= 0 {
		return nil, fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}
	fromDate, err := time.Parse(domain.DateFormat, from)
	if err != nil {
		return nil, fmt.Errorf("%w: from must be YYYY-MM-DD: %v", ErrInvalidInput, err)
	}
	toDate, err := time.Parse(domain.DateFormat, to)
	if err != nil {
		return nil, fmt.Errorf("%w: to must be YYYY-MM-DD: %v", ErrInvalidInput, err)
	}
	if toDate.Before(fromDate) {
		return nil, fmt.Errorf("%w: to precedes from", ErrInvalidInput)
	}

	overrides, err := s.scheduleRepo.GetOverridesByProviderAndRange(ctx, providerID, from, to)
	if err != nil {
		s.logger.Error("ListOverrides: failed to list overrides for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: ListOverrides: %v", ErrInternal, err)
	}

	result := make([]*models.OverrideResponse, 0, len(overrides))
	for _, override := range overrides {
		result = append(result, models.OverrideFromDomain(override))
	}
	return result, nil
}

func (s *Service) checkProviderExists(ctx context.Context, providerID int64) error {
	_, err := s.providerClient.GetProvider(ctx, providerID)
	if err != nil {
		if errors.Is(err, providerClient.ErrProviderNotFound) {
			s.logger.Warn("schedule service: provider id=%d not found", providerID)
			return ErrProviderNotFound
		}
		s.logger.Error("schedule service: failed to get provider id=%d: %v", providerID, err)
		return fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}
	return nil
}

func breaksToDomain(breaks []models.BreakRequest) []domain.TemplateBreak {
	result := make([]domain.TemplateBreak, 0, len(breaks))
	for _, br := range breaks {
		result = append(result, domain.TemplateBreak{
			StartTime: br.StartTime,
			EndTime:   br.EndTime,
			Label:     br.Label,
		})
	}
	return result
}
