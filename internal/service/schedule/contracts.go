package schedule

import (
	"context"

	"github.com/m-orlv/STB-AvailabilityService/internal/domain"
	"github.com/m-orlv/STB-AvailabilityService/internal/integrations/providerservice"
)

// ScheduleRepository persists templates, breaks and overrides.
type ScheduleRepository interface {
	CreateTemplate(ctx context.Context, tmpl *domain.DailyTemplate) (*domain.DailyTemplate, error)
	GetTemplateByID(ctx context.Context, id int64) (*domain.DailyTemplate, error)
	GetTemplatesByProvider(ctx context.Context, providerID int64) ([]*domain.DailyTemplate, error)
	HasEnabledTemplateForWeekday(ctx context.Context, providerID int64, dayOfWeek int, excludeID *int64) (bool, error)
	UpdateTemplate(ctx context.Context, id int64, tmpl *domain.DailyTemplate) (*domain.DailyTemplate, error)
	ReplaceTemplateBreaks(ctx context.Context, templateID int64, breaks []domain.TemplateBreak) ([]domain.TemplateBreak, error)
	DeleteTemplate(ctx context.Context, id int64) error

	UpsertOverride(ctx context.Context, override *domain.DateOverride) (*domain.DateOverride, error)
	GetOverridesByProviderAndRange(ctx context.Context, providerID int64, from, to string) ([]*domain.DateOverride, error)
	DeleteOverride(ctx context.Context, providerID int64, date string) error
}

// ProviderServiceClient fetches provider profiles.
type ProviderServiceClient interface {
	GetProvider(ctx context.Context, providerID int64) (*providerservice.Provider, error)
}

// RecomputeCoordinator receives configuration-change notifications so that
// cached availability for the affected dates is never served stale.
type RecomputeCoordinator interface {
	OnTemplateChanged(ctx context.Context, providerID int64, dayOfWeek int)
	OnOverrideChanged(ctx context.Context, providerID int64, date string)
}

// TransactionManager runs functions inside serializable transactions.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger is the logging interface this service needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
