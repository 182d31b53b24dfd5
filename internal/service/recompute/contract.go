package recompute

import (
	"context"
	"time"

	"github.com/m-orlv/STB-AvailabilityService/internal/domain"
	"github.com/m-orlv/STB-AvailabilityService/internal/integrations/providerservice"
)

// InvalidationSink receives the date keys whose availability went stale.
// Caching callers register one to drop or refresh their entries.
type InvalidationSink interface {
	InvalidateDates(ctx context.Context, providerID int64, dates []string)
}

// ScheduleRepository reads the configuration records needed to regenerate.
type ScheduleRepository interface {
	GetOverrideByProviderAndDate(ctx context.Context, providerID int64, date string) (*domain.DateOverride, error)
	GetEnabledTemplateForWeekday(ctx context.Context, providerID int64, dayOfWeek int) (*domain.DailyTemplate, error)
}

// ProviderServiceClient fetches provider profiles.
type ProviderServiceClient interface {
	GetProvider(ctx context.Context, providerID int64) (*providerservice.Provider, error)
}

// TimeProvider supplies the current time, swappable in tests.
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging interface this service needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
