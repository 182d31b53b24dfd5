package get_availability

import (
	"context"
	"time"

	"github.com/m-orlv/STB-AvailabilityService/internal/domain"
	"github.com/m-orlv/STB-AvailabilityService/internal/integrations/providerservice"
)

// ScheduleRepository reads the configuration records for one provider/date.
type ScheduleRepository interface {
	GetOverrideByProviderAndDate(ctx context.Context, providerID int64, date string) (*domain.DateOverride, error)
	GetEnabledTemplateForWeekday(ctx context.Context, providerID int64, dayOfWeek int) (*domain.DailyTemplate, error)
}

// BookingRepository reads committed time from the booking collaborator.
type BookingRepository interface {
	GetOccupyingByProviderAndRange(ctx context.Context, providerID int64, from, to time.Time) ([]*domain.Booking, error)
}

// ProviderServiceClient fetches provider profiles (timezone, horizon).
type ProviderServiceClient interface {
	GetProvider(ctx context.Context, providerID int64) (*providerservice.Provider, error)
}

// Logger is the logging interface this usecase needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
