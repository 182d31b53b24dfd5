package get_overrides

import (
	"context"

	"github.com/m-orlv/STB-AvailabilityService/internal/service/schedule/models"
)

type ScheduleService interface {
	ListOverrides(ctx context.Context, providerID int64, from, to string) ([]*models.OverrideResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
