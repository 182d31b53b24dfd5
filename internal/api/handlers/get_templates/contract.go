package get_templates

import (
	"context"

	"github.com/m-orlv/STB-AvailabilityService/internal/service/schedule/models"
)

type ScheduleService interface {
	ListTemplates(ctx context.Context, providerID int64) ([]*models.TemplateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
