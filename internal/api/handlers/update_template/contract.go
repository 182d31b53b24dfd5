package update_template

import (
	"context"

	"github.com/m-orlv/STB-AvailabilityService/internal/service/schedule/models"
)

type ScheduleService interface {
	UpdateTemplate(ctx context.Context, templateID int64, req *models.UpdateTemplateRequest) (*models.TemplateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
