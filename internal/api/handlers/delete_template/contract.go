package delete_template

import "context"

type ScheduleService interface {
	DeleteTemplate(ctx context.Context, providerID, templateID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
