package delete_override

import "context"

type ScheduleService interface {
	DeleteOverride(ctx context.Context, providerID int64, date string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
