package check_window

import (
	"context"

	checkWindow "github.com/m-orlv/STB-AvailabilityService/internal/usecase/check_window"
)

type CheckWindowUseCase interface {
	Execute(ctx context.Context, req *checkWindow.Request) (*checkWindow.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
