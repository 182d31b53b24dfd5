package preview_effective_config

import (
	"context"

	getEffectiveConfig "github.com/m-orlv/STB-AvailabilityService/internal/usecase/get_effective_config"
)

type GetEffectiveConfigUseCase interface {
	Execute(ctx context.Context, req *getEffectiveConfig.Request) (*getEffectiveConfig.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
