package swap_templates

import (
	"context"

	swapTemplates "github.com/m04kA/GMS-ScheduleService/internal/usecase/swap_templates"
)

type SwapTemplatesUseCase interface {
	Execute(ctx context.Context, req *swapTemplates.Request) (*swapTemplates.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
