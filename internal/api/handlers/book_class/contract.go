package book_class

import (
	"context"

	bookClass "github.com/m04kA/GMS-ScheduleService/internal/usecase/book_class"
)

type BookClassUseCase interface {
	Execute(ctx context.Context, req *bookClass.Request) (*bookClass.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
