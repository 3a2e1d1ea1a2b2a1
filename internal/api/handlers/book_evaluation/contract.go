package book_evaluation

import (
	"context"

	bookEvaluation "github.com/m04kA/GMS-ScheduleService/internal/usecase/book_evaluation"
)

type BookEvaluationUseCase interface {
	Execute(ctx context.Context, req *bookEvaluation.Request) (*bookEvaluation.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
