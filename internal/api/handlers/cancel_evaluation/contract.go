package cancel_evaluation

import "context"

type EvaluationService interface {
	Cancel(ctx context.Context, memberID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
