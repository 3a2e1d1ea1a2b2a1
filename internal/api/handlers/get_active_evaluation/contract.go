package get_active_evaluation

import (
	"context"

	"github.com/m04kA/GMS-ScheduleService/internal/service/evaluations/models"
)

type EvaluationService interface {
	GetActive(ctx context.Context, memberID int64) (*models.EvaluationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
