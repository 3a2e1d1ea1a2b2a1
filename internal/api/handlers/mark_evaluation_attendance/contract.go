package mark_evaluation_attendance

import (
	"context"

	"github.com/m04kA/GMS-ScheduleService/internal/service/evaluations/models"
)

type EvaluationService interface {
	MarkAttendance(ctx context.Context, evaluationID int64, req *models.MarkEvaluationAttendanceRequest) (*models.MarkEvaluationAttendanceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
