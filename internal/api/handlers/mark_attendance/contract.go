package mark_attendance

import (
	"context"

	"github.com/m04kA/GMS-ScheduleService/internal/service/attendance/models"
)

type AttendanceService interface {
	Mark(ctx context.Context, sessionID int64, presentMemberIDs []int64) (*models.MarkAttendanceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
