package get_available_sessions

import (
	"context"

	"github.com/m04kA/GMS-ScheduleService/internal/service/sessions/models"
)

type SessionService interface {
	ListAvailable(ctx context.Context, fromDate string) (*models.AvailableSessionListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
