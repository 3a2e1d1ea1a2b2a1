package get_member_reservations

import (
	"context"

	"github.com/m04kA/GMS-ScheduleService/internal/service/reservations/models"
)

type ReservationService interface {
	ListByMember(ctx context.Context, memberID int64, status, fromDate string) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
