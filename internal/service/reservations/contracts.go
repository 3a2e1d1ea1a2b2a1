package reservations

import (
	"context"

	"github.com/m04kA/GMS-ScheduleService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	CancelActive(ctx context.Context, memberID, sessionID int64) error
	ListByMemberWithFilter(ctx context.Context, filter domain.MemberReservationsFilter) ([]*domain.Reservation, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
