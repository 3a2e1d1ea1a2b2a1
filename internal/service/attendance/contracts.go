package attendance

import (
	"context"
	"time"

	"github.com/m04kA/GMS-ScheduleService/internal/domain"
)

// SessionRepository интерфейс репозитория сессий занятий
type SessionRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Session, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	CountActive(ctx context.Context, sessionID int64) (int, error)
	MarkAttendance(ctx context.Context, sessionID int64, presentMemberIDs []int64) (presente int64, faltou int64, err error)
}

// TxManager интерфейс менеджера транзакций
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
