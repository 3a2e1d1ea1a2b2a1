package book_class

import (
	"context"
	"time"

	"github.com/m04kA/GMS-ScheduleService/internal/domain"
	"github.com/m04kA/GMS-ScheduleService/internal/integrations/memberservice"
)

// SessionRepository интерфейс репозитория сессий занятий
type SessionRepository interface {
	GetWithSeats(ctx context.Context, id int64) (*domain.SessionWithSeats, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	HasNonCancelled(ctx context.Context, memberID, sessionID int64) (bool, error)
	CreateIfSeatAvailable(ctx context.Context, memberID, sessionID int64, reservedAt time.Time) (*domain.Reservation, error)
}

// MemberServiceClient интерфейс клиента для MemberService
type MemberServiceClient interface {
	CheckActiveMember(ctx context.Context, memberID int64) (*memberservice.Member, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
