package sessions

import (
	"context"
	"time"

	"github.com/m04kA/GMS-ScheduleService/internal/domain"
)

// SessionRepository интерфейс репозитория сессий занятий
type SessionRepository interface {
	Create(ctx context.Context, s *domain.Session) (*domain.Session, error)
	ExistsActive(ctx context.Context, templateID int64, date string) (bool, error)
	ListAvailable(ctx context.Context, fromDate string) ([]*domain.SessionWithSeats, error)
	Deactivate(ctx context.Context, id int64) error
}

// TemplateRepository интерфейс репозитория шаблонов занятий
type TemplateRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.SlotTemplate, error)
}

// TimeProvider интерфейс для получения текущего времени.
// Выделен в интерфейс, чтобы тесты могли зафиксировать "сегодня".
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
