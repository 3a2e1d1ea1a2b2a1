package swap_templates

import (
	"context"
	"time"

	"github.com/m04kA/GMS-ScheduleService/internal/domain"
)

// TemplateRepository интерфейс репозитория шаблонов занятий
type TemplateRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.SlotTemplate, error)
	UpdateSchedule(ctx context.Context, t *domain.SlotTemplate) error
}

// SessionRepository интерфейс репозитория сессий занятий
type SessionRepository interface {
	ListFutureByTemplates(ctx context.Context, templateIDs []int64, fromDate string) ([]*domain.SessionWithSeats, error)
	SetCapacityOverride(ctx context.Context, id int64, capacity int) error
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
