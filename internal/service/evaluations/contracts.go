package evaluations

import (
	"context"
	"time"

	"github.com/m04kA/GMS-ScheduleService/internal/domain"
)

// EvaluationRepository интерфейс репозитория записей на оценку
type EvaluationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.EvaluationReservation, error)
	GetActiveByMember(ctx context.Context, memberID int64) (*domain.EvaluationReservation, error)
	CancelActive(ctx context.Context, memberID int64) error
	MarkPresente(ctx context.Context, id int64, assessmentID int64) error
	MarkFaltou(ctx context.Context, id int64) error
	CreateAssessment(ctx context.Context, a *domain.Assessment) (*domain.Assessment, error)
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
