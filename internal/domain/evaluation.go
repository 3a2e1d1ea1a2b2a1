package domain

import "time"

// EvaluationReservation запись участника на физическую оценку (антропометрию).
// Общего пула мест нет: действует инвариант "не более одной активной
// (Reservado) записи на участника в любой момент времени".
type EvaluationReservation struct {
	ID           int64
	MemberID     int64
	RequestedAt  time.Time // запрошенные дата и время оценки
	Status       ReservationStatus
	CancelledAt  *time.Time
	AssessmentID *int64 // заполняется только при переходе в Presente

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive возвращает true, если запись действующая (не терминальная)
func (e *EvaluationReservation) IsActive() bool {
	return e.Status == StatusReservado
}

// CanBeCancelled возвращает true, если запись можно отменить
func (e *EvaluationReservation) CanBeCancelled() bool {
	return e.Status == StatusReservado
}

// Assessment завершённая физическая оценка с измерениями.
// Создаётся атомарно при отметке Presente по записи на оценку.
type Assessment struct {
	ID                      int64
	MemberID                int64
	EvaluationReservationID int64
	MeasuredAt              time.Time
	WeightKg                float64
	HeightCm                float64
	BodyFatPct              *float64
	Notes                   *string

	CreatedAt time.Time
}
