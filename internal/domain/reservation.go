package domain

import "time"

// ReservationStatus статус бронирования занятия
type ReservationStatus string

const (
	// StatusReservado место забронировано, занятие ещё не прошло
	StatusReservado ReservationStatus = "Reservado"
	// StatusPresente участник пришёл на занятие (терминальный)
	StatusPresente ReservationStatus = "Presente"
	// StatusFaltou участник не пришёл на занятие (терминальный)
	StatusFaltou ReservationStatus = "Faltou"
	// StatusCancelado бронирование отменено (терминальный)
	StatusCancelado ReservationStatus = "Cancelado"
)

// IsTerminal возвращает true для терминальных статусов.
// Из терминального статуса переходов нет.
func (s ReservationStatus) IsTerminal() bool {
	return s == StatusPresente || s == StatusFaltou || s == StatusCancelado
}

// TakesSeat возвращает true, если статус занимает место в сессии.
// Faltou и Cancelado место не занимают.
func (s ReservationStatus) TakesSeat() bool {
	return s == StatusReservado || s == StatusPresente
}

// Reservation бронирование участником места на конкретной сессии занятия
type Reservation struct {
	ID          int64
	MemberID    int64
	SessionID   int64
	ReservedAt  time.Time
	Status      ReservationStatus
	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive возвращает true, если бронирование действующее (не терминальное)
func (r *Reservation) IsActive() bool {
	return r.Status == StatusReservado
}

// CanBeCancelled возвращает true, если бронирование можно отменить
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusReservado
}

// MemberReservationsFilter фильтр для выборки бронирований участника
type MemberReservationsFilter struct {
	MemberID int64              // Обязательный параметр
	Status   *ReservationStatus // Фильтр по статусу (опционально)
	FromDate *time.Time         // Только сессии начиная с даты (опционально)
}
