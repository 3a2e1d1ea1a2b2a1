package domain

// Business validation constants
const (
	MinCapacity       = 1
	MaxCapacity       = 500
	MinRoomNumber     = 1
	MaxClassNameLength = 100
	MaxNotesLength    = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// SeatTakingStatuses статусы, занимающие место в сессии.
// Используется Capacity Ledger при подсчёте seats_taken.
var SeatTakingStatuses = []ReservationStatus{
	StatusReservado,
	StatusPresente,
}

// TerminalStatuses терминальные статусы бронирования
var TerminalStatuses = []ReservationStatus{
	StatusPresente,
	StatusFaltou,
	StatusCancelado,
}

// AllStatuses все допустимые статусы бронирования
var AllStatuses = []ReservationStatus{
	StatusReservado,
	StatusPresente,
	StatusFaltou,
	StatusCancelado,
}

// ParseReservationStatus валидирует и конвертирует строку в статус
func ParseReservationStatus(s string) (ReservationStatus, bool) {
	for _, status := range AllStatuses {
		if string(status) == s {
			return status, true
		}
	}
	return "", false
}
