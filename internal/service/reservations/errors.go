package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда активное бронирование
	// пары (участник, сессия) не найдено
	ErrReservationNotFound = errors.New("active reservation not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("reservations service: internal error")
)
