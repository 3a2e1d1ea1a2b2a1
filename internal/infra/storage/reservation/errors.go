package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда активное бронирование не найдено
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrNoSeatAvailable возвращается, когда условная вставка не прошла:
	// сессия отсутствует, деактивирована или все места заняты
	ErrNoSeatAvailable = errors.New("reservation.repository: no seat available")

	// ErrAlreadyReserved возвращается при нарушении уникальности пары (участник, сессия)
	ErrAlreadyReserved = errors.New("reservation.repository: member already has a reservation for this session")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
