package book_class

import "errors"

var (
	// ErrMemberNotFound возвращается, когда участник не найден
	ErrMemberNotFound = errors.New("book_class: member not found")

	// ErrMemberInactive возвращается, когда членство участника неактивно
	ErrMemberInactive = errors.New("book_class: member is inactive")

	// ErrSessionNotFound возвращается, когда сессия не найдена или деактивирована
	ErrSessionNotFound = errors.New("book_class: session not found")

	// ErrSessionAlreadyOccurred возвращается при попытке забронировать
	// прошедшую сессию
	ErrSessionAlreadyOccurred = errors.New("book_class: session has already occurred")

	// ErrSessionFull возвращается, когда свободных мест не осталось
	ErrSessionFull = errors.New("book_class: session is full")

	// ErrAlreadyBooked возвращается, когда у участника уже есть
	// неотменённое бронирование на эту сессию
	ErrAlreadyBooked = errors.New("book_class: member already has a reservation for this session")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_class: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_class: internal error")
)
