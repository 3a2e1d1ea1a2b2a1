package attendance

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionNotYetOccurred возвращается при попытке отметить
	// посещаемость до того, как занятие прошло
	ErrSessionNotYetOccurred = errors.New("session has not yet occurred")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("attendance service: internal error")
)
