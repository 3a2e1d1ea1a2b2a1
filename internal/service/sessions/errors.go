package sessions

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена
	ErrSessionNotFound = errors.New("session not found")

	// ErrTemplateNotFound возвращается, когда шаблон занятия не найден
	ErrTemplateNotFound = errors.New("slot template not found")

	// ErrTemplateInactive возвращается при попытке создать сессию
	// по деактивированному шаблону
	ErrTemplateInactive = errors.New("slot template is deactivated")

	// ErrDuplicateSession возвращается, когда активная сессия на эту
	// дату по этому шаблону уже существует
	ErrDuplicateSession = errors.New("active session already exists for this template and date")

	// ErrInvalidDate возвращается при попытке создать сессию на прошедшую дату
	ErrInvalidDate = errors.New("session date is in the past")

	// ErrDateTooFarInFuture возвращается, когда дата сессии выходит
	// за горизонт планирования
	ErrDateTooFarInFuture = errors.New("session date exceeds advance booking horizon")

	// ErrWeekdayMismatch возвращается, когда дата сессии не совпадает
	// с днём недели шаблона
	ErrWeekdayMismatch = errors.New("session date does not match template weekday")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("sessions service: internal error")
)
