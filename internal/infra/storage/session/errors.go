package session

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена или деактивирована
	ErrSessionNotFound = errors.New("session.repository: session not found")

	// ErrDuplicateSession возвращается, когда на (шаблон, дату) уже есть активная сессия
	ErrDuplicateSession = errors.New("session.repository: session already exists for this template and date")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("session.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("session.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("session.repository: failed to scan row")
)
