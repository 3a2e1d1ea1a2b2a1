package evaluation

import "errors"

var (
	// ErrEvaluationNotFound возвращается, когда запись на оценку не найдена
	ErrEvaluationNotFound = errors.New("evaluation.repository: evaluation reservation not found")

	// ErrActiveReservationExists возвращается, когда у участника уже есть
	// активная (Reservado) запись на оценку
	ErrActiveReservationExists = errors.New("evaluation.repository: member already has an active evaluation reservation")

	// ErrNotReservado возвращается при попытке перехода из терминального статуса
	ErrNotReservado = errors.New("evaluation.repository: evaluation reservation is not in Reservado status")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("evaluation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("evaluation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("evaluation.repository: failed to scan row")
)
