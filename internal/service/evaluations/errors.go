package evaluations

import "errors"

var (
	// ErrEvaluationNotFound возвращается, когда запись на оценку не найдена
	ErrEvaluationNotFound = errors.New("evaluation reservation not found")

	// ErrNoActiveEvaluation возвращается, когда у участника нет активной
	// записи на оценку
	ErrNoActiveEvaluation = errors.New("member has no active evaluation reservation")

	// ErrAlreadyFinalized возвращается при попытке перевести запись
	// из терминального статуса
	ErrAlreadyFinalized = errors.New("evaluation reservation is already finalized")

	// ErrAssessmentRequired возвращается, когда отметка Presente запрошена
	// без данных измерений
	ErrAssessmentRequired = errors.New("assessment measurements are required to mark Presente")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("evaluations service: internal error")
)
