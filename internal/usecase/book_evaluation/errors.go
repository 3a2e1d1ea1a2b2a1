package book_evaluation

import "errors"

var (
	// ErrMemberNotFound возвращается, когда участник не найден
	ErrMemberNotFound = errors.New("book_evaluation: member not found")

	// ErrMemberInactive возвращается, когда членство участника неактивно
	ErrMemberInactive = errors.New("book_evaluation: member is inactive")

	// ErrActiveEvaluationExists возвращается, когда у участника уже есть
	// активная запись на оценку
	ErrActiveEvaluationExists = errors.New("book_evaluation: member already has an active evaluation reservation")

	// ErrInvalidRequestedAt возвращается, когда запрошенное время оценки в прошлом
	ErrInvalidRequestedAt = errors.New("book_evaluation: requested time is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_evaluation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_evaluation: internal error")
)
