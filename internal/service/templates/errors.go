package templates

import "errors"

var (
	// ErrTemplateNotFound возвращается, когда шаблон занятия не найден
	ErrTemplateNotFound = errors.New("slot template not found")

	// ErrEmployeeNotFound возвращается, когда сотрудник не найден
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrInstructorNotQualified возвращается, когда роль сотрудника не
	// позволяет вести занятия
	ErrInstructorNotQualified = errors.New("employee is not qualified to teach")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("templates service: internal error")
)
