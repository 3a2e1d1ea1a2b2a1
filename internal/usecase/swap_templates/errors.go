package swap_templates

import (
	"errors"
	"fmt"

	"github.com/m04kA/GMS-ScheduleService/internal/domain"
)

var (
	// ErrTemplateNotFound возвращается, когда один из шаблонов не найден
	ErrTemplateNotFound = errors.New("swap_templates: slot template not found")

	// ErrTemplateInactive возвращается, когда один из шаблонов деактивирован
	ErrTemplateInactive = errors.New("swap_templates: slot template is deactivated")

	// ErrCapacityConflict возвращается, когда обмен без force отклонён
	// из-за сессий с занятостью сверх новой вместимости
	ErrCapacityConflict = errors.New("swap_templates: capacity conflict on future sessions")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("swap_templates: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("swap_templates: internal error")
)

// CapacityConflictError ошибка отклонённого обмена со списком конфликтующих
// сессий. Разворачивается в ErrCapacityConflict через errors.Is.
type CapacityConflictError struct {
	Conflicts []domain.CapacityConflict
}

func (e *CapacityConflictError) Error() string {
	return fmt.Sprintf("%v: %d sessions affected", ErrCapacityConflict, len(e.Conflicts))
}

// Unwrap позволяет errors.Is(err, ErrCapacityConflict)
func (e *CapacityConflictError) Unwrap() error {
	return ErrCapacityConflict
}
