package domain

import (
	"time"

	"github.com/m04kA/GMS-ScheduleService/pkg/types"
)

// SlotTemplate шаблон еженедельного занятия: день недели, время, вместимость,
// назначенный инструктор. Из шаблона планировщик создаёт датированные сессии.
type SlotTemplate struct {
	ID            int64
	Name          string
	Weekday       time.Weekday
	StartTime     types.TimeString
	EndTime       types.TimeString
	Capacity      int
	InstructorID  *int64
	Active        bool
	DeactivatedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive возвращает true, если шаблон активен (не деактивирован)
func (t *SlotTemplate) IsActive() bool {
	return t.Active && t.DeactivatedAt == nil
}

// MatchesDate возвращает true, если дата приходится на день недели шаблона
func (t *SlotTemplate) MatchesDate(date time.Time) bool {
	return date.Weekday() == t.Weekday
}

// UpdateTemplateParams параметры обновления шаблона.
// Nil-поля не изменяются.
type UpdateTemplateParams struct {
	Name         *string
	Weekday      *time.Weekday
	StartTime    *types.TimeString
	EndTime      *types.TimeString
	Capacity     *int
	InstructorID *int64
}
