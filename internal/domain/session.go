package domain

import (
	"time"

	"github.com/m04kA/GMS-ScheduleService/pkg/types"
)

// Session датированная сессия занятия, созданная из шаблона.
// Время и вместимость наследуются от шаблона при чтении и не дублируются,
// за исключением CapacityOverride, который выставляется при принудительном
// обмене шаблонов для сессий, оказавшихся сверх новой вместимости.
type Session struct {
	ID               int64
	SlotTemplateID   int64
	SessionDate      time.Time
	Room             int
	CapacityOverride *int
	DeactivatedAt    *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsDeactivated возвращает true, если сессия мягко удалена
func (s *Session) IsDeactivated() bool {
	return s.DeactivatedAt != nil
}

// SessionWithSeats сессия, аннотированная данными шаблона и счётчиком мест.
// Представление Capacity Ledger: единственный источник ответа на вопрос
// "есть ли свободные места".
type SessionWithSeats struct {
	Session

	ClassName    string
	StartTime    types.TimeString
	EndTime      types.TimeString
	Capacity     int // эффективная вместимость: COALESCE(capacity_override, template.capacity)
	InstructorID *int64
	SeatsTaken   int
}

// SeatsRemaining возвращает количество свободных мест
func (s *SessionWithSeats) SeatsRemaining() int {
	remaining := s.Capacity - s.SeatsTaken
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsFull возвращает true, если свободных мест нет
func (s *SessionWithSeats) IsFull() bool {
	return s.SeatsTaken >= s.Capacity
}
