package domain

import "time"

// SwapOutcome исход обмена расписания между двумя шаблонами
type SwapOutcome string

const (
	// SwapApplied обмен применён без конфликтов
	SwapApplied SwapOutcome = "applied"
	// SwapAppliedWithWarnings обмен применён принудительно, часть сессий
	// зафиксирована на прежней вместимости (см. Warnings)
	SwapAppliedWithWarnings SwapOutcome = "applied_with_warnings"
)

// CapacityConflict сессия, на которой занято больше мест, чем допускает
// новая вместимость после обмена
type CapacityConflict struct {
	SessionID      int64
	SlotTemplateID int64
	SessionDate    time.Time
	SeatsTaken     int
	NewCapacity    int
}

// SwapResult результат обмена шаблонов.
// Существующие бронирования никогда не отменяются автоматически:
// при принудительном обмене конфликты возвращаются списком предупреждений.
type SwapResult struct {
	Outcome   SwapOutcome
	TemplateA *SlotTemplate
	TemplateB *SlotTemplate
	Warnings  []CapacityConflict
}
