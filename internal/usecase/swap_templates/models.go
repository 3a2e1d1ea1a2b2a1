package swap_templates

import "github.com/m04kA/GMS-ScheduleService/internal/domain"

// Request модель запроса на обмен расписания между двумя шаблонами
type Request struct {
	TemplateAID int64 // ID первого шаблона
	TemplateBID int64 // ID второго шаблона
	Force       bool  // Применить обмен несмотря на конфликты вместимости
}

// Response модель ответа с результатом обмена
type Response struct {
	Outcome   string                    // Исход: applied | applied_with_warnings
	TemplateA *domain.SlotTemplate      // Первый шаблон после обмена
	TemplateB *domain.SlotTemplate      // Второй шаблон после обмена
	Warnings  []domain.CapacityConflict // Сессии, зафиксированные на прежней вместимости
}
