package swap_templates

import (
	"github.com/m04kA/GMS-ScheduleService/internal/domain"
	swapTemplates "github.com/m04kA/GMS-ScheduleService/internal/usecase/swap_templates"
)

// SwapTemplatesRequest HTTP request model
type SwapTemplatesRequest struct {
	TemplateAID int64 `json:"templateAId"`
	TemplateBID int64 `json:"templateBId"`
	Force       bool  `json:"force"`
}

// TemplateView представление шаблона после обмена
type TemplateView struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Weekday      int    `json:"weekday"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	Capacity     int    `json:"capacity"`
	InstructorID *int64 `json:"instructorId,omitempty"`
}

// CapacityConflictView сессия, затронутая конфликтом вместимости
type CapacityConflictView struct {
	SessionID      int64  `json:"sessionId"`
	SlotTemplateID int64  `json:"slotTemplateId"`
	SessionDate    string `json:"sessionDate"`
	SeatsTaken     int    `json:"seatsTaken"`
	NewCapacity    int    `json:"newCapacity"`
}

// SwapTemplatesResponse HTTP response model
type SwapTemplatesResponse struct {
	Outcome   string                 `json:"outcome"`
	TemplateA TemplateView           `json:"templateA"`
	TemplateB TemplateView           `json:"templateB"`
	Warnings  []CapacityConflictView `json:"warnings,omitempty"`
}

// SwapRejectedResponse HTTP response при отклонённом обмене
type SwapRejectedResponse struct {
	Error     string                 `json:"error"`
	Conflicts []CapacityConflictView `json:"conflicts"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SwapTemplatesRequest) ToUseCaseRequest() *swapTemplates.Request {
	return &swapTemplates.Request{
		TemplateAID: r.TemplateAID,
		TemplateBID: r.TemplateBID,
		Force:       r.Force,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *swapTemplates.Response) *SwapTemplatesResponse {
	return &SwapTemplatesResponse{
		Outcome:   resp.Outcome,
		TemplateA: toTemplateView(resp.TemplateA),
		TemplateB: toTemplateView(resp.TemplateB),
		Warnings:  toConflictViews(resp.Warnings),
	}
}

func toTemplateView(t *domain.SlotTemplate) TemplateView {
	return TemplateView{
		ID:           t.ID,
		Name:         t.Name,
		Weekday:      int(t.Weekday),
		StartTime:    t.StartTime.String(),
		EndTime:      t.EndTime.String(),
		Capacity:     t.Capacity,
		InstructorID: t.InstructorID,
	}
}

func toConflictViews(conflicts []domain.CapacityConflict) []CapacityConflictView {
	if len(conflicts) == 0 {
		return nil
	}

	views := make([]CapacityConflictView, 0, len(conflicts))
	for _, c := range conflicts {
		views = append(views, CapacityConflictView{
			SessionID:      c.SessionID,
			SlotTemplateID: c.SlotTemplateID,
			SessionDate:    c.SessionDate.Format(domain.DateFormat),
			SeatsTaken:     c.SeatsTaken,
			NewCapacity:    c.NewCapacity,
		})
	}
	return views
}
