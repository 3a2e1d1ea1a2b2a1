package models

import (
	"time"

	"github.com/m04kA/GMS-ScheduleService/internal/domain"
)

// Request модели

// CreateTemplateRequest запрос на создание шаблона занятия
type CreateTemplateRequest struct {
	Name         string `json:"name"`
	Weekday      int    `json:"weekday"` // 0=Sunday .. 6=Saturday, как в time.Weekday
	StartTime    string `json:"startTime"` // "18:00"
	EndTime      string `json:"endTime"`   // "19:00"
	Capacity     int    `json:"capacity"`
	InstructorID *int64 `json:"instructorId,omitempty"`
}

// UpdateTemplateRequest запрос на обновление шаблона.
// Nil-поля не изменяются.
type UpdateTemplateRequest struct {
	Name      *string `json:"name,omitempty"`
	Weekday   *int    `json:"weekday,omitempty"`
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
	Capacity  *int    `json:"capacity,omitempty"`
}

// Response модели

// TemplateResponse ответ с данными шаблона
type TemplateResponse struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Weekday       int     `json:"weekday"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	Capacity      int     `json:"capacity"`
	InstructorID  *int64  `json:"instructorId,omitempty"`
	Active        bool    `json:"active"`
	DeactivatedAt *string `json:"deactivatedAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TemplateListResponse ответ со списком шаблонов
type TemplateListResponse struct {
	Templates []TemplateResponse `json:"templates"`
}

// FromDomainTemplate конвертирует domain модель в DTO
func FromDomainTemplate(t *domain.SlotTemplate) *TemplateResponse {
	if t == nil {
		return nil
	}

	resp := &TemplateResponse{
		ID:           t.ID,
		Name:         t.Name,
		Weekday:      int(t.Weekday),
		StartTime:    t.StartTime.String(),
		EndTime:      t.EndTime.String(),
		Capacity:     t.Capacity,
		InstructorID: t.InstructorID,
		Active:       t.Active,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}

	if t.DeactivatedAt != nil {
		deactivatedStr := t.DeactivatedAt.Format(time.RFC3339)
		resp.DeactivatedAt = &deactivatedStr
	}

	return resp
}

// FromDomainTemplateList конвертирует список domain моделей в DTO
func FromDomainTemplateList(templates []*domain.SlotTemplate) *TemplateListResponse {
	resp := &TemplateListResponse{
		Templates: make([]TemplateResponse, 0, len(templates)),
	}

	for _, t := range templates {
		if tmplResp := FromDomainTemplate(t); tmplResp != nil {
			resp.Templates = append(resp.Templates, *tmplResp)
		}
	}

	return resp
}
