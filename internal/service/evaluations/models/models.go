package models

import (
	"time"

	"github.com/m04kA/GMS-ScheduleService/internal/domain"
)

// Request модели

// MarkEvaluationAttendanceRequest запрос на закрытие записи на оценку.
// При Present=true обязательны данные измерений.
type MarkEvaluationAttendanceRequest struct {
	Present    bool     `json:"present"`
	WeightKg   *float64 `json:"weightKg,omitempty"`
	HeightCm   *float64 `json:"heightCm,omitempty"`
	BodyFatPct *float64 `json:"bodyFatPct,omitempty"`
	Notes      *string  `json:"notes,omitempty"`
}

// Response модели

// EvaluationResponse ответ с данными записи на оценку
type EvaluationResponse struct {
	ID           int64   `json:"id"`
	MemberID     int64   `json:"memberId"`
	RequestedAt  string  `json:"requestedAt"` // ISO 8601
	Status       string  `json:"status"`
	CancelledAt  *string `json:"cancelledAt,omitempty"` // ISO 8601
	AssessmentID *int64  `json:"assessmentId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AssessmentResponse ответ с данными завершённой оценки
type AssessmentResponse struct {
	ID                      int64    `json:"id"`
	MemberID                int64    `json:"memberId"`
	EvaluationReservationID int64    `json:"evaluationReservationId"`
	MeasuredAt              string   `json:"measuredAt"` // ISO 8601
	WeightKg                float64  `json:"weightKg"`
	HeightCm                float64  `json:"heightCm"`
	BodyFatPct              *float64 `json:"bodyFatPct,omitempty"`
	Notes                   *string  `json:"notes,omitempty"`
}

// MarkEvaluationAttendanceResponse итог закрытия записи на оценку
type MarkEvaluationAttendanceResponse struct {
	Evaluation EvaluationResponse  `json:"evaluation"`
	Assessment *AssessmentResponse `json:"assessment,omitempty"`
}

// FromDomainEvaluation конвертирует domain модель в DTO
func FromDomainEvaluation(e *domain.EvaluationReservation) *EvaluationResponse {
	if e == nil {
		return nil
	}

	resp := &EvaluationResponse{
		ID:           e.ID,
		MemberID:     e.MemberID,
		RequestedAt:  e.RequestedAt.Format(time.RFC3339),
		Status:       string(e.Status),
		AssessmentID: e.AssessmentID,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}

	if e.CancelledAt != nil {
		cancelledStr := e.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainAssessment конвертирует завершённую оценку в DTO
func FromDomainAssessment(a *domain.Assessment) *AssessmentResponse {
	if a == nil {
		return nil
	}

	return &AssessmentResponse{
		ID:                      a.ID,
		MemberID:                a.MemberID,
		EvaluationReservationID: a.EvaluationReservationID,
		MeasuredAt:              a.MeasuredAt.Format(time.RFC3339),
		WeightKg:                a.WeightKg,
		HeightCm:                a.HeightCm,
		BodyFatPct:              a.BodyFatPct,
		Notes:                   a.Notes,
	}
}
