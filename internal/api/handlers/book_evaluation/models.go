package book_evaluation

import (
	"time"

	bookEvaluation "github.com/m04kA/GMS-ScheduleService/internal/usecase/book_evaluation"
)

// BookEvaluationRequest HTTP request model
type BookEvaluationRequest struct {
	MemberID    int64  `json:"memberId"`
	RequestedAt string `json:"requestedAt"` // ISO 8601, например "2026-09-10T14:00:00Z"
}

// EvaluationResponse HTTP response model
type EvaluationResponse struct {
	ID          int64  `json:"id"`
	MemberID    int64  `json:"memberId"`
	RequestedAt string `json:"requestedAt"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BookEvaluationRequest) ToUseCaseRequest() (*bookEvaluation.Request, error) {
	requestedAt, err := time.Parse(time.RFC3339, r.RequestedAt)
	if err != nil {
		return nil, err
	}

	return &bookEvaluation.Request{
		MemberID:    r.MemberID,
		RequestedAt: requestedAt,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookEvaluation.Response) *EvaluationResponse {
	return &EvaluationResponse{
		ID:          resp.ID,
		MemberID:    resp.MemberID,
		RequestedAt: resp.RequestedAt.Format(time.RFC3339),
		Status:      resp.Status,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   resp.UpdatedAt.Format(time.RFC3339),
	}
}
