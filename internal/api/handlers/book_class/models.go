package book_class

import (
	"time"

	bookClass "github.com/m04kA/GMS-ScheduleService/internal/usecase/book_class"
)

// BookClassRequest HTTP request model
type BookClassRequest struct {
	MemberID  int64 `json:"memberId"`
	SessionID int64 `json:"sessionId"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID             int64  `json:"id"`
	MemberID       int64  `json:"memberId"`
	SessionID      int64  `json:"sessionId"`
	ReservedAt     string `json:"reservedAt"`
	Status         string `json:"status"`
	ClassName      string `json:"className"`
	SessionDate    string `json:"sessionDate"`
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
	Room           int    `json:"room"`
	SeatsRemaining int    `json:"seatsRemaining"`
	CreatedAt      string `json:"createdAt"`
	UpdatedAt      string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BookClassRequest) ToUseCaseRequest() *bookClass.Request {
	return &bookClass.Request{
		MemberID:  r.MemberID,
		SessionID: r.SessionID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookClass.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:             resp.ID,
		MemberID:       resp.MemberID,
		SessionID:      resp.SessionID,
		ReservedAt:     resp.ReservedAt.Format(time.RFC3339),
		Status:         resp.Status,
		ClassName:      resp.ClassName,
		SessionDate:    resp.SessionDate,
		StartTime:      resp.StartTime,
		EndTime:        resp.EndTime,
		Room:           resp.Room,
		SeatsRemaining: resp.SeatsRemaining,
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      resp.UpdatedAt.Format(time.RFC3339),
	}
}
