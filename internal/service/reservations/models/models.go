package models

import (
	"time"

	"github.com/m04kA/GMS-ScheduleService/internal/domain"
)

// Request модели

// CancelReservationRequest запрос на отмену бронирования
type CancelReservationRequest struct {
	MemberID  int64 `json:"memberId"`
	SessionID int64 `json:"sessionId"`
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID          int64   `json:"id"`
	MemberID    int64   `json:"memberId"`
	SessionID   int64   `json:"sessionId"`
	ReservedAt  string  `json:"reservedAt"` // ISO 8601
	Status      string  `json:"status"`
	CancelledAt *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:         r.ID,
		MemberID:   r.MemberID,
		SessionID:  r.SessionID,
		ReservedAt: r.ReservedAt.Format(time.RFC3339),
		Status:     string(r.Status),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}

	if r.CancelledAt != nil {
		cancelledStr := r.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(reservations)),
	}

	for _, r := range reservations {
		if resResp := FromDomainReservation(r); resResp != nil {
			resp.Reservations = append(resp.Reservations, *resResp)
		}
	}

	return resp
}
