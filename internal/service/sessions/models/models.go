package models

import (
	"time"

	"github.com/m04kA/GMS-ScheduleService/internal/domain"
)

// Request модели

// CreateSessionRequest запрос на создание сессии по шаблону
type CreateSessionRequest struct {
	SlotTemplateID int64  `json:"slotTemplateId"`
	SessionDate    string `json:"sessionDate"` // "2026-09-01"
	Room           int    `json:"room"`
}

// Response модели

// SessionResponse ответ с данными сессии
type SessionResponse struct {
	ID             int64  `json:"id"`
	SlotTemplateID int64  `json:"slotTemplateId"`
	SessionDate    string `json:"sessionDate"`
	Room           int    `json:"room"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AvailableSessionResponse сессия с данными шаблона и счётчиком мест
type AvailableSessionResponse struct {
	ID             int64  `json:"id"`
	SlotTemplateID int64  `json:"slotTemplateId"`
	ClassName      string `json:"className"`
	SessionDate    string `json:"sessionDate"`
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
	Room           int    `json:"room"`
	InstructorID   *int64 `json:"instructorId,omitempty"`
	Capacity       int    `json:"capacity"`
	SeatsTaken     int    `json:"seatsTaken"`
	SeatsRemaining int    `json:"seatsRemaining"`
}

// AvailableSessionListResponse ответ со списком доступных сессий
type AvailableSessionListResponse struct {
	Sessions []AvailableSessionResponse `json:"sessions"`
}

// FromDomainSession конвертирует domain модель в DTO
func FromDomainSession(s *domain.Session) *SessionResponse {
	if s == nil {
		return nil
	}

	return &SessionResponse{
		ID:             s.ID,
		SlotTemplateID: s.SlotTemplateID,
		SessionDate:    s.SessionDate.Format(domain.DateFormat),
		Room:           s.Room,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

// FromDomainSessionWithSeats конвертирует аннотированную сессию в DTO
func FromDomainSessionWithSeats(s *domain.SessionWithSeats) *AvailableSessionResponse {
	if s == nil {
		return nil
	}

	return &AvailableSessionResponse{
		ID:             s.ID,
		SlotTemplateID: s.SlotTemplateID,
		ClassName:      s.ClassName,
		SessionDate:    s.SessionDate.Format(domain.DateFormat),
		StartTime:      s.StartTime.String(),
		EndTime:        s.EndTime.String(),
		Room:           s.Room,
		InstructorID:   s.InstructorID,
		Capacity:       s.Capacity,
		SeatsTaken:     s.SeatsTaken,
		SeatsRemaining: s.SeatsRemaining(),
	}
}

// FromDomainSessionWithSeatsList конвертирует список аннотированных сессий в DTO
func FromDomainSessionWithSeatsList(sessions []*domain.SessionWithSeats) *AvailableSessionListResponse {
	resp := &AvailableSessionListResponse{
		Sessions: make([]AvailableSessionResponse, 0, len(sessions)),
	}

	for _, s := range sessions {
		if sessResp := FromDomainSessionWithSeats(s); sessResp != nil {
			resp.Sessions = append(resp.Sessions, *sessResp)
		}
	}

	return resp
}
