package cancel_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/GMS-ScheduleService/internal/api/handlers"
	"github.com/m04kA/GMS-ScheduleService/internal/service/reservations"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "активное бронирование не найдено"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CancelReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.MemberID <= 0 || req.SessionID <= 0 {
		h.logger.Warn("PATCH /reservations/cancel - Invalid IDs: member_id=%d, session_id=%d",
			req.MemberID, req.SessionID)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.Cancel(r.Context(), req.MemberID, req.SessionID); err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/cancel - Reservation not found: member_id=%d, session_id=%d",
				req.MemberID, req.SessionID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /reservations/cancel - Failed to cancel reservation: member_id=%d, session_id=%d, error=%v",
				req.MemberID, req.SessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/cancel - Reservation cancelled successfully: member_id=%d, session_id=%d",
		req.MemberID, req.SessionID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
