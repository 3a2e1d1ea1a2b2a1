package get_member_reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/GMS-ScheduleService/internal/api/handlers"
	"github.com/m04kA/GMS-ScheduleService/internal/service/reservations"
)

const (
	msgInvalidMemberID = "некорректный ID участника"
	msgInvalidFilter   = "некорректные параметры фильтрации"
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

// Handle GET /api/v1/members/{memberId}/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем memberId из URL
	vars := mux.Vars(r)
	memberIDStr := vars["memberId"]

	memberID, err := strconv.ParseInt(memberIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /members/{id}/reservations - Invalid member ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMemberID)
		return
	}

	// Опциональные фильтры
	status := r.URL.Query().Get("status")
	fromDate := r.URL.Query().Get("fromDate")

	result, err := h.service.ListByMember(r.Context(), memberID, status, fromDate)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /members/{id}/reservations - Invalid filter: member_id=%d, error=%v",
				memberID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /members/{id}/reservations - Failed to list reservations: member_id=%d, error=%v",
				memberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
