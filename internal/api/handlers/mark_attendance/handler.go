package mark_attendance

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/GMS-ScheduleService/internal/api/handlers"
	"github.com/m04kA/GMS-ScheduleService/internal/service/attendance"
	"github.com/m04kA/GMS-ScheduleService/internal/service/attendance/models"
)

const (
	msgInvalidSessionID      = "некорректный ID сессии"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgSessionNotFound       = "сессия не найдена"
	msgSessionNotYetOccurred = "занятие ещё не прошло"
)

type Handler struct {
	service AttendanceService
	logger  Logger
}

func NewHandler(service AttendanceService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions/{sessionId}/attendance
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем sessionId из URL
	vars := mux.Vars(r)
	sessionIDStr := vars["sessionId"]

	sessionID, err := strconv.ParseInt(sessionIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /sessions/{id}/attendance - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	// Декодируем body
	var req models.MarkAttendanceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions/{id}/attendance - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Mark(r.Context(), sessionID, req.PresentMemberIDs)
	if err != nil {
		switch {
		case errors.Is(err, attendance.ErrSessionNotFound):
			h.logger.Warn("POST /sessions/{id}/attendance - Session not found: session_id=%d", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, attendance.ErrSessionNotYetOccurred):
			h.logger.Warn("POST /sessions/{id}/attendance - Session not yet occurred: session_id=%d", sessionID)
			handlers.RespondBadRequest(w, msgSessionNotYetOccurred)

		default:
			h.logger.Error("POST /sessions/{id}/attendance - Failed to mark attendance: session_id=%d, error=%v",
				sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions/{id}/attendance - Attendance marked: session_id=%d, presente=%d, faltou=%d",
		sessionID, result.MarkedPresente, result.MarkedFaltou)
	handlers.RespondJSON(w, http.StatusOK, result)
}
