package get_available_sessions

import (
	"errors"
	"net/http"

	"github.com/m04kA/GMS-ScheduleService/internal/api/handlers"
	"github.com/m04kA/GMS-ScheduleService/internal/service/sessions"
)

const (
	msgInvalidFromDate = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	service SessionService
	logger  Logger
}

func NewHandler(service SessionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/sessions/available
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	fromDate := r.URL.Query().Get("fromDate")

	result, err := h.service.ListAvailable(r.Context(), fromDate)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrInvalidInput):
			h.logger.Warn("GET /sessions/available - Invalid fromDate: %q", fromDate)
			handlers.RespondBadRequest(w, msgInvalidFromDate)

		default:
			h.logger.Error("GET /sessions/available - Failed to list sessions: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
