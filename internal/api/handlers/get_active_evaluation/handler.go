package get_active_evaluation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/GMS-ScheduleService/internal/api/handlers"
	"github.com/m04kA/GMS-ScheduleService/internal/service/evaluations"
)

const (
	msgInvalidMemberID = "некорректный ID участника"
	msgNotFound        = "активная запись на оценку не найдена"
)

type Handler struct {
	service EvaluationService
	logger  Logger
}

func NewHandler(service EvaluationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/members/{memberId}/evaluations/active
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем memberId из URL
	vars := mux.Vars(r)
	memberIDStr := vars["memberId"]

	memberID, err := strconv.ParseInt(memberIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /members/{id}/evaluations/active - Invalid member ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMemberID)
		return
	}

	result, err := h.service.GetActive(r.Context(), memberID)
	if err != nil {
		switch {
		case errors.Is(err, evaluations.ErrNoActiveEvaluation):
			h.logger.Warn("GET /members/{id}/evaluations/active - No active evaluation: member_id=%d", memberID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /members/{id}/evaluations/active - Failed to get evaluation: member_id=%d, error=%v",
				memberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
