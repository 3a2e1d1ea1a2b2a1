package cancel_evaluation

import (
	"errors"
	"net/http"

	"github.com/m04kA/GMS-ScheduleService/internal/api/handlers"
	"github.com/m04kA/GMS-ScheduleService/internal/service/evaluations"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "активная запись на оценку не найдена"
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

// Handle PATCH /api/v1/evaluations/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CancelEvaluationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /evaluations/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.MemberID <= 0 {
		h.logger.Warn("PATCH /evaluations/cancel - Invalid member ID: %d", req.MemberID)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.Cancel(r.Context(), req.MemberID); err != nil {
		switch {
		case errors.Is(err, evaluations.ErrNoActiveEvaluation):
			h.logger.Warn("PATCH /evaluations/cancel - No active evaluation: member_id=%d", req.MemberID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /evaluations/cancel - Failed to cancel evaluation: member_id=%d, error=%v",
				req.MemberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /evaluations/cancel - Evaluation cancelled successfully: member_id=%d", req.MemberID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
