package mark_evaluation_attendance

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/GMS-ScheduleService/internal/api/handlers"
	"github.com/m04kA/GMS-ScheduleService/internal/service/evaluations"
	"github.com/m04kA/GMS-ScheduleService/internal/service/evaluations/models"
)

const (
	msgInvalidEvaluationID = "некорректный ID записи на оценку"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgNotFound            = "запись на оценку не найдена"
	msgAlreadyFinalized    = "запись на оценку уже закрыта"
	msgAssessmentRequired  = "для отметки Presente обязательны данные измерений"
	msgInvalidMeasurements = "некорректные данные измерений"
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

// Handle POST /api/v1/evaluations/{evaluationId}/attendance
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем evaluationId из URL
	vars := mux.Vars(r)
	evaluationIDStr := vars["evaluationId"]

	evaluationID, err := strconv.ParseInt(evaluationIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /evaluations/{id}/attendance - Invalid evaluation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEvaluationID)
		return
	}

	// Декодируем body
	var req models.MarkEvaluationAttendanceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /evaluations/{id}/attendance - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.MarkAttendance(r.Context(), evaluationID, &req)
	if err != nil {
		switch {
		case errors.Is(err, evaluations.ErrEvaluationNotFound):
			h.logger.Warn("POST /evaluations/{id}/attendance - Evaluation not found: evaluation_id=%d", evaluationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, evaluations.ErrAlreadyFinalized):
			h.logger.Warn("POST /evaluations/{id}/attendance - Already finalized: evaluation_id=%d", evaluationID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyFinalized)

		case errors.Is(err, evaluations.ErrAssessmentRequired):
			h.logger.Warn("POST /evaluations/{id}/attendance - Assessment required: evaluation_id=%d", evaluationID)
			handlers.RespondBadRequest(w, msgAssessmentRequired)

		case errors.Is(err, evaluations.ErrInvalidInput):
			h.logger.Warn("POST /evaluations/{id}/attendance - Invalid measurements: evaluation_id=%d, error=%v",
				evaluationID, err)
			handlers.RespondBadRequest(w, msgInvalidMeasurements)

		default:
			h.logger.Error("POST /evaluations/{id}/attendance - Failed to mark attendance: evaluation_id=%d, error=%v",
				evaluationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /evaluations/{id}/attendance - Evaluation closed: evaluation_id=%d, status=%s",
		evaluationID, result.Evaluation.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
