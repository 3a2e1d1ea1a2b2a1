package book_evaluation

import (
	"errors"
	"net/http"

	"github.com/m04kA/GMS-ScheduleService/internal/api/handlers"
	bookEvaluation "github.com/m04kA/GMS-ScheduleService/internal/usecase/book_evaluation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRequestedAt = "некорректный формат даты и времени, ожидается RFC 3339"
	msgInvalidData        = "некорректные данные записи"
	msgMemberNotFound     = "участник не найден"
	msgMemberInactive     = "членство участника неактивно"
	msgActiveExists       = "у участника уже есть активная запись на оценку"
	msgRequestedAtInPast  = "запрошенное время оценки в прошлом"
)

type Handler struct {
	useCase BookEvaluationUseCase
	logger  Logger
}

func NewHandler(useCase BookEvaluationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/evaluations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req BookEvaluationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /evaluations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /evaluations - Failed to parse requestedAt: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestedAt)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, bookEvaluation.ErrInvalidInput):
			h.logger.Warn("POST /evaluations - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, bookEvaluation.ErrInvalidRequestedAt):
			h.logger.Warn("POST /evaluations - Requested time in past: member_id=%d", req.MemberID)
			handlers.RespondBadRequest(w, msgRequestedAtInPast)

		case errors.Is(err, bookEvaluation.ErrMemberNotFound):
			h.logger.Warn("POST /evaluations - Member not found: member_id=%d", req.MemberID)
			handlers.RespondNotFound(w, msgMemberNotFound)

		case errors.Is(err, bookEvaluation.ErrMemberInactive):
			h.logger.Warn("POST /evaluations - Member inactive: member_id=%d", req.MemberID)
			handlers.RespondForbidden(w, msgMemberInactive)

		case errors.Is(err, bookEvaluation.ErrActiveEvaluationExists):
			h.logger.Warn("POST /evaluations - Active evaluation exists: member_id=%d", req.MemberID)
			handlers.RespondError(w, http.StatusConflict, msgActiveExists)

		default:
			h.logger.Error("POST /evaluations - Failed to book evaluation: member_id=%d, error=%v",
				req.MemberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /evaluations - Evaluation booked successfully: evaluation_id=%d, member_id=%d",
		result.ID, req.MemberID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
