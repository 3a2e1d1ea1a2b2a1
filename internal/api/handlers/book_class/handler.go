package book_class

import (
	"errors"
	"net/http"

	"github.com/m04kA/GMS-ScheduleService/internal/api/handlers"
	bookClass "github.com/m04kA/GMS-ScheduleService/internal/usecase/book_class"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные бронирования"
	msgMemberNotFound     = "участник не найден"
	msgMemberInactive     = "членство участника неактивно"
	msgSessionNotFound    = "сессия не найдена"
	msgSessionOccurred    = "занятие уже прошло"
	msgSessionFull        = "свободных мест не осталось"
	msgAlreadyBooked      = "у участника уже есть бронирование на эту сессию"
)

type Handler struct {
	useCase BookClassUseCase
	logger  Logger
}

func NewHandler(useCase BookClassUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req BookClassRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, bookClass.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, bookClass.ErrMemberNotFound):
			h.logger.Warn("POST /reservations - Member not found: member_id=%d", req.MemberID)
			handlers.RespondNotFound(w, msgMemberNotFound)

		case errors.Is(err, bookClass.ErrMemberInactive):
			h.logger.Warn("POST /reservations - Member inactive: member_id=%d", req.MemberID)
			handlers.RespondForbidden(w, msgMemberInactive)

		case errors.Is(err, bookClass.ErrSessionNotFound):
			h.logger.Warn("POST /reservations - Session not found: session_id=%d", req.SessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, bookClass.ErrSessionAlreadyOccurred):
			h.logger.Warn("POST /reservations - Session already occurred: session_id=%d", req.SessionID)
			handlers.RespondBadRequest(w, msgSessionOccurred)

		case errors.Is(err, bookClass.ErrSessionFull):
			h.logger.Warn("POST /reservations - Session full: member_id=%d, session_id=%d",
				req.MemberID, req.SessionID)
			handlers.RespondError(w, http.StatusConflict, msgSessionFull)

		case errors.Is(err, bookClass.ErrAlreadyBooked):
			h.logger.Warn("POST /reservations - Already booked: member_id=%d, session_id=%d",
				req.MemberID, req.SessionID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyBooked)

		default:
			h.logger.Error("POST /reservations - Failed to book class: member_id=%d, session_id=%d, error=%v",
				req.MemberID, req.SessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, member_id=%d, session_id=%d",
		result.ID, req.MemberID, req.SessionID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
