package create_session

import (
	"errors"
	"net/http"

	"github.com/m04kA/GMS-ScheduleService/internal/api/handlers"
	"github.com/m04kA/GMS-ScheduleService/internal/service/sessions"
	"github.com/m04kA/GMS-ScheduleService/internal/service/sessions/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные сессии"
	msgTemplateNotFound   = "шаблон не найден"
	msgTemplateInactive   = "шаблон деактивирован"
	msgDuplicateSession   = "активная сессия на эту дату уже существует"
	msgInvalidDate        = "дата сессии в прошлом"
	msgDateTooFar         = "дата сессии слишком далеко в будущем"
	msgWeekdayMismatch    = "дата сессии не совпадает с днём недели шаблона"
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

// Handle POST /api/v1/sessions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrInvalidInput):
			h.logger.Warn("POST /sessions - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, sessions.ErrTemplateNotFound):
			h.logger.Warn("POST /sessions - Template not found: template_id=%d", req.SlotTemplateID)
			handlers.RespondNotFound(w, msgTemplateNotFound)

		case errors.Is(err, sessions.ErrTemplateInactive):
			h.logger.Warn("POST /sessions - Template inactive: template_id=%d", req.SlotTemplateID)
			handlers.RespondBadRequest(w, msgTemplateInactive)

		case errors.Is(err, sessions.ErrDuplicateSession):
			h.logger.Warn("POST /sessions - Duplicate session: template_id=%d, date=%s",
				req.SlotTemplateID, req.SessionDate)
			handlers.RespondError(w, http.StatusConflict, msgDuplicateSession)

		case errors.Is(err, sessions.ErrInvalidDate):
			h.logger.Warn("POST /sessions - Date in the past: template_id=%d, date=%s",
				req.SlotTemplateID, req.SessionDate)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, sessions.ErrDateTooFarInFuture):
			h.logger.Warn("POST /sessions - Date too far in future: template_id=%d, date=%s",
				req.SlotTemplateID, req.SessionDate)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, sessions.ErrWeekdayMismatch):
			h.logger.Warn("POST /sessions - Weekday mismatch: template_id=%d, date=%s",
				req.SlotTemplateID, req.SessionDate)
			handlers.RespondBadRequest(w, msgWeekdayMismatch)

		default:
			h.logger.Error("POST /sessions - Failed to create session: template_id=%d, error=%v",
				req.SlotTemplateID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions - Session created successfully: session_id=%d, template_id=%d",
		result.ID, req.SlotTemplateID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
