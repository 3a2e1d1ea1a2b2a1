package deactivate_template

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/GMS-ScheduleService/internal/api/handlers"
	"github.com/m04kA/GMS-ScheduleService/internal/service/templates"
)

const (
	msgInvalidTemplateID = "некорректный ID шаблона"
	msgNotFound          = "шаблон не найден или уже деактивирован"
)

type Handler struct {
	service TemplateService
	logger  Logger
}

func NewHandler(service TemplateService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/templates/{templateId}/deactivate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем templateId из URL
	vars := mux.Vars(r)
	templateIDStr := vars["templateId"]

	templateID, err := strconv.ParseInt(templateIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /templates/{id}/deactivate - Invalid template ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTemplateID)
		return
	}

	if err := h.service.Deactivate(r.Context(), templateID); err != nil {
		switch {
		case errors.Is(err, templates.ErrTemplateNotFound):
			h.logger.Warn("PATCH /templates/{id}/deactivate - Template not found: template_id=%d", templateID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /templates/{id}/deactivate - Failed to deactivate template: template_id=%d, error=%v",
				templateID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /templates/{id}/deactivate - Template deactivated successfully: template_id=%d", templateID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
