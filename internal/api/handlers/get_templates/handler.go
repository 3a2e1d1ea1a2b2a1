package get_templates

import (
	"net/http"

	"github.com/m04kA/GMS-ScheduleService/internal/api/handlers"
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

// Handle GET /api/v1/templates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// По умолчанию отдаем только активные шаблоны
	onlyActive := r.URL.Query().Get("includeInactive") != "true"

	result, err := h.service.List(r.Context(), onlyActive)
	if err != nil {
		h.logger.Error("GET /templates - Failed to list templates: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
