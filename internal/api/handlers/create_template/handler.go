package create_template

import (
	"errors"
	"net/http"

	"github.com/m04kA/GMS-ScheduleService/internal/api/handlers"
	"github.com/m04kA/GMS-ScheduleService/internal/service/templates"
	"github.com/m04kA/GMS-ScheduleService/internal/service/templates/models"
)

const (
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgInvalidData            = "некорректные данные шаблона"
	msgEmployeeNotFound       = "сотрудник не найден"
	msgInstructorNotQualified = "сотрудник не может вести занятия"
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

// Handle POST /api/v1/templates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTemplateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /templates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, templates.ErrInvalidInput):
			h.logger.Warn("POST /templates - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, templates.ErrEmployeeNotFound):
			h.logger.Warn("POST /templates - Employee not found: instructor_id=%v", req.InstructorID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, templates.ErrInstructorNotQualified):
			h.logger.Warn("POST /templates - Instructor not qualified: instructor_id=%v", req.InstructorID)
			handlers.RespondBadRequest(w, msgInstructorNotQualified)

		default:
			h.logger.Error("POST /templates - Failed to create template: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /templates - Template created successfully: template_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
