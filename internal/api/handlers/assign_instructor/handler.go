package assign_instructor

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/GMS-ScheduleService/internal/api/handlers"
	"github.com/m04kA/GMS-ScheduleService/internal/service/templates"
)

const (
	msgInvalidTemplateID      = "некорректный ID шаблона"
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgTemplateNotFound       = "шаблон не найден"
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

// Handle PATCH /api/v1/templates/{templateId}/instructor
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем templateId из URL
	vars := mux.Vars(r)
	templateIDStr := vars["templateId"]

	templateID, err := strconv.ParseInt(templateIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /templates/{id}/instructor - Invalid template ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTemplateID)
		return
	}

	// Декодируем body
	var req AssignInstructorRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /templates/{id}/instructor - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.InstructorID <= 0 {
		h.logger.Warn("PATCH /templates/{id}/instructor - Invalid instructor ID: %d", req.InstructorID)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AssignInstructor(r.Context(), templateID, req.InstructorID)
	if err != nil {
		switch {
		case errors.Is(err, templates.ErrTemplateNotFound):
			h.logger.Warn("PATCH /templates/{id}/instructor - Template not found: template_id=%d", templateID)
			handlers.RespondNotFound(w, msgTemplateNotFound)

		case errors.Is(err, templates.ErrEmployeeNotFound):
			h.logger.Warn("PATCH /templates/{id}/instructor - Employee not found: instructor_id=%d", req.InstructorID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, templates.ErrInstructorNotQualified):
			h.logger.Warn("PATCH /templates/{id}/instructor - Instructor not qualified: instructor_id=%d", req.InstructorID)
			handlers.RespondBadRequest(w, msgInstructorNotQualified)

		default:
			h.logger.Error("PATCH /templates/{id}/instructor - Failed to assign instructor: template_id=%d, error=%v",
				templateID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /templates/{id}/instructor - Instructor assigned successfully: template_id=%d, instructor_id=%d",
		templateID, req.InstructorID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
