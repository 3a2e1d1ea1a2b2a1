package swap_templates

import (
	"errors"
	"net/http"

	"github.com/m04kA/GMS-ScheduleService/internal/api/handlers"
	swapTemplates "github.com/m04kA/GMS-ScheduleService/internal/usecase/swap_templates"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные параметры обмена"
	msgTemplateNotFound   = "шаблон не найден"
	msgTemplateInactive   = "шаблон деактивирован"
	msgCapacityConflict   = "обмен отклонён: на будущих сессиях занято больше мест, чем допускает новая вместимость"
)

type Handler struct {
	useCase SwapTemplatesUseCase
	logger  Logger
}

func NewHandler(useCase SwapTemplatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/templates/swap
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SwapTemplatesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /templates/swap - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		// Отклонённый обмен возвращает список конфликтующих сессий
		var conflictErr *swapTemplates.CapacityConflictError
		if errors.As(err, &conflictErr) {
			h.logger.Warn("POST /templates/swap - Rejected: template_a=%d, template_b=%d, conflicts=%d",
				req.TemplateAID, req.TemplateBID, len(conflictErr.Conflicts))
			handlers.RespondJSON(w, http.StatusConflict, SwapRejectedResponse{
				Error:     msgCapacityConflict,
				Conflicts: toConflictViews(conflictErr.Conflicts),
			})
			return
		}

		switch {
		case errors.Is(err, swapTemplates.ErrInvalidInput):
			h.logger.Warn("POST /templates/swap - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, swapTemplates.ErrTemplateNotFound):
			h.logger.Warn("POST /templates/swap - Template not found: template_a=%d, template_b=%d",
				req.TemplateAID, req.TemplateBID)
			handlers.RespondNotFound(w, msgTemplateNotFound)

		case errors.Is(err, swapTemplates.ErrTemplateInactive):
			h.logger.Warn("POST /templates/swap - Template inactive: template_a=%d, template_b=%d",
				req.TemplateAID, req.TemplateBID)
			handlers.RespondBadRequest(w, msgTemplateInactive)

		default:
			h.logger.Error("POST /templates/swap - Failed to swap templates: template_a=%d, template_b=%d, error=%v",
				req.TemplateAID, req.TemplateBID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /templates/swap - Swap applied: template_a=%d, template_b=%d, outcome=%s",
		req.TemplateAID, req.TemplateBID, result.Outcome)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
