package get_templates

import (
	"context"

	"github.com/m04kA/GMS-ScheduleService/internal/service/templates/models"
)

type TemplateService interface {
	List(ctx context.Context, onlyActive bool) (*models.TemplateListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
