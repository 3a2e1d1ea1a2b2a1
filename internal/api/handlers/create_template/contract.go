package create_template

import (
	"context"

	"github.com/m04kA/GMS-ScheduleService/internal/service/templates/models"
)

type TemplateService interface {
	Create(ctx context.Context, req *models.CreateTemplateRequest) (*models.TemplateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
