package assign_instructor

import (
	"context"

	"github.com/m04kA/GMS-ScheduleService/internal/service/templates/models"
)

type TemplateService interface {
	AssignInstructor(ctx context.Context, templateID, instructorID int64) (*models.TemplateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
