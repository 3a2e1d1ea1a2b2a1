package templates

import (
	"context"

	"github.com/m04kA/GMS-ScheduleService/internal/domain"
	"github.com/m04kA/GMS-ScheduleService/internal/integrations/staffservice"
)

// TemplateRepository интерфейс репозитория шаблонов занятий
type TemplateRepository interface {
	Create(ctx context.Context, t *domain.SlotTemplate) (*domain.SlotTemplate, error)
	GetByID(ctx context.Context, id int64) (*domain.SlotTemplate, error)
	Update(ctx context.Context, id int64, params domain.UpdateTemplateParams) (*domain.SlotTemplate, error)
	Deactivate(ctx context.Context, id int64) error
	List(ctx context.Context, onlyActive bool) ([]*domain.SlotTemplate, error)
}

// StaffServiceClient интерфейс клиента для StaffService
type StaffServiceClient interface {
	GetEmployee(ctx context.Context, employeeID int64) (*staffservice.Employee, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
