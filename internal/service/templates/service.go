package templates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/GMS-ScheduleService/internal/domain"
	templateRepo "github.com/m04kA/GMS-ScheduleService/internal/infra/storage/template"
	staffClient "github.com/m04kA/GMS-ScheduleService/internal/integrations/staffservice"
	"github.com/m04kA/GMS-ScheduleService/internal/service/templates/models"
	"github.com/m04kA/GMS-ScheduleService/pkg/types"
)

// Service сервис для управления шаблонами занятий
type Service struct {
	templateRepo TemplateRepository
	staffClient  StaffServiceClient
	logger       Logger
}

// NewService создает новый экземпляр сервиса шаблонов
func NewService(
	templateRepo TemplateRepository,
	staffClient StaffServiceClient,
	logger Logger,
) *Service {
	return &Service{
		templateRepo: templateRepo,
		staffClient:  staffClient,
		logger:       logger,
	}
}

// Create создает новый шаблон занятия
func (s *Service) Create(ctx context.Context, req *models.CreateTemplateRequest) (*models.TemplateResponse, error) {
	s.logger.Info("CreateTemplate: name=%q, weekday=%d, time=%s-%s, capacity=%d",
		req.Name, req.Weekday, req.StartTime, req.EndTime, req.Capacity)

	startTime, endTime, err := validateTemplateFields(req.Name, req.Weekday, req.StartTime, req.EndTime, req.Capacity)
	if err != nil {
		s.logger.Warn("CreateTemplate: validation failed: %v", err)
		return nil, err
	}

	// Назначаемый инструктор должен иметь подходящую роль
	if req.InstructorID != nil {
		if err := s.checkInstructorQualified(ctx, *req.InstructorID); err != nil {
			return nil, err
		}
	}

	template := &domain.SlotTemplate{
		Name:         req.Name,
		Weekday:      time.Weekday(req.Weekday),
		StartTime:    startTime,
		EndTime:      endTime,
		Capacity:     req.Capacity,
		InstructorID: req.InstructorID,
	}

	created, err := s.templateRepo.Create(ctx, template)
	if err != nil {
		s.logger.Error("CreateTemplate: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateTemplate: successfully created template id=%d", created.ID)
	return models.FromDomainTemplate(created), nil
}

// Update обновляет поля шаблона
func (s *Service) Update(ctx context.Context, templateID int64, req *models.UpdateTemplateRequest) (*models.TemplateResponse, error) {
	s.logger.Info("UpdateTemplate: updating template id=%d", templateID)

	params, err := validateUpdateRequest(req)
	if err != nil {
		s.logger.Warn("UpdateTemplate: validation failed for template id=%d: %v", templateID, err)
		return nil, err
	}

	// Если меняется время, проверяем согласованность итоговой пары start < end
	if params.StartTime != nil || params.EndTime != nil {
		current, err := s.templateRepo.GetByID(ctx, templateID)
		if err != nil {
			if errors.Is(err, templateRepo.ErrTemplateNotFound) {
				return nil, ErrTemplateNotFound
			}
			s.logger.Error("UpdateTemplate: repository error for template id=%d: %v", templateID, err)
			return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		start := current.StartTime
		end := current.EndTime
		if params.StartTime != nil {
			start = *params.StartTime
		}
		if params.EndTime != nil {
			end = *params.EndTime
		}
		if !start.IsBefore(end) {
			return nil, fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
		}
	}

	updated, err := s.templateRepo.Update(ctx, templateID, params)
	if err != nil {
		if errors.Is(err, templateRepo.ErrTemplateNotFound) {
			s.logger.Warn("UpdateTemplate: template id=%d not found", templateID)
			return nil, ErrTemplateNotFound
		}
		s.logger.Error("UpdateTemplate: repository error for template id=%d: %v", templateID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateTemplate: successfully updated template id=%d", templateID)
	return models.FromDomainTemplate(updated), nil
}

// Deactivate мягко удаляет шаблон занятия.
// Существующие сессии и бронирования не затрагиваются.
func (s *Service) Deactivate(ctx context.Context, templateID int64) error {
	s.logger.Info("DeactivateTemplate: deactivating template id=%d", templateID)

	if err := s.templateRepo.Deactivate(ctx, templateID); err != nil {
		if errors.Is(err, templateRepo.ErrTemplateNotFound) {
			s.logger.Warn("DeactivateTemplate: template id=%d not found or already inactive", templateID)
			return ErrTemplateNotFound
		}
		s.logger.Error("DeactivateTemplate: repository error for template id=%d: %v", templateID, err)
		return fmt.Errorf("%w: Deactivate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeactivateTemplate: successfully deactivated template id=%d", templateID)
	return nil
}

// AssignInstructor назначает инструктора на шаблон занятия.
// Роль сотрудника проверяется через StaffService.
func (s *Service) AssignInstructor(ctx context.Context, templateID, instructorID int64) (*models.TemplateResponse, error) {
	s.logger.Info("AssignInstructor: assigning instructor id=%d to template id=%d", instructorID, templateID)

	if err := s.checkInstructorQualified(ctx, instructorID); err != nil {
		return nil, err
	}

	updated, err := s.templateRepo.Update(ctx, templateID, domain.UpdateTemplateParams{
		InstructorID: &instructorID,
	})
	if err != nil {
		if errors.Is(err, templateRepo.ErrTemplateNotFound) {
			s.logger.Warn("AssignInstructor: template id=%d not found", templateID)
			return nil, ErrTemplateNotFound
		}
		s.logger.Error("AssignInstructor: repository error for template id=%d: %v", templateID, err)
		return nil, fmt.Errorf("%w: AssignInstructor - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AssignInstructor: successfully assigned instructor id=%d to template id=%d",
		instructorID, templateID)
	return models.FromDomainTemplate(updated), nil
}

// List возвращает все шаблоны занятий
func (s *Service) List(ctx context.Context, onlyActive bool) (*models.TemplateListResponse, error) {
	templates, err := s.templateRepo.List(ctx, onlyActive)
	if err != nil {
		s.logger.Error("ListTemplates: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTemplateList(templates), nil
}

// checkInstructorQualified проверяет, что сотрудник существует и может вести занятия
func (s *Service) checkInstructorQualified(ctx context.Context, instructorID int64) error {
	employee, err := s.staffClient.GetEmployee(ctx, instructorID)
	if err != nil {
		if errors.Is(err, staffClient.ErrEmployeeNotFound) {
			s.logger.Warn("checkInstructorQualified: employee id=%d not found", instructorID)
			return ErrEmployeeNotFound
		}
		s.logger.Error("checkInstructorQualified: failed to get employee id=%d: %v", instructorID, err)
		return fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
	}

	if !employee.CanTeach() {
		s.logger.Warn("checkInstructorQualified: employee id=%d role=%s is not qualified to teach",
			instructorID, employee.Role)
		return ErrInstructorNotQualified
	}

	return nil
}

// validateTemplateFields валидирует поля шаблона и парсит время
func validateTemplateFields(name string, weekday int, startTimeStr, endTimeStr string, capacity int) (types.TimeString, types.TimeString, error) {
	if name == "" {
		return "", "", fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxClassNameLength {
		return "", "", fmt.Errorf("%w: name is too long", ErrInvalidInput)
	}
	if weekday < 0 || weekday > 6 {
		return "", "", fmt.Errorf("%w: weekday must be in range 0..6", ErrInvalidInput)
	}
	if capacity < domain.MinCapacity || capacity > domain.MaxCapacity {
		return "", "", fmt.Errorf("%w: capacity must be in range %d..%d", ErrInvalidInput, domain.MinCapacity, domain.MaxCapacity)
	}

	startTime, err := types.NewTimeStringFromString(startTimeStr)
	if err != nil {
		return "", "", fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	endTime, err := types.NewTimeStringFromString(endTimeStr)
	if err != nil {
		return "", "", fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}

	if !startTime.IsBefore(endTime) {
		return "", "", fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	return startTime, endTime, nil
}

// validateUpdateRequest валидирует частичное обновление и конвертирует его в domain параметры
func validateUpdateRequest(req *models.UpdateTemplateRequest) (domain.UpdateTemplateParams, error) {
	var params domain.UpdateTemplateParams

	if req.Name != nil {
		if *req.Name == "" {
			return params, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
		}
		if len(*req.Name) > domain.MaxClassNameLength {
			return params, fmt.Errorf("%w: name is too long", ErrInvalidInput)
		}
		params.Name = req.Name
	}

	if req.Weekday != nil {
		if *req.Weekday < 0 || *req.Weekday > 6 {
			return params, fmt.Errorf("%w: weekday must be in range 0..6", ErrInvalidInput)
		}
		weekday := time.Weekday(*req.Weekday)
		params.Weekday = &weekday
	}

	if req.StartTime != nil {
		startTime, err := types.NewTimeStringFromString(*req.StartTime)
		if err != nil {
			return params, fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
		}
		params.StartTime = &startTime
	}

	if req.EndTime != nil {
		endTime, err := types.NewTimeStringFromString(*req.EndTime)
		if err != nil {
			return params, fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
		}
		params.EndTime = &endTime
	}

	if req.Capacity != nil {
		if *req.Capacity < domain.MinCapacity || *req.Capacity > domain.MaxCapacity {
			return params, fmt.Errorf("%w: capacity must be in range %d..%d", ErrInvalidInput, domain.MinCapacity, domain.MaxCapacity)
		}
		params.Capacity = req.Capacity
	}

	return params, nil
}
