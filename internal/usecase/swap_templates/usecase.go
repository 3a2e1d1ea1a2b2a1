package swap_templates

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/GMS-ScheduleService/internal/domain"
	templateRepo "github.com/m04kA/GMS-ScheduleService/internal/infra/storage/template"
)

// UseCase use case для обмена расписания между двумя шаблонами занятий
type UseCase struct {
	templateRepo TemplateRepository
	sessionRepo  SessionRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	templateRepo TemplateRepository,
	sessionRepo SessionRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		templateRepo: templateRepo,
		sessionRepo:  sessionRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет обмен: шаблоны обмениваются днём недели, временем,
// вместимостью и инструктором. Будущие сессии остаются привязанными к своим
// шаблонам и наследуют новое расписание.
//
// Без force обмен отклоняется, если на какой-то будущей сессии занято больше
// мест, чем допускает новая вместимость - возвращается CapacityConflictError
// со списком таких сессий. С force обмен применяется, а конфликтующие сессии
// фиксируются на прежней вместимости: существующие бронирования никогда не
// отменяются автоматически.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SwapTemplates: template_a=%d, template_b=%d, force=%t",
		req.TemplateAID, req.TemplateBID, req.Force)

	// 1. Валидация входных данных
	if req.TemplateAID <= 0 || req.TemplateBID <= 0 {
		return nil, fmt.Errorf("%w: template IDs must be positive", ErrInvalidInput)
	}
	if req.TemplateAID == req.TemplateBID {
		return nil, fmt.Errorf("%w: cannot swap a template with itself", ErrInvalidInput)
	}

	today := uc.timeProvider.Now().UTC().Format(domain.DateFormat)

	// Переменная для хранения результата
	var result *domain.SwapResult

	// 2. Весь обмен - одна сериализуемая транзакция
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Блокируем шаблоны в порядке возрастания ID во избежание дедлоков
		firstID, secondID := req.TemplateAID, req.TemplateBID
		if secondID < firstID {
			firstID, secondID = secondID, firstID
		}

		first, err := uc.getActiveTemplate(txCtx, firstID)
		if err != nil {
			return err
		}
		second, err := uc.getActiveTemplate(txCtx, secondID)
		if err != nil {
			return err
		}

		templateA, templateB := first, second
		if templateA.ID != req.TemplateAID {
			templateA, templateB = second, first
		}

		// 2.2. Обмениваем расписание в памяти
		swappedA, swappedB := swapSchedules(templateA, templateB)

		// 2.3. Блокируем будущие сессии обоих шаблонов и ищем конфликты:
		// сессии, где занято больше мест, чем допускает новая вместимость
		sessions, err := uc.sessionRepo.ListFutureByTemplates(txCtx,
			[]int64{templateA.ID, templateB.ID}, today)
		if err != nil {
			uc.logger.Error("SwapTemplates: failed to list future sessions: %v", err)
			return fmt.Errorf("%w: failed to list future sessions: %v", ErrInternal, err)
		}

		newCapacity := map[int64]int{
			swappedA.ID: swappedA.Capacity,
			swappedB.ID: swappedB.Capacity,
		}

		var conflicts []domain.CapacityConflict
		for _, s := range sessions {
			effective := newCapacity[s.SlotTemplateID]
			if s.CapacityOverride != nil {
				// Уже зафиксированная сессия от шаблона не зависит
				effective = *s.CapacityOverride
			}
			if s.SeatsTaken > effective {
				conflicts = append(conflicts, domain.CapacityConflict{
					SessionID:      s.ID,
					SlotTemplateID: s.SlotTemplateID,
					SessionDate:    s.SessionDate,
					SeatsTaken:     s.SeatsTaken,
					NewCapacity:    effective,
				})
			}
		}

		// 2.4. Без force конфликты отклоняют обмен целиком
		if len(conflicts) > 0 && !req.Force {
			uc.logger.Warn("SwapTemplates: rejected, %d sessions exceed new capacity", len(conflicts))
			return &CapacityConflictError{Conflicts: conflicts}
		}

		// 2.5. С force фиксируем конфликтующие сессии на текущей вместимости,
		// чтобы не отменять существующие бронирования
		for i := range conflicts {
			c := &conflicts[i]
			if err := uc.sessionRepo.SetCapacityOverride(txCtx, c.SessionID, c.SeatsTaken); err != nil {
				uc.logger.Error("SwapTemplates: failed to pin capacity for session id=%d: %v", c.SessionID, err)
				return fmt.Errorf("%w: failed to pin session capacity: %v", ErrInternal, err)
			}
			uc.logger.Warn("SwapTemplates: session id=%d pinned at %d seats, new template capacity is %d",
				c.SessionID, c.SeatsTaken, c.NewCapacity)
		}

		// 2.6. Применяем обмен
		if err := uc.templateRepo.UpdateSchedule(txCtx, swappedA); err != nil {
			uc.logger.Error("SwapTemplates: failed to update template id=%d: %v", swappedA.ID, err)
			return fmt.Errorf("%w: failed to update template: %v", ErrInternal, err)
		}
		if err := uc.templateRepo.UpdateSchedule(txCtx, swappedB); err != nil {
			uc.logger.Error("SwapTemplates: failed to update template id=%d: %v", swappedB.ID, err)
			return fmt.Errorf("%w: failed to update template: %v", ErrInternal, err)
		}

		outcome := domain.SwapApplied
		if len(conflicts) > 0 {
			outcome = domain.SwapAppliedWithWarnings
		}

		result = &domain.SwapResult{
			Outcome:   outcome,
			TemplateA: swappedA,
			TemplateB: swappedB,
			Warnings:  conflicts,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("SwapTemplates: successfully swapped templates %d and %d, outcome=%s, warnings=%d",
		req.TemplateAID, req.TemplateBID, result.Outcome, len(result.Warnings))

	return &Response{
		Outcome:   string(result.Outcome),
		TemplateA: result.TemplateA,
		TemplateB: result.TemplateB,
		Warnings:  result.Warnings,
	}, nil
}

// getActiveTemplate получает шаблон с блокировкой строки и проверяет,
// что он активен
func (uc *UseCase) getActiveTemplate(ctx context.Context, id int64) (*domain.SlotTemplate, error) {
	t, err := uc.templateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, templateRepo.ErrTemplateNotFound) {
			uc.logger.Warn("SwapTemplates: template id=%d not found", id)
			return nil, ErrTemplateNotFound
		}
		uc.logger.Error("SwapTemplates: failed to get template id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get template: %v", ErrInternal, err)
	}

	if !t.IsActive() {
		uc.logger.Warn("SwapTemplates: template id=%d is deactivated", id)
		return nil, ErrTemplateInactive
	}

	return t, nil
}

// swapSchedules возвращает копии шаблонов с обменянным расписанием.
// Название шаблона и признак активности остаются на месте.
func swapSchedules(a, b *domain.SlotTemplate) (*domain.SlotTemplate, *domain.SlotTemplate) {
	swappedA := *a
	swappedB := *b

	swappedA.Weekday = b.Weekday
	swappedA.StartTime = b.StartTime
	swappedA.EndTime = b.EndTime
	swappedA.Capacity = b.Capacity
	swappedA.InstructorID = b.InstructorID

	swappedB.Weekday = a.Weekday
	swappedB.StartTime = a.StartTime
	swappedB.EndTime = a.EndTime
	swappedB.Capacity = a.Capacity
	swappedB.InstructorID = a.InstructorID

	return &swappedA, &swappedB
}
