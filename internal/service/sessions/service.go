package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/GMS-ScheduleService/internal/config"
	"github.com/m04kA/GMS-ScheduleService/internal/domain"
	sessionRepo "github.com/m04kA/GMS-ScheduleService/internal/infra/storage/session"
	templateRepo "github.com/m04kA/GMS-ScheduleService/internal/infra/storage/template"
	"github.com/m04kA/GMS-ScheduleService/internal/service/sessions/models"
)

// Service сервис для управления сессиями занятий
type Service struct {
	sessionRepo  SessionRepository
	templateRepo TemplateRepository
	booking      config.BookingConfig
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса сессий
func NewService(
	sessionRepo SessionRepository,
	templateRepo TemplateRepository,
	booking config.BookingConfig,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		sessionRepo:  sessionRepo,
		templateRepo: templateRepo,
		booking:      booking,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Create создает сессию по шаблону на конкретную дату
func (s *Service) Create(ctx context.Context, req *models.CreateSessionRequest) (*models.SessionResponse, error) {
	s.logger.Info("CreateSession: template_id=%d, date=%s, room=%d",
		req.SlotTemplateID, req.SessionDate, req.Room)

	sessionDate, err := time.Parse(domain.DateFormat, req.SessionDate)
	if err != nil {
		s.logger.Warn("CreateSession: invalid date format %q: %v", req.SessionDate, err)
		return nil, fmt.Errorf("%w: sessionDate must be in YYYY-MM-DD format", ErrInvalidInput)
	}

	if req.Room < domain.MinRoomNumber {
		return nil, fmt.Errorf("%w: room must be a positive number", ErrInvalidInput)
	}

	if err := s.validateSessionDate(sessionDate); err != nil {
		s.logger.Warn("CreateSession: date policy rejected %s: %v", req.SessionDate, err)
		return nil, err
	}

	template, err := s.templateRepo.GetByID(ctx, req.SlotTemplateID)
	if err != nil {
		if errors.Is(err, templateRepo.ErrTemplateNotFound) {
			s.logger.Warn("CreateSession: template id=%d not found", req.SlotTemplateID)
			return nil, ErrTemplateNotFound
		}
		s.logger.Error("CreateSession: repository error for template id=%d: %v", req.SlotTemplateID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	if !template.IsActive() {
		s.logger.Warn("CreateSession: template id=%d is deactivated", req.SlotTemplateID)
		return nil, ErrTemplateInactive
	}

	if !template.MatchesDate(sessionDate) {
		s.logger.Warn("CreateSession: date %s (weekday %d) does not match template weekday %d",
			req.SessionDate, sessionDate.Weekday(), template.Weekday)
		return nil, ErrWeekdayMismatch
	}

	created, err := s.sessionRepo.Create(ctx, &domain.Session{
		SlotTemplateID: req.SlotTemplateID,
		SessionDate:    sessionDate,
		Room:           req.Room,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrDuplicateSession) {
			s.logger.Warn("CreateSession: active session already exists for template id=%d, date=%s",
				req.SlotTemplateID, req.SessionDate)
			return nil, ErrDuplicateSession
		}
		s.logger.Error("CreateSession: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateSession: successfully created session id=%d", created.ID)
	return models.FromDomainSession(created), nil
}

// ListAvailable возвращает активные сессии со счётчиком мест начиная
// с указанной даты. Пустая или прошедшая дата заменяется на сегодня.
func (s *Service) ListAvailable(ctx context.Context, fromDateStr string) (*models.AvailableSessionListResponse, error) {
	today := s.today()

	fromDate := today
	if fromDateStr != "" {
		parsed, err := time.Parse(domain.DateFormat, fromDateStr)
		if err != nil {
			s.logger.Warn("ListAvailable: invalid fromDate %q: %v", fromDateStr, err)
			return nil, fmt.Errorf("%w: fromDate must be in YYYY-MM-DD format", ErrInvalidInput)
		}
		if parsed.After(today) {
			fromDate = parsed
		}
	}

	sessions, err := s.sessionRepo.ListAvailable(ctx, fromDate.Format(domain.DateFormat))
	if err != nil {
		s.logger.Error("ListAvailable: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAvailable - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSessionWithSeatsList(sessions), nil
}

// Deactivate мягко удаляет сессию.
// Существующие бронирования не затрагиваются.
func (s *Service) Deactivate(ctx context.Context, sessionID int64) error {
	s.logger.Info("DeactivateSession: deactivating session id=%d", sessionID)

	if err := s.sessionRepo.Deactivate(ctx, sessionID); err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			s.logger.Warn("DeactivateSession: session id=%d not found or already deactivated", sessionID)
			return ErrSessionNotFound
		}
		s.logger.Error("DeactivateSession: repository error for session id=%d: %v", sessionID, err)
		return fmt.Errorf("%w: Deactivate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeactivateSession: successfully deactivated session id=%d", sessionID)
	return nil
}

// validateSessionDate проверяет дату сессии против политик бронирования
func (s *Service) validateSessionDate(sessionDate time.Time) error {
	today := s.today()

	if sessionDate.Before(today) && !s.booking.AllowPastSessions {
		return ErrInvalidDate
	}

	if s.booking.AdvanceBookingDays > 0 {
		horizon := today.AddDate(0, 0, s.booking.AdvanceBookingDays)
		if sessionDate.After(horizon) {
			return ErrDateTooFarInFuture
		}
	}

	return nil
}

// today возвращает текущую дату без компоненты времени (UTC)
func (s *Service) today() time.Time {
	now := s.timeProvider.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
