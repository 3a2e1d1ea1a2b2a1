package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/GMS-ScheduleService/internal/config"
	"github.com/m04kA/GMS-ScheduleService/internal/domain"
	sessionRepo "github.com/m04kA/GMS-ScheduleService/internal/infra/storage/session"
	"github.com/m04kA/GMS-ScheduleService/internal/service/attendance/models"
)

// Service сервис закрытия посещаемости сессий
type Service struct {
	sessionRepo     SessionRepository
	reservationRepo ReservationRepository
	txManager       TxManager
	booking         config.BookingConfig
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса посещаемости
func NewService(
	sessionRepo SessionRepository,
	reservationRepo ReservationRepository,
	txManager TxManager,
	booking config.BookingConfig,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		sessionRepo:     sessionRepo,
		reservationRepo: reservationRepo,
		txManager:       txManager,
		booking:         booking,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Mark закрывает посещаемость сессии: участники из presentMemberIDs
// переводятся в Presente, остальные активные бронирования - в Faltou.
// Затрагиваются только строки в статусе Reservado, поэтому повторный
// вызов идемпотентен: полностью закрытая сессия возвращает нулевые
// счётчики и флаг AlreadyFinalized.
func (s *Service) Mark(ctx context.Context, sessionID int64, presentMemberIDs []int64) (*models.MarkAttendanceResponse, error) {
	s.logger.Info("MarkAttendance: session_id=%d, present=%d", sessionID, len(presentMemberIDs))

	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			s.logger.Warn("MarkAttendance: session id=%d not found", sessionID)
			return nil, ErrSessionNotFound
		}
		s.logger.Error("MarkAttendance: repository error for session id=%d: %v", sessionID, err)
		return nil, fmt.Errorf("%w: Mark - repository error: %v", ErrInternal, err)
	}

	if err := s.checkSessionOccurred(session); err != nil {
		s.logger.Warn("MarkAttendance: session id=%d date=%s has not yet occurred",
			sessionID, session.SessionDate.Format(domain.DateFormat))
		return nil, err
	}

	resp := &models.MarkAttendanceResponse{SessionID: sessionID}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		active, err := s.reservationRepo.CountActive(ctx, sessionID)
		if err != nil {
			return fmt.Errorf("count active reservations: %w", err)
		}

		if active == 0 {
			resp.AlreadyFinalized = true
			return nil
		}

		presente, faltou, err := s.reservationRepo.MarkAttendance(ctx, sessionID, presentMemberIDs)
		if err != nil {
			return fmt.Errorf("mark attendance: %w", err)
		}

		resp.MarkedPresente = presente
		resp.MarkedFaltou = faltou
		return nil
	})
	if err != nil {
		s.logger.Error("MarkAttendance: transaction failed for session id=%d: %v", sessionID, err)
		return nil, fmt.Errorf("%w: Mark - transaction error: %v", ErrInternal, err)
	}

	if resp.AlreadyFinalized {
		s.logger.Info("MarkAttendance: session id=%d already finalized, nothing to do", sessionID)
	} else {
		s.logger.Info("MarkAttendance: session id=%d closed, presente=%d, faltou=%d",
			sessionID, resp.MarkedPresente, resp.MarkedFaltou)
	}

	return resp, nil
}

// checkSessionOccurred проверяет, что занятие уже прошло.
// С включённым AllowSameDayAttendance посещаемость можно закрывать
// в день занятия, не дожидаясь полуночи.
func (s *Service) checkSessionOccurred(session *domain.Session) error {
	now := s.timeProvider.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	sessionDay := session.SessionDate.UTC()
	sessionDay = time.Date(sessionDay.Year(), sessionDay.Month(), sessionDay.Day(), 0, 0, 0, 0, time.UTC)

	if s.booking.AllowSameDayAttendance {
		if sessionDay.After(today) {
			return ErrSessionNotYetOccurred
		}
		return nil
	}

	if !sessionDay.Before(today) {
		return ErrSessionNotYetOccurred
	}

	return nil
}
