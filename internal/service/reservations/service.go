package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/GMS-ScheduleService/internal/domain"
	reservationRepo "github.com/m04kA/GMS-ScheduleService/internal/infra/storage/reservation"
	"github.com/m04kA/GMS-ScheduleService/internal/service/reservations/models"
)

// Service сервис для управления бронированиями
type Service struct {
	reservationRepo ReservationRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(reservationRepo ReservationRepository, logger Logger) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		logger:          logger,
	}
}

// Cancel отменяет активное бронирование пары (участник, сессия).
// Переход Reservado -> Cancelado освобождает место немедленно:
// следующее бронирование на сессию увидит его свободным.
func (s *Service) Cancel(ctx context.Context, memberID, sessionID int64) error {
	s.logger.Info("CancelReservation: member_id=%d, session_id=%d", memberID, sessionID)

	if err := s.reservationRepo.CancelActive(ctx, memberID, sessionID); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("CancelReservation: active reservation not found for member_id=%d, session_id=%d",
				memberID, sessionID)
			return ErrReservationNotFound
		}
		s.logger.Error("CancelReservation: repository error for member_id=%d, session_id=%d: %v",
			memberID, sessionID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CancelReservation: successfully cancelled reservation for member_id=%d, session_id=%d",
		memberID, sessionID)
	return nil
}

// ListByMember возвращает бронирования участника.
// Статус и дата начала выборки опциональны.
func (s *Service) ListByMember(ctx context.Context, memberID int64, statusStr, fromDateStr string) (*models.ReservationListResponse, error) {
	filter := domain.MemberReservationsFilter{MemberID: memberID}

	if statusStr != "" {
		status, ok := domain.ParseReservationStatus(statusStr)
		if !ok {
			s.logger.Warn("ListByMember: invalid status filter %q", statusStr)
			return nil, fmt.Errorf("%w: unknown reservation status %q", ErrInvalidInput, statusStr)
		}
		filter.Status = &status
	}

	if fromDateStr != "" {
		fromDate, err := time.Parse(domain.DateFormat, fromDateStr)
		if err != nil {
			s.logger.Warn("ListByMember: invalid fromDate %q: %v", fromDateStr, err)
			return nil, fmt.Errorf("%w: fromDate must be in YYYY-MM-DD format", ErrInvalidInput)
		}
		filter.FromDate = &fromDate
	}

	reservations, err := s.reservationRepo.ListByMemberWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListByMember: repository error for member_id=%d: %v", memberID, err)
		return nil, fmt.Errorf("%w: ListByMember - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservationList(reservations), nil
}
