package book_class

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/GMS-ScheduleService/internal/domain"
	reservationRepo "github.com/m04kA/GMS-ScheduleService/internal/infra/storage/reservation"
	sessionRepo "github.com/m04kA/GMS-ScheduleService/internal/infra/storage/session"
	memberClient "github.com/m04kA/GMS-ScheduleService/internal/integrations/memberservice"
)

// UseCase use case для бронирования места на сессии занятия
type UseCase struct {
	sessionRepo     SessionRepository
	reservationRepo ReservationRepository
	memberClient    MemberServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessionRepo SessionRepository,
	reservationRepo ReservationRepository,
	memberClient MemberServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		sessionRepo:     sessionRepo,
		reservationRepo: reservationRepo,
		memberClient:    memberClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case бронирования места.
// Проверка вместимости и вставка выполняются в сериализуемой транзакции:
// при N конкурентных запросах на сессию с K свободными местами успеха
// добьются ровно K участников.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookClass: member=%d, session=%d", req.MemberID, req.SessionID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookClass: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем участника и его членство
	if _, err := uc.memberClient.CheckActiveMember(ctx, req.MemberID); err != nil {
		if errors.Is(err, memberClient.ErrMemberNotFound) {
			uc.logger.Warn("BookClass: member id=%d not found", req.MemberID)
			return nil, ErrMemberNotFound
		}
		if errors.Is(err, memberClient.ErrMemberInactive) {
			uc.logger.Warn("BookClass: member id=%d is inactive", req.MemberID)
			return nil, ErrMemberInactive
		}
		uc.logger.Error("BookClass: failed to check member id=%d: %v", req.MemberID, err)
		return nil, fmt.Errorf("%w: failed to check member: %v", ErrInternal, err)
	}

	// Переменные для хранения результата
	var (
		result  *domain.Reservation
		session *domain.SessionWithSeats
		err     error
	)

	// 4. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Получаем сессию со счётчиком мест и блокировкой строки
		session, err = uc.sessionRepo.GetWithSeats(txCtx, req.SessionID)
		if err != nil {
			if errors.Is(err, sessionRepo.ErrSessionNotFound) {
				uc.logger.Warn("BookClass: session id=%d not found", req.SessionID)
				return ErrSessionNotFound
			}
			uc.logger.Error("BookClass: failed to get session id=%d: %v", req.SessionID, err)
			return fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
		}

		// 4.2. Прошедшие сессии бронировать нельзя
		if sessionOccurred(session.SessionDate, now) {
			uc.logger.Warn("BookClass: session id=%d date=%s has already occurred",
				req.SessionID, session.SessionDate.Format(domain.DateFormat))
			return ErrSessionAlreadyOccurred
		}

		// 4.3. Повторное бронирование той же сессии запрещено
		hasReservation, err := uc.reservationRepo.HasNonCancelled(txCtx, req.MemberID, req.SessionID)
		if err != nil {
			uc.logger.Error("BookClass: failed to check existing reservation: %v", err)
			return fmt.Errorf("%w: failed to check existing reservation: %v", ErrInternal, err)
		}
		if hasReservation {
			uc.logger.Warn("BookClass: member id=%d already booked session id=%d", req.MemberID, req.SessionID)
			return ErrAlreadyBooked
		}

		// 4.4. Быстрая проверка вместимости по ledger-счётчику
		if session.IsFull() {
			uc.logger.Warn("BookClass: session id=%d is full, %d/%d seats taken",
				req.SessionID, session.SeatsTaken, session.Capacity)
			return ErrSessionFull
		}

		// 4.5. Атомарная вставка с повторной проверкой места внутри запроса
		result, err = uc.reservationRepo.CreateIfSeatAvailable(txCtx, req.MemberID, req.SessionID, now)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrNoSeatAvailable) {
				uc.logger.Warn("BookClass: seat taken concurrently for session id=%d", req.SessionID)
				return ErrSessionFull
			}
			if errors.Is(err, reservationRepo.ErrAlreadyReserved) {
				return ErrAlreadyBooked
			}
			uc.logger.Error("BookClass: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("BookClass: successfully created reservation id=%d, %d/%d seats taken",
		result.ID, session.SeatsTaken+1, session.Capacity)

	// Конвертируем в response
	return &Response{
		ID:         result.ID,
		MemberID:   result.MemberID,
		SessionID:  result.SessionID,
		ReservedAt: result.ReservedAt,
		Status:     string(result.Status),
		// Денормализация данных сессии
		ClassName:      session.ClassName,
		SessionDate:    session.SessionDate.Format(domain.DateFormat),
		StartTime:      session.StartTime.String(),
		EndTime:        session.EndTime.String(),
		Room:           session.Room,
		SeatsRemaining: session.Capacity - session.SeatsTaken - 1,
		CreatedAt:      result.CreatedAt,
		UpdatedAt:      result.UpdatedAt,
	}, nil
}

// sessionOccurred возвращает true, если дата сессии уже прошла
func sessionOccurred(sessionDate, now time.Time) bool {
	today := time.Date(now.UTC().Year(), now.UTC().Month(), now.UTC().Day(), 0, 0, 0, 0, time.UTC)
	day := sessionDate.UTC()
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return day.Before(today)
}
