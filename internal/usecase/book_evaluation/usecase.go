package book_evaluation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/GMS-ScheduleService/internal/domain"
	evaluationRepo "github.com/m04kA/GMS-ScheduleService/internal/infra/storage/evaluation"
	memberClient "github.com/m04kA/GMS-ScheduleService/internal/integrations/memberservice"
)

// UseCase use case для записи участника на физическую оценку
type UseCase struct {
	evaluationRepo EvaluationRepository
	memberClient   MemberServiceClient
	txManager      TransactionManager
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	evaluationRepo EvaluationRepository,
	memberClient MemberServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		evaluationRepo: evaluationRepo,
		memberClient:   memberClient,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case записи на оценку.
// Инвариант "не более одной активной записи на участника" гарантируется
// условной вставкой в сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookEvaluation: member=%d, requested_at=%s",
		req.MemberID, req.RequestedAt.Format("2006-01-02 15:04"))

	// 1. Валидация входных данных
	if req.MemberID <= 0 {
		return nil, fmt.Errorf("%w: memberID must be positive", ErrInvalidInput)
	}
	if req.RequestedAt.IsZero() {
		return nil, fmt.Errorf("%w: requestedAt is required", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()
	if req.RequestedAt.Before(now) {
		uc.logger.Warn("BookEvaluation: requested_at %s is in the past", req.RequestedAt.Format("2006-01-02 15:04"))
		return nil, ErrInvalidRequestedAt
	}

	// 2. Проверяем участника и его членство
	if _, err := uc.memberClient.CheckActiveMember(ctx, req.MemberID); err != nil {
		if errors.Is(err, memberClient.ErrMemberNotFound) {
			uc.logger.Warn("BookEvaluation: member id=%d not found", req.MemberID)
			return nil, ErrMemberNotFound
		}
		if errors.Is(err, memberClient.ErrMemberInactive) {
			uc.logger.Warn("BookEvaluation: member id=%d is inactive", req.MemberID)
			return nil, ErrMemberInactive
		}
		uc.logger.Error("BookEvaluation: failed to check member id=%d: %v", req.MemberID, err)
		return nil, fmt.Errorf("%w: failed to check member: %v", ErrInternal, err)
	}

	// Переменные для хранения результата
	var (
		result *domain.EvaluationReservation
		err    error
	)

	// 3. Условная вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		result, err = uc.evaluationRepo.CreateIfNoneActive(txCtx, req.MemberID, req.RequestedAt)
		if err != nil {
			if errors.Is(err, evaluationRepo.ErrActiveReservationExists) {
				uc.logger.Warn("BookEvaluation: member id=%d already has an active evaluation", req.MemberID)
				return ErrActiveEvaluationExists
			}
			uc.logger.Error("BookEvaluation: failed to create evaluation reservation: %v", err)
			return fmt.Errorf("%w: failed to create evaluation reservation: %v", ErrInternal, err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("BookEvaluation: successfully created evaluation reservation id=%d", result.ID)

	return &Response{
		ID:          result.ID,
		MemberID:    result.MemberID,
		RequestedAt: result.RequestedAt,
		Status:      string(result.Status),
		CreatedAt:   result.CreatedAt,
		UpdatedAt:   result.UpdatedAt,
	}, nil
}
