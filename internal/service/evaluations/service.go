package evaluations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/GMS-ScheduleService/internal/domain"
	evaluationRepo "github.com/m04kA/GMS-ScheduleService/internal/infra/storage/evaluation"
	"github.com/m04kA/GMS-ScheduleService/internal/service/evaluations/models"
)

// Service сервис для управления записями на физическую оценку
type Service struct {
	evaluationRepo EvaluationRepository
	txManager      TxManager
	timeProvider   TimeProvider
	logger         Logger
}

// NewService создает новый экземпляр сервиса оценок
func NewService(
	evaluationRepo EvaluationRepository,
	txManager TxManager,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		evaluationRepo: evaluationRepo,
		txManager:      txManager,
		timeProvider:   timeProvider,
		logger:         logger,
	}
}

// Cancel отменяет активную запись участника на оценку
func (s *Service) Cancel(ctx context.Context, memberID int64) error {
	s.logger.Info("CancelEvaluation: member_id=%d", memberID)

	if err := s.evaluationRepo.CancelActive(ctx, memberID); err != nil {
		if errors.Is(err, evaluationRepo.ErrEvaluationNotFound) {
			s.logger.Warn("CancelEvaluation: no active evaluation for member_id=%d", memberID)
			return ErrNoActiveEvaluation
		}
		s.logger.Error("CancelEvaluation: repository error for member_id=%d: %v", memberID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CancelEvaluation: successfully cancelled evaluation for member_id=%d", memberID)
	return nil
}

// GetActive возвращает активную запись участника на оценку
func (s *Service) GetActive(ctx context.Context, memberID int64) (*models.EvaluationResponse, error) {
	evaluation, err := s.evaluationRepo.GetActiveByMember(ctx, memberID)
	if err != nil {
		if errors.Is(err, evaluationRepo.ErrEvaluationNotFound) {
			return nil, ErrNoActiveEvaluation
		}
		s.logger.Error("GetActiveEvaluation: repository error for member_id=%d: %v", memberID, err)
		return nil, fmt.Errorf("%w: GetActive - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainEvaluation(evaluation), nil
}

// MarkAttendance закрывает запись на оценку. Отметка Presente требует
// данных измерений: оценка сохраняется и привязывается к записи в одной
// транзакции, запись без оценки в Presente попасть не может.
func (s *Service) MarkAttendance(ctx context.Context, evaluationID int64, req *models.MarkEvaluationAttendanceRequest) (*models.MarkEvaluationAttendanceResponse, error) {
	s.logger.Info("MarkEvaluationAttendance: evaluation_id=%d, present=%t", evaluationID, req.Present)

	if req.Present {
		if err := validateMeasurements(req); err != nil {
			s.logger.Warn("MarkEvaluationAttendance: validation failed for evaluation_id=%d: %v", evaluationID, err)
			return nil, err
		}
	}

	var resp *models.MarkEvaluationAttendanceResponse

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		evaluation, err := s.evaluationRepo.GetByID(ctx, evaluationID)
		if err != nil {
			if errors.Is(err, evaluationRepo.ErrEvaluationNotFound) {
				return ErrEvaluationNotFound
			}
			return fmt.Errorf("get evaluation: %w", err)
		}

		if evaluation.Status.IsTerminal() {
			return ErrAlreadyFinalized
		}

		var assessment *domain.Assessment
		if req.Present {
			assessment, err = s.evaluationRepo.CreateAssessment(ctx, &domain.Assessment{
				MemberID:                evaluation.MemberID,
				EvaluationReservationID: evaluation.ID,
				MeasuredAt:              s.timeProvider.Now(),
				WeightKg:                *req.WeightKg,
				HeightCm:                *req.HeightCm,
				BodyFatPct:              req.BodyFatPct,
				Notes:                   req.Notes,
			})
			if err != nil {
				return fmt.Errorf("create assessment: %w", err)
			}

			if err := s.evaluationRepo.MarkPresente(ctx, evaluation.ID, assessment.ID); err != nil {
				return fmt.Errorf("mark presente: %w", err)
			}

			evaluation.Status = domain.StatusPresente
			evaluation.AssessmentID = &assessment.ID
		} else {
			if err := s.evaluationRepo.MarkFaltou(ctx, evaluation.ID); err != nil {
				return fmt.Errorf("mark faltou: %w", err)
			}

			evaluation.Status = domain.StatusFaltou
		}

		resp = &models.MarkEvaluationAttendanceResponse{
			Evaluation: *models.FromDomainEvaluation(evaluation),
			Assessment: models.FromDomainAssessment(assessment),
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrEvaluationNotFound) || errors.Is(err, ErrAlreadyFinalized) {
			s.logger.Warn("MarkEvaluationAttendance: evaluation_id=%d rejected: %v", evaluationID, err)
			return nil, err
		}
		s.logger.Error("MarkEvaluationAttendance: transaction failed for evaluation_id=%d: %v", evaluationID, err)
		return nil, fmt.Errorf("%w: MarkAttendance - transaction error: %v", ErrInternal, err)
	}

	s.logger.Info("MarkEvaluationAttendance: evaluation_id=%d closed with status=%s",
		evaluationID, resp.Evaluation.Status)
	return resp, nil
}

// validateMeasurements валидирует данные измерений для отметки Presente
func validateMeasurements(req *models.MarkEvaluationAttendanceRequest) error {
	if req.WeightKg == nil || req.HeightCm == nil {
		return ErrAssessmentRequired
	}
	if *req.WeightKg <= 0 {
		return fmt.Errorf("%w: weightKg must be positive", ErrInvalidInput)
	}
	if *req.HeightCm <= 0 {
		return fmt.Errorf("%w: heightCm must be positive", ErrInvalidInput)
	}
	if req.BodyFatPct != nil && (*req.BodyFatPct < 0 || *req.BodyFatPct > 100) {
		return fmt.Errorf("%w: bodyFatPct must be in range 0..100", ErrInvalidInput)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes is too long", ErrInvalidInput)
	}
	return nil
}
