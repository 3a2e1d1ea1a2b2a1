package evaluations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GMS-ScheduleService/internal/domain"
	evaluationStore "github.com/m04kA/GMS-ScheduleService/internal/infra/storage/evaluation"
	"github.com/m04kA/GMS-ScheduleService/internal/service/evaluations/models"
	"github.com/m04kA/GMS-ScheduleService/pkg/ptr"
)

// ── фейки ──

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type passthroughTxManager struct{}

func (passthroughTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeEvaluationRepo struct {
	evaluations map[int64]*domain.EvaluationReservation
	assessments []*domain.Assessment
	nextID      int64
}

func newFakeEvaluationRepo(evaluations ...*domain.EvaluationReservation) *fakeEvaluationRepo {
	repo := &fakeEvaluationRepo{
		evaluations: make(map[int64]*domain.EvaluationReservation),
		nextID:      500,
	}
	for _, e := range evaluations {
		repo.evaluations[e.ID] = e
	}
	return repo
}

func (r *fakeEvaluationRepo) GetByID(_ context.Context, id int64) (*domain.EvaluationReservation, error) {
	e, ok := r.evaluations[id]
	if !ok {
		return nil, evaluationStore.ErrEvaluationNotFound
	}
	result := *e
	return &result, nil
}

func (r *fakeEvaluationRepo) GetActiveByMember(_ context.Context, memberID int64) (*domain.EvaluationReservation, error) {
	for _, e := range r.evaluations {
		if e.MemberID == memberID && e.Status == domain.StatusReservado {
			result := *e
			return &result, nil
		}
	}
	return nil, evaluationStore.ErrEvaluationNotFound
}

func (r *fakeEvaluationRepo) CancelActive(_ context.Context, memberID int64) error {
	for _, e := range r.evaluations {
		if e.MemberID == memberID && e.Status == domain.StatusReservado {
			e.Status = domain.StatusCancelado
			return nil
		}
	}
	return evaluationStore.ErrEvaluationNotFound
}

func (r *fakeEvaluationRepo) MarkPresente(_ context.Context, id int64, assessmentID int64) error {
	e, ok := r.evaluations[id]
	if !ok || e.Status != domain.StatusReservado {
		return evaluationStore.ErrNotReservado
	}
	e.Status = domain.StatusPresente
	e.AssessmentID = &assessmentID
	return nil
}

func (r *fakeEvaluationRepo) MarkFaltou(_ context.Context, id int64) error {
	e, ok := r.evaluations[id]
	if !ok || e.Status != domain.StatusReservado {
		return evaluationStore.ErrNotReservado
	}
	e.Status = domain.StatusFaltou
	return nil
}

func (r *fakeEvaluationRepo) CreateAssessment(_ context.Context, a *domain.Assessment) (*domain.Assessment, error) {
	created := *a
	created.ID = r.nextID
	r.nextID++
	r.assessments = append(r.assessments, &created)
	return &created, nil
}

// ── настройка ──

var testNow = time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)

func activeEvaluation(id, memberID int64) *domain.EvaluationReservation {
	return &domain.EvaluationReservation{
		ID:          id,
		MemberID:    memberID,
		RequestedAt: testNow.Add(-time.Hour),
		Status:      domain.StatusReservado,
	}
}

func setupService(repo *fakeEvaluationRepo) *Service {
	return NewService(repo, passthroughTxManager{}, fixedClock{t: testNow}, nopLogger{})
}

// ── тесты ──

func TestCancel_Success(t *testing.T) {
	repo := newFakeEvaluationRepo(activeEvaluation(1, 7))
	svc := setupService(repo)

	require.NoError(t, svc.Cancel(context.Background(), 7))
	assert.Equal(t, domain.StatusCancelado, repo.evaluations[1].Status)
}

func TestCancel_NoActiveEvaluation(t *testing.T) {
	svc := setupService(newFakeEvaluationRepo())

	err := svc.Cancel(context.Background(), 7)
	assert.ErrorIs(t, err, ErrNoActiveEvaluation)
}

func TestGetActive(t *testing.T) {
	repo := newFakeEvaluationRepo(activeEvaluation(1, 7))
	svc := setupService(repo)

	resp, err := svc.GetActive(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, string(domain.StatusReservado), resp.Status)

	_, err = svc.GetActive(context.Background(), 8)
	assert.ErrorIs(t, err, ErrNoActiveEvaluation)
}

func TestMarkAttendance_PresenteWithMeasurements(t *testing.T) {
	repo := newFakeEvaluationRepo(activeEvaluation(1, 7))
	svc := setupService(repo)

	resp, err := svc.MarkAttendance(context.Background(), 1, &models.MarkEvaluationAttendanceRequest{
		Present:    true,
		WeightKg:   ptr.Ptr(82.5),
		HeightCm:   ptr.Ptr(178.0),
		BodyFatPct: ptr.Ptr(18.2),
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPresente), resp.Evaluation.Status)
	require.NotNil(t, resp.Assessment)
	assert.Equal(t, 82.5, resp.Assessment.WeightKg)
	assert.Equal(t, int64(7), resp.Assessment.MemberID)
	assert.Equal(t, int64(1), resp.Assessment.EvaluationReservationID)

	// Оценка сохранена и привязана к записи
	require.Len(t, repo.assessments, 1)
	assert.Equal(t, domain.StatusPresente, repo.evaluations[1].Status)
	require.NotNil(t, repo.evaluations[1].AssessmentID)
	assert.Equal(t, repo.assessments[0].ID, *repo.evaluations[1].AssessmentID)
}

func TestMarkAttendance_Faltou(t *testing.T) {
	repo := newFakeEvaluationRepo(activeEvaluation(1, 7))
	svc := setupService(repo)

	resp, err := svc.MarkAttendance(context.Background(), 1, &models.MarkEvaluationAttendanceRequest{
		Present: false,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusFaltou), resp.Evaluation.Status)
	assert.Nil(t, resp.Assessment)
	assert.Empty(t, repo.assessments)
}

func TestMarkAttendance_PresenteRequiresMeasurements(t *testing.T) {
	svc := setupService(newFakeEvaluationRepo(activeEvaluation(1, 7)))

	_, err := svc.MarkAttendance(context.Background(), 1, &models.MarkEvaluationAttendanceRequest{
		Present: true,
	})
	assert.ErrorIs(t, err, ErrAssessmentRequired)

	_, err = svc.MarkAttendance(context.Background(), 1, &models.MarkEvaluationAttendanceRequest{
		Present:  true,
		WeightKg: ptr.Ptr(82.5),
	})
	assert.ErrorIs(t, err, ErrAssessmentRequired)
}

func TestMarkAttendance_InvalidMeasurements(t *testing.T) {
	svc := setupService(newFakeEvaluationRepo(activeEvaluation(1, 7)))

	_, err := svc.MarkAttendance(context.Background(), 1, &models.MarkEvaluationAttendanceRequest{
		Present:  true,
		WeightKg: ptr.Ptr(-1.0),
		HeightCm: ptr.Ptr(178.0),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.MarkAttendance(context.Background(), 1, &models.MarkEvaluationAttendanceRequest{
		Present:    true,
		WeightKg:   ptr.Ptr(82.5),
		HeightCm:   ptr.Ptr(178.0),
		BodyFatPct: ptr.Ptr(120.0),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMarkAttendance_NotFound(t *testing.T) {
	svc := setupService(newFakeEvaluationRepo())

	_, err := svc.MarkAttendance(context.Background(), 99, &models.MarkEvaluationAttendanceRequest{Present: false})
	assert.ErrorIs(t, err, ErrEvaluationNotFound)
}

func TestMarkAttendance_AlreadyFinalized(t *testing.T) {
	finalized := activeEvaluation(1, 7)
	finalized.Status = domain.StatusFaltou
	svc := setupService(newFakeEvaluationRepo(finalized))

	_, err := svc.MarkAttendance(context.Background(), 1, &models.MarkEvaluationAttendanceRequest{Present: false})
	assert.ErrorIs(t, err, ErrAlreadyFinalized)
}
