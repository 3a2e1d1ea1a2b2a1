package swap_templates

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GMS-ScheduleService/internal/domain"
	templateStore "github.com/m04kA/GMS-ScheduleService/internal/infra/storage/template"
	"github.com/m04kA/GMS-ScheduleService/pkg/ptr"
	"github.com/m04kA/GMS-ScheduleService/pkg/types"
)

// ── фейки ──

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type serialTxManager struct{ mu sync.Mutex }

func (m *serialTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type fakeTemplateRepo struct {
	templates map[int64]*domain.SlotTemplate
	updated   []int64
}

func (r *fakeTemplateRepo) GetByID(_ context.Context, id int64) (*domain.SlotTemplate, error) {
	t, ok := r.templates[id]
	if !ok {
		return nil, templateStore.ErrTemplateNotFound
	}
	result := *t
	return &result, nil
}

func (r *fakeTemplateRepo) UpdateSchedule(_ context.Context, t *domain.SlotTemplate) error {
	stored := *t
	r.templates[t.ID] = &stored
	r.updated = append(r.updated, t.ID)
	return nil
}

type fakeSessionRepo struct {
	sessions  []*domain.SessionWithSeats
	overrides map[int64]int // session_id -> зафиксированная вместимость
}

func (r *fakeSessionRepo) ListFutureByTemplates(_ context.Context, templateIDs []int64, _ string) ([]*domain.SessionWithSeats, error) {
	ids := make(map[int64]bool, len(templateIDs))
	for _, id := range templateIDs {
		ids[id] = true
	}

	var result []*domain.SessionWithSeats
	for _, s := range r.sessions {
		if ids[s.SlotTemplateID] {
			copied := *s
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *fakeSessionRepo) SetCapacityOverride(_ context.Context, id int64, capacity int) error {
	if r.overrides == nil {
		r.overrides = make(map[int64]int)
	}
	r.overrides[id] = capacity
	return nil
}

// ── настройка ──

var testNow = time.Date(2026, 9, 7, 12, 0, 0, 0, time.UTC)

func template(id int64, weekday time.Weekday, start, end string, capacity int, instructorID *int64) *domain.SlotTemplate {
	return &domain.SlotTemplate{
		ID:           id,
		Name:         fmt.Sprintf("Template %d", id),
		Weekday:      weekday,
		StartTime:    types.TimeString(start),
		EndTime:      types.TimeString(end),
		Capacity:     capacity,
		InstructorID: instructorID,
		Active:       true,
	}
}

func futureSession(id, templateID int64, seatsTaken int) *domain.SessionWithSeats {
	return &domain.SessionWithSeats{
		Session: domain.Session{
			ID:             id,
			SlotTemplateID: templateID,
			SessionDate:    time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC),
			Room:           1,
		},
		SeatsTaken: seatsTaken,
	}
}

func setupUseCase(templateRepo *fakeTemplateRepo, sessionRepo *fakeSessionRepo) *UseCase {
	uc := NewUseCase(templateRepo, sessionRepo, &serialTxManager{}, nopLogger{})
	uc.timeProvider = fixedClock{t: testNow}
	return uc
}

func twoTemplates() *fakeTemplateRepo {
	return &fakeTemplateRepo{
		templates: map[int64]*domain.SlotTemplate{
			1: template(1, time.Monday, "08:00", "09:00", 20, ptr.Ptr(int64(101))),
			2: template(2, time.Wednesday, "19:00", "20:00", 5, ptr.Ptr(int64(102))),
		},
	}
}

// ── тесты ──

func TestExecute_InvalidInput(t *testing.T) {
	uc := setupUseCase(twoTemplates(), &fakeSessionRepo{})

	_, err := uc.Execute(context.Background(), &Request{TemplateAID: 0, TemplateBID: 2})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{TemplateAID: 1, TemplateBID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_TemplateNotFound(t *testing.T) {
	uc := setupUseCase(twoTemplates(), &fakeSessionRepo{})

	_, err := uc.Execute(context.Background(), &Request{TemplateAID: 1, TemplateBID: 99})
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestExecute_TemplateInactive(t *testing.T) {
	repo := twoTemplates()
	repo.templates[2].Active = false
	uc := setupUseCase(repo, &fakeSessionRepo{})

	_, err := uc.Execute(context.Background(), &Request{TemplateAID: 1, TemplateBID: 2})
	assert.ErrorIs(t, err, ErrTemplateInactive)
}

func TestExecute_CleanSwap(t *testing.T) {
	repo := twoTemplates()
	uc := setupUseCase(repo, &fakeSessionRepo{})

	resp, err := uc.Execute(context.Background(), &Request{TemplateAID: 1, TemplateBID: 2})
	require.NoError(t, err)

	assert.Equal(t, string(domain.SwapApplied), resp.Outcome)
	assert.Empty(t, resp.Warnings)

	// Расписание обменялось, названия остались на месте
	assert.Equal(t, time.Wednesday, resp.TemplateA.Weekday)
	assert.Equal(t, types.TimeString("19:00"), resp.TemplateA.StartTime)
	assert.Equal(t, 5, resp.TemplateA.Capacity)
	assert.Equal(t, int64(102), *resp.TemplateA.InstructorID)
	assert.Equal(t, "Template 1", resp.TemplateA.Name)

	assert.Equal(t, time.Monday, resp.TemplateB.Weekday)
	assert.Equal(t, 20, resp.TemplateB.Capacity)
	assert.Equal(t, int64(101), *resp.TemplateB.InstructorID)
	assert.Equal(t, "Template 2", resp.TemplateB.Name)

	// Оба шаблона сохранены
	assert.ElementsMatch(t, []int64{1, 2}, repo.updated)
}

func TestExecute_ConflictWithoutForce(t *testing.T) {
	repo := twoTemplates()
	// 8 занятых мест против новой вместимости 5 после обмена
	sessions := &fakeSessionRepo{
		sessions: []*domain.SessionWithSeats{futureSession(300, 1, 8)},
	}
	uc := setupUseCase(repo, sessions)

	_, err := uc.Execute(context.Background(), &Request{TemplateAID: 1, TemplateBID: 2})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCapacityConflict)

	var conflictErr *CapacityConflictError
	require.True(t, errors.As(err, &conflictErr))
	require.Len(t, conflictErr.Conflicts, 1)
	assert.Equal(t, int64(300), conflictErr.Conflicts[0].SessionID)
	assert.Equal(t, 8, conflictErr.Conflicts[0].SeatsTaken)
	assert.Equal(t, 5, conflictErr.Conflicts[0].NewCapacity)

	// Обмен отклонён целиком: шаблоны не тронуты
	assert.Empty(t, repo.updated)
	assert.Empty(t, sessions.overrides)
	assert.Equal(t, time.Monday, repo.templates[1].Weekday)
}

func TestExecute_ForcedSwapPinsConflictingSessions(t *testing.T) {
	repo := twoTemplates()
	sessions := &fakeSessionRepo{
		sessions: []*domain.SessionWithSeats{
			futureSession(300, 1, 8), // конфликт: 8 > 5
			futureSession(301, 1, 3), // без конфликта
		},
	}
	uc := setupUseCase(repo, sessions)

	resp, err := uc.Execute(context.Background(), &Request{TemplateAID: 1, TemplateBID: 2, Force: true})
	require.NoError(t, err)

	assert.Equal(t, string(domain.SwapAppliedWithWarnings), resp.Outcome)
	require.Len(t, resp.Warnings, 1)
	assert.Equal(t, int64(300), resp.Warnings[0].SessionID)

	// Конфликтующая сессия зафиксирована на текущей занятости:
	// бронирования не отменяются, новых мест не появляется
	assert.Equal(t, map[int64]int{300: 8}, sessions.overrides)

	// Обмен применён
	assert.Equal(t, 5, repo.templates[1].Capacity)
	assert.Equal(t, 20, repo.templates[2].Capacity)
}

func TestExecute_PinnedSessionDoesNotConflictAgain(t *testing.T) {
	repo := twoTemplates()
	pinned := futureSession(300, 1, 8)
	pinned.CapacityOverride = ptr.Ptr(8)
	sessions := &fakeSessionRepo{
		sessions: []*domain.SessionWithSeats{pinned},
	}
	uc := setupUseCase(repo, sessions)

	// Сессия уже зафиксирована прошлым обменом: 8 <= 8, конфликта нет
	resp, err := uc.Execute(context.Background(), &Request{TemplateAID: 1, TemplateBID: 2})
	require.NoError(t, err)
	assert.Equal(t, string(domain.SwapApplied), resp.Outcome)
}

func TestExecute_SeatsWithinNewCapacity(t *testing.T) {
	repo := twoTemplates()
	sessions := &fakeSessionRepo{
		sessions: []*domain.SessionWithSeats{
			futureSession(300, 1, 4), // 4 <= 5, проходит
			futureSession(310, 2, 5), // шаблон B получает вместимость 20
		},
	}
	uc := setupUseCase(repo, sessions)

	resp, err := uc.Execute(context.Background(), &Request{TemplateAID: 1, TemplateBID: 2})
	require.NoError(t, err)
	assert.Equal(t, string(domain.SwapApplied), resp.Outcome)
	assert.Empty(t, resp.Warnings)
}
