package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GMS-ScheduleService/internal/config"
	"github.com/m04kA/GMS-ScheduleService/internal/domain"
	sessionStore "github.com/m04kA/GMS-ScheduleService/internal/infra/storage/session"
	templateStore "github.com/m04kA/GMS-ScheduleService/internal/infra/storage/template"
	"github.com/m04kA/GMS-ScheduleService/internal/service/sessions/models"
)

// ── фейки ──

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type fakeSessionRepo struct {
	sessions       map[int64]*domain.Session
	available      []*domain.SessionWithSeats
	lastFromDate   string
	nextID         int64
	duplicateOnKey string // дата, для которой имитируется нарушение уникального индекса
}

func (r *fakeSessionRepo) Create(_ context.Context, s *domain.Session) (*domain.Session, error) {
	key := s.SessionDate.Format(domain.DateFormat)
	if r.duplicateOnKey == key {
		return nil, sessionStore.ErrDuplicateSession
	}

	if r.sessions == nil {
		r.sessions = make(map[int64]*domain.Session)
	}
	r.nextID++
	created := *s
	created.ID = r.nextID
	r.sessions[created.ID] = &created
	return &created, nil
}

func (r *fakeSessionRepo) ExistsActive(_ context.Context, _ int64, date string) (bool, error) {
	return r.duplicateOnKey == date, nil
}

func (r *fakeSessionRepo) ListAvailable(_ context.Context, fromDate string) ([]*domain.SessionWithSeats, error) {
	r.lastFromDate = fromDate
	return r.available, nil
}

func (r *fakeSessionRepo) Deactivate(_ context.Context, id int64) error {
	s, ok := r.sessions[id]
	if !ok || s.DeactivatedAt != nil {
		return sessionStore.ErrSessionNotFound
	}
	now := time.Now()
	s.DeactivatedAt = &now
	return nil
}

type fakeTemplateRepo struct {
	templates map[int64]*domain.SlotTemplate
}

func (r *fakeTemplateRepo) GetByID(_ context.Context, id int64) (*domain.SlotTemplate, error) {
	t, ok := r.templates[id]
	if !ok {
		return nil, templateStore.ErrTemplateNotFound
	}
	result := *t
	return &result, nil
}

// ── настройка ──

// Понедельник
var testNow = time.Date(2026, 9, 7, 12, 0, 0, 0, time.UTC)

func wednesdayTemplate() *domain.SlotTemplate {
	return &domain.SlotTemplate{
		ID:        1,
		Name:      "CrossFit",
		Weekday:   time.Wednesday,
		StartTime: "08:00",
		EndTime:   "09:00",
		Capacity:  15,
		Active:    true,
	}
}

func setupService(sessions *fakeSessionRepo, booking config.BookingConfig) *Service {
	templates := &fakeTemplateRepo{
		templates: map[int64]*domain.SlotTemplate{1: wednesdayTemplate()},
	}
	return NewService(sessions, templates, booking, fixedClock{t: testNow}, nopLogger{})
}

// ── тесты ──

func TestCreate_Success(t *testing.T) {
	repo := &fakeSessionRepo{}
	svc := setupService(repo, config.BookingConfig{AdvanceBookingDays: 30})

	resp, err := svc.Create(context.Background(), &models.CreateSessionRequest{
		SlotTemplateID: 1,
		SessionDate:    "2026-09-09", // среда
		Room:           2,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.SlotTemplateID)
	assert.Equal(t, "2026-09-09", resp.SessionDate)
	assert.Equal(t, 2, resp.Room)
}

func TestCreate_InvalidInput(t *testing.T) {
	svc := setupService(&fakeSessionRepo{}, config.BookingConfig{})

	_, err := svc.Create(context.Background(), &models.CreateSessionRequest{
		SlotTemplateID: 1,
		SessionDate:    "09/09/2026",
		Room:           2,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), &models.CreateSessionRequest{
		SlotTemplateID: 1,
		SessionDate:    "2026-09-09",
		Room:           0,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreate_PastDate(t *testing.T) {
	svc := setupService(&fakeSessionRepo{}, config.BookingConfig{})

	_, err := svc.Create(context.Background(), &models.CreateSessionRequest{
		SlotTemplateID: 1,
		SessionDate:    "2026-09-02", // прошедшая среда
		Room:           2,
	})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestCreate_PastDateAllowedByPolicy(t *testing.T) {
	svc := setupService(&fakeSessionRepo{}, config.BookingConfig{AllowPastSessions: true})

	_, err := svc.Create(context.Background(), &models.CreateSessionRequest{
		SlotTemplateID: 1,
		SessionDate:    "2026-09-02",
		Room:           2,
	})
	require.NoError(t, err)
}

func TestCreate_BeyondHorizon(t *testing.T) {
	svc := setupService(&fakeSessionRepo{}, config.BookingConfig{AdvanceBookingDays: 30})

	// 2026-10-14 - среда за пределами 30-дневного горизонта
	_, err := svc.Create(context.Background(), &models.CreateSessionRequest{
		SlotTemplateID: 1,
		SessionDate:    "2026-10-14",
		Room:           2,
	})
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestCreate_NoHorizonWhenZero(t *testing.T) {
	svc := setupService(&fakeSessionRepo{}, config.BookingConfig{})

	_, err := svc.Create(context.Background(), &models.CreateSessionRequest{
		SlotTemplateID: 1,
		SessionDate:    "2027-09-08", // среда через год
		Room:           2,
	})
	require.NoError(t, err)
}

func TestCreate_TemplateNotFound(t *testing.T) {
	svc := setupService(&fakeSessionRepo{}, config.BookingConfig{})

	_, err := svc.Create(context.Background(), &models.CreateSessionRequest{
		SlotTemplateID: 99,
		SessionDate:    "2026-09-09",
		Room:           2,
	})
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestCreate_TemplateInactive(t *testing.T) {
	svc := setupService(&fakeSessionRepo{}, config.BookingConfig{})
	deactivated := time.Now()
	svc.templateRepo.(*fakeTemplateRepo).templates[1].Active = false
	svc.templateRepo.(*fakeTemplateRepo).templates[1].DeactivatedAt = &deactivated

	_, err := svc.Create(context.Background(), &models.CreateSessionRequest{
		SlotTemplateID: 1,
		SessionDate:    "2026-09-09",
		Room:           2,
	})
	assert.ErrorIs(t, err, ErrTemplateInactive)
}

func TestCreate_WeekdayMismatch(t *testing.T) {
	svc := setupService(&fakeSessionRepo{}, config.BookingConfig{})

	_, err := svc.Create(context.Background(), &models.CreateSessionRequest{
		SlotTemplateID: 1,
		SessionDate:    "2026-09-10", // четверг, шаблон по средам
		Room:           2,
	})
	assert.ErrorIs(t, err, ErrWeekdayMismatch)
}

func TestCreate_DuplicateSession(t *testing.T) {
	repo := &fakeSessionRepo{duplicateOnKey: "2026-09-09"}
	svc := setupService(repo, config.BookingConfig{})

	_, err := svc.Create(context.Background(), &models.CreateSessionRequest{
		SlotTemplateID: 1,
		SessionDate:    "2026-09-09",
		Room:           2,
	})
	assert.ErrorIs(t, err, ErrDuplicateSession)
}

func TestListAvailable_DefaultsToToday(t *testing.T) {
	repo := &fakeSessionRepo{}
	svc := setupService(repo, config.BookingConfig{})

	_, err := svc.ListAvailable(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "2026-09-07", repo.lastFromDate)
}

func TestListAvailable_PastFromDateClampedToToday(t *testing.T) {
	repo := &fakeSessionRepo{}
	svc := setupService(repo, config.BookingConfig{})

	// Прошедшие сессии не возвращаются, даже если их явно запросили
	_, err := svc.ListAvailable(context.Background(), "2026-08-01")
	require.NoError(t, err)
	assert.Equal(t, "2026-09-07", repo.lastFromDate)
}

func TestListAvailable_FutureFromDate(t *testing.T) {
	repo := &fakeSessionRepo{}
	svc := setupService(repo, config.BookingConfig{})

	_, err := svc.ListAvailable(context.Background(), "2026-09-20")
	require.NoError(t, err)
	assert.Equal(t, "2026-09-20", repo.lastFromDate)
}

func TestListAvailable_InvalidFromDate(t *testing.T) {
	svc := setupService(&fakeSessionRepo{}, config.BookingConfig{})

	_, err := svc.ListAvailable(context.Background(), "not-a-date")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListAvailable_SeatsRemaining(t *testing.T) {
	repo := &fakeSessionRepo{
		available: []*domain.SessionWithSeats{
			{
				Session: domain.Session{
					ID:             10,
					SlotTemplateID: 1,
					SessionDate:    time.Date(2026, 9, 9, 0, 0, 0, 0, time.UTC),
					Room:           2,
				},
				ClassName:  "CrossFit",
				StartTime:  "08:00",
				EndTime:    "09:00",
				Capacity:   15,
				SeatsTaken: 12,
			},
		},
	}
	svc := setupService(repo, config.BookingConfig{})

	resp, err := svc.ListAvailable(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, resp.Sessions, 1)
	assert.Equal(t, 15, resp.Sessions[0].Capacity)
	assert.Equal(t, 12, resp.Sessions[0].SeatsTaken)
	assert.Equal(t, 3, resp.Sessions[0].SeatsRemaining)
}

func TestDeactivate(t *testing.T) {
	repo := &fakeSessionRepo{
		sessions: map[int64]*domain.Session{
			10: {ID: 10},
		},
		nextID: 10,
	}
	svc := setupService(repo, config.BookingConfig{})

	require.NoError(t, svc.Deactivate(context.Background(), 10))

	// Повторная деактивация и несуществующая сессия
	assert.ErrorIs(t, svc.Deactivate(context.Background(), 10), ErrSessionNotFound)
	assert.ErrorIs(t, svc.Deactivate(context.Background(), 99), ErrSessionNotFound)
}
