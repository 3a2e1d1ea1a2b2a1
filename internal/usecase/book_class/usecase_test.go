package book_class

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GMS-ScheduleService/internal/domain"
	reservationStore "github.com/m04kA/GMS-ScheduleService/internal/infra/storage/reservation"
	sessionStore "github.com/m04kA/GMS-ScheduleService/internal/infra/storage/session"
	"github.com/m04kA/GMS-ScheduleService/internal/integrations/memberservice"
)

// ── фейки ──

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// serialTxManager эмулирует SERIALIZABLE: транзакции выполняются
// строго по одной
type serialTxManager struct{ mu sync.Mutex }

func (m *serialTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type fakeMemberClient struct {
	members map[int64]*memberservice.Member
}

func (c *fakeMemberClient) CheckActiveMember(_ context.Context, memberID int64) (*memberservice.Member, error) {
	m, ok := c.members[memberID]
	if !ok {
		return nil, memberservice.ErrMemberNotFound
	}
	if !m.Active {
		return nil, memberservice.ErrMemberInactive
	}
	return m, nil
}

// memStore in-memory хранилище сессии и бронирований, повторяет
// семантику условной вставки репозитория
type memStore struct {
	mu           sync.Mutex
	session      domain.SessionWithSeats
	reservations map[int64]domain.ReservationStatus // member_id -> status
	nextID       int64
}

func newMemStore(session domain.SessionWithSeats) *memStore {
	return &memStore{
		session:      session,
		reservations: make(map[int64]domain.ReservationStatus),
		nextID:       1,
	}
}

func (s *memStore) seatsTaken() int {
	taken := 0
	for _, status := range s.reservations {
		if status.TakesSeat() {
			taken++
		}
	}
	return taken
}

func (s *memStore) GetWithSeats(_ context.Context, id int64) (*domain.SessionWithSeats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != s.session.ID {
		return nil, sessionStore.ErrSessionNotFound
	}

	result := s.session
	result.SeatsTaken = s.seatsTaken()
	return &result, nil
}

func (s *memStore) HasNonCancelled(_ context.Context, memberID, _ int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status, ok := s.reservations[memberID]
	return ok && status != domain.StatusCancelado, nil
}

func (s *memStore) CreateIfSeatAvailable(_ context.Context, memberID, sessionID int64, reservedAt time.Time) (*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if status, ok := s.reservations[memberID]; ok && status != domain.StatusCancelado {
		return nil, reservationStore.ErrAlreadyReserved
	}
	if s.seatsTaken() >= s.session.Capacity {
		return nil, reservationStore.ErrNoSeatAvailable
	}

	s.reservations[memberID] = domain.StatusReservado
	id := s.nextID
	s.nextID++

	return &domain.Reservation{
		ID:         id,
		MemberID:   memberID,
		SessionID:  sessionID,
		ReservedAt: reservedAt,
		Status:     domain.StatusReservado,
	}, nil
}

// ── настройка ──

var testNow = time.Date(2026, 9, 7, 12, 0, 0, 0, time.UTC)

func testSession(capacity int) domain.SessionWithSeats {
	return domain.SessionWithSeats{
		Session: domain.Session{
			ID:             100,
			SlotTemplateID: 1,
			SessionDate:    time.Date(2026, 9, 9, 0, 0, 0, 0, time.UTC),
			Room:           2,
		},
		ClassName: "CrossFit",
		StartTime: "08:00",
		EndTime:   "09:00",
		Capacity:  capacity,
	}
}

func setupUseCase(store *memStore, members map[int64]*memberservice.Member) *UseCase {
	uc := NewUseCase(store, store, &fakeMemberClient{members: members}, &serialTxManager{}, nopLogger{})
	uc.timeProvider = fixedClock{t: testNow}
	return uc
}

func activeMember(id int64) map[int64]*memberservice.Member {
	return map[int64]*memberservice.Member{
		id: {ID: id, Name: "Test Member", Active: true},
	}
}

// ── тесты ──

func TestExecute_Success(t *testing.T) {
	store := newMemStore(testSession(10))
	uc := setupUseCase(store, activeMember(7))

	resp, err := uc.Execute(context.Background(), &Request{MemberID: 7, SessionID: 100})
	require.NoError(t, err)

	assert.Equal(t, int64(7), resp.MemberID)
	assert.Equal(t, int64(100), resp.SessionID)
	assert.Equal(t, string(domain.StatusReservado), resp.Status)
	assert.Equal(t, "CrossFit", resp.ClassName)
	assert.Equal(t, "2026-09-09", resp.SessionDate)
	assert.Equal(t, "08:00", resp.StartTime)
	assert.Equal(t, 9, resp.SeatsRemaining)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := setupUseCase(newMemStore(testSession(10)), activeMember(7))

	_, err := uc.Execute(context.Background(), &Request{MemberID: 0, SessionID: 100})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{MemberID: 7, SessionID: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_MemberNotFound(t *testing.T) {
	uc := setupUseCase(newMemStore(testSession(10)), nil)

	_, err := uc.Execute(context.Background(), &Request{MemberID: 7, SessionID: 100})
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestExecute_MemberInactive(t *testing.T) {
	members := map[int64]*memberservice.Member{
		7: {ID: 7, Name: "Inactive", Active: false},
	}
	uc := setupUseCase(newMemStore(testSession(10)), members)

	_, err := uc.Execute(context.Background(), &Request{MemberID: 7, SessionID: 100})
	assert.ErrorIs(t, err, ErrMemberInactive)
}

func TestExecute_SessionNotFound(t *testing.T) {
	uc := setupUseCase(newMemStore(testSession(10)), activeMember(7))

	_, err := uc.Execute(context.Background(), &Request{MemberID: 7, SessionID: 999})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestExecute_SessionAlreadyOccurred(t *testing.T) {
	session := testSession(10)
	session.SessionDate = time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	uc := setupUseCase(newMemStore(session), activeMember(7))

	_, err := uc.Execute(context.Background(), &Request{MemberID: 7, SessionID: 100})
	assert.ErrorIs(t, err, ErrSessionAlreadyOccurred)
}

func TestExecute_AlreadyBooked(t *testing.T) {
	store := newMemStore(testSession(10))
	uc := setupUseCase(store, activeMember(7))

	_, err := uc.Execute(context.Background(), &Request{MemberID: 7, SessionID: 100})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), &Request{MemberID: 7, SessionID: 100})
	assert.ErrorIs(t, err, ErrAlreadyBooked)
}

func TestExecute_PresenteBlocksRebooking(t *testing.T) {
	store := newMemStore(testSession(10))
	store.reservations[7] = domain.StatusPresente
	uc := setupUseCase(store, activeMember(7))

	_, err := uc.Execute(context.Background(), &Request{MemberID: 7, SessionID: 100})
	assert.ErrorIs(t, err, ErrAlreadyBooked)
}

func TestExecute_CancelledSeatIsImmediatelyRebookable(t *testing.T) {
	store := newMemStore(testSession(1))
	store.reservations[5] = domain.StatusCancelado
	uc := setupUseCase(store, activeMember(7))

	resp, err := uc.Execute(context.Background(), &Request{MemberID: 7, SessionID: 100})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.SeatsRemaining)
}

func TestExecute_SessionFull(t *testing.T) {
	store := newMemStore(testSession(2))
	store.reservations[1] = domain.StatusReservado
	store.reservations[2] = domain.StatusPresente
	uc := setupUseCase(store, activeMember(7))

	_, err := uc.Execute(context.Background(), &Request{MemberID: 7, SessionID: 100})
	assert.ErrorIs(t, err, ErrSessionFull)
}

func TestExecute_FaltouDoesNotTakeSeat(t *testing.T) {
	store := newMemStore(testSession(1))
	store.reservations[5] = domain.StatusFaltou
	uc := setupUseCase(store, activeMember(7))

	_, err := uc.Execute(context.Background(), &Request{MemberID: 7, SessionID: 100})
	require.NoError(t, err)
}

// TestExecute_ConcurrentBookings 20 участников конкурируют за 5 мест:
// успеха добиваются ровно 5, остальные получают ErrSessionFull
func TestExecute_ConcurrentBookings(t *testing.T) {
	const capacity = 5
	const attempts = 20

	store := newMemStore(testSession(capacity))
	members := make(map[int64]*memberservice.Member, attempts)
	for i := int64(1); i <= attempts; i++ {
		members[i] = &memberservice.Member{ID: i, Active: true}
	}
	uc := setupUseCase(store, members)

	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), &Request{
				MemberID:  int64(i + 1),
				SessionID: 100,
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrSessionFull)
		}
	}

	assert.Equal(t, capacity, succeeded)
	assert.Equal(t, capacity, store.seatsTaken())
}
