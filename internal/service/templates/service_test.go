package templates

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GMS-ScheduleService/internal/domain"
	templateStore "github.com/m04kA/GMS-ScheduleService/internal/infra/storage/template"
	"github.com/m04kA/GMS-ScheduleService/internal/integrations/staffservice"
	"github.com/m04kA/GMS-ScheduleService/internal/service/templates/models"
	"github.com/m04kA/GMS-ScheduleService/pkg/ptr"
)

// ── фейки ──

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeTemplateRepo struct {
	templates map[int64]*domain.SlotTemplate
	nextID    int64
}

func newFakeTemplateRepo(templates ...*domain.SlotTemplate) *fakeTemplateRepo {
	repo := &fakeTemplateRepo{
		templates: make(map[int64]*domain.SlotTemplate),
		nextID:    100,
	}
	for _, t := range templates {
		repo.templates[t.ID] = t
	}
	return repo
}

func (r *fakeTemplateRepo) Create(_ context.Context, t *domain.SlotTemplate) (*domain.SlotTemplate, error) {
	r.nextID++
	created := *t
	created.ID = r.nextID
	created.Active = true
	r.templates[created.ID] = &created
	return &created, nil
}

func (r *fakeTemplateRepo) GetByID(_ context.Context, id int64) (*domain.SlotTemplate, error) {
	t, ok := r.templates[id]
	if !ok {
		return nil, templateStore.ErrTemplateNotFound
	}
	result := *t
	return &result, nil
}

func (r *fakeTemplateRepo) Update(_ context.Context, id int64, params domain.UpdateTemplateParams) (*domain.SlotTemplate, error) {
	t, ok := r.templates[id]
	if !ok {
		return nil, templateStore.ErrTemplateNotFound
	}

	if params.Name != nil {
		t.Name = *params.Name
	}
	if params.Weekday != nil {
		t.Weekday = *params.Weekday
	}
	if params.StartTime != nil {
		t.StartTime = *params.StartTime
	}
	if params.EndTime != nil {
		t.EndTime = *params.EndTime
	}
	if params.Capacity != nil {
		t.Capacity = *params.Capacity
	}
	if params.InstructorID != nil {
		t.InstructorID = params.InstructorID
	}

	result := *t
	return &result, nil
}

func (r *fakeTemplateRepo) Deactivate(_ context.Context, id int64) error {
	t, ok := r.templates[id]
	if !ok || !t.Active {
		return templateStore.ErrTemplateNotFound
	}
	now := time.Now()
	t.Active = false
	t.DeactivatedAt = &now
	return nil
}

func (r *fakeTemplateRepo) List(_ context.Context, onlyActive bool) ([]*domain.SlotTemplate, error) {
	var result []*domain.SlotTemplate
	for _, t := range r.templates {
		if onlyActive && !t.Active {
			continue
		}
		copied := *t
		result = append(result, &copied)
	}
	return result, nil
}

type fakeStaffClient struct {
	employees map[int64]*staffservice.Employee
}

func (c *fakeStaffClient) GetEmployee(_ context.Context, employeeID int64) (*staffservice.Employee, error) {
	e, ok := c.employees[employeeID]
	if !ok {
		return nil, staffservice.ErrEmployeeNotFound
	}
	return e, nil
}

// ── настройка ──

func setupService(repo *fakeTemplateRepo, employees map[int64]*staffservice.Employee) *Service {
	return NewService(repo, &fakeStaffClient{employees: employees}, nopLogger{})
}

func instructorStaff(id int64) map[int64]*staffservice.Employee {
	return map[int64]*staffservice.Employee{
		id: {ID: id, Name: "Coach", Role: staffservice.RoleInstructor, Active: true},
	}
}

func validCreateRequest() *models.CreateTemplateRequest {
	return &models.CreateTemplateRequest{
		Name:      "CrossFit",
		Weekday:   3,
		StartTime: "08:00",
		EndTime:   "09:00",
		Capacity:  15,
	}
}

// ── тесты ──

func TestCreate_Success(t *testing.T) {
	svc := setupService(newFakeTemplateRepo(), nil)

	resp, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, "CrossFit", resp.Name)
	assert.Equal(t, 3, resp.Weekday)
	assert.Equal(t, "08:00", resp.StartTime)
	assert.Equal(t, 15, resp.Capacity)
	assert.True(t, resp.Active)
}

func TestCreate_Validation(t *testing.T) {
	svc := setupService(newFakeTemplateRepo(), nil)

	cases := []struct {
		name   string
		mutate func(r *models.CreateTemplateRequest)
	}{
		{"empty name", func(r *models.CreateTemplateRequest) { r.Name = "" }},
		{"weekday out of range", func(r *models.CreateTemplateRequest) { r.Weekday = 7 }},
		{"zero capacity", func(r *models.CreateTemplateRequest) { r.Capacity = 0 }},
		{"capacity above max", func(r *models.CreateTemplateRequest) { r.Capacity = 501 }},
		{"bad start time", func(r *models.CreateTemplateRequest) { r.StartTime = "8am" }},
		{"end before start", func(r *models.CreateTemplateRequest) { r.StartTime = "10:00"; r.EndTime = "09:00" }},
		{"start equals end", func(r *models.CreateTemplateRequest) { r.StartTime = "09:00"; r.EndTime = "09:00" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreateRequest()
			tc.mutate(req)

			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCreate_WithInstructor(t *testing.T) {
	svc := setupService(newFakeTemplateRepo(), instructorStaff(42))

	req := validCreateRequest()
	req.InstructorID = ptr.Ptr(int64(42))

	resp, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(42), *resp.InstructorID)
}

func TestCreate_InstructorNotQualified(t *testing.T) {
	employees := map[int64]*staffservice.Employee{
		42: {ID: 42, Role: staffservice.RoleReceptionist, Active: true},
	}
	svc := setupService(newFakeTemplateRepo(), employees)

	req := validCreateRequest()
	req.InstructorID = ptr.Ptr(int64(42))

	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrInstructorNotQualified)
}

func TestCreate_InstructorNotFound(t *testing.T) {
	svc := setupService(newFakeTemplateRepo(), nil)

	req := validCreateRequest()
	req.InstructorID = ptr.Ptr(int64(99))

	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestUpdate_PartialFields(t *testing.T) {
	repo := newFakeTemplateRepo(&domain.SlotTemplate{
		ID:        1,
		Name:      "CrossFit",
		Weekday:   time.Wednesday,
		StartTime: "08:00",
		EndTime:   "09:00",
		Capacity:  15,
		Active:    true,
	})
	svc := setupService(repo, nil)

	resp, err := svc.Update(context.Background(), 1, &models.UpdateTemplateRequest{
		Capacity: ptr.Ptr(20),
	})
	require.NoError(t, err)

	assert.Equal(t, 20, resp.Capacity)
	// Остальные поля не тронуты
	assert.Equal(t, "CrossFit", resp.Name)
	assert.Equal(t, "08:00", resp.StartTime)
}

func TestUpdate_TimePairConsistency(t *testing.T) {
	repo := newFakeTemplateRepo(&domain.SlotTemplate{
		ID:        1,
		Name:      "CrossFit",
		Weekday:   time.Wednesday,
		StartTime: "08:00",
		EndTime:   "09:00",
		Capacity:  15,
		Active:    true,
	})
	svc := setupService(repo, nil)

	// Новое начало позже текущего окончания
	_, err := svc.Update(context.Background(), 1, &models.UpdateTemplateRequest{
		StartTime: ptr.Ptr("10:00"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Согласованная пара проходит
	resp, err := svc.Update(context.Background(), 1, &models.UpdateTemplateRequest{
		StartTime: ptr.Ptr("10:00"),
		EndTime:   ptr.Ptr("11:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "11:00", resp.EndTime)
}

func TestUpdate_NotFound(t *testing.T) {
	svc := setupService(newFakeTemplateRepo(), nil)

	_, err := svc.Update(context.Background(), 99, &models.UpdateTemplateRequest{
		Capacity: ptr.Ptr(20),
	})
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestDeactivate(t *testing.T) {
	repo := newFakeTemplateRepo(&domain.SlotTemplate{ID: 1, Name: "CrossFit", Active: true})
	svc := setupService(repo, nil)

	require.NoError(t, svc.Deactivate(context.Background(), 1))
	assert.False(t, repo.templates[1].Active)

	// Повторная деактивация
	assert.ErrorIs(t, svc.Deactivate(context.Background(), 1), ErrTemplateNotFound)
}

func TestAssignInstructor(t *testing.T) {
	repo := newFakeTemplateRepo(&domain.SlotTemplate{ID: 1, Name: "CrossFit", Active: true})
	svc := setupService(repo, instructorStaff(42))

	resp, err := svc.AssignInstructor(context.Background(), 1, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), *resp.InstructorID)
}

func TestAssignInstructor_InactiveEmployee(t *testing.T) {
	employees := map[int64]*staffservice.Employee{
		42: {ID: 42, Role: staffservice.RoleInstructor, Active: false},
	}
	repo := newFakeTemplateRepo(&domain.SlotTemplate{ID: 1, Active: true})
	svc := setupService(repo, employees)

	_, err := svc.AssignInstructor(context.Background(), 1, 42)
	assert.ErrorIs(t, err, ErrInstructorNotQualified)
}

func TestList_OnlyActive(t *testing.T) {
	deactivatedAt := time.Now()
	repo := newFakeTemplateRepo(
		&domain.SlotTemplate{ID: 1, Name: "Active", Active: true},
		&domain.SlotTemplate{ID: 2, Name: "Inactive", Active: false, DeactivatedAt: &deactivatedAt},
	)
	svc := setupService(repo, nil)

	resp, err := svc.List(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, resp.Templates, 1)
	assert.Equal(t, "Active", resp.Templates[0].Name)

	resp, err = svc.List(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, resp.Templates, 2)
}
