package template

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/GMS-ScheduleService/internal/domain"
	"github.com/m04kA/GMS-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/GMS-ScheduleService/pkg/psqlbuilder"
)

const templateColumns = "id, name, weekday, start_time, end_time, capacity, instructor_id, active, deactivated_at, created_at, updated_at"

// Repository репозиторий для работы с шаблонами занятий
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория шаблонов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый шаблон занятия
func (r *Repository) Create(ctx context.Context, t *domain.SlotTemplate) (*domain.SlotTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("slot_templates").
		Columns(
			"name",
			"weekday",
			"start_time",
			"end_time",
			"capacity",
			"instructor_id",
			"active",
		).
		Values(
			t.Name,
			int(t.Weekday),
			t.StartTime,
			t.EndTime,
			t.Capacity,
			t.InstructorID,
			true,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&t.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	t.Active = true
	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time

	return t, nil
}

// GetByID получает шаблон по ID.
// Внутри транзакции добавляет FOR UPDATE для блокировки строки
// (используется координатором обмена шаблонов).
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.SlotTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"name",
		"weekday",
		"start_time",
		"end_time",
		"capacity",
		"instructor_id",
		"active",
		"deactivated_at",
		"created_at",
		"updated_at",
	).
		From("slot_templates").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanTemplate(executor.QueryRowContext(ctx, query, args...))
}

// Update обновляет поля шаблона. Nil-поля не изменяются.
func (r *Repository) Update(ctx context.Context, id int64, params domain.UpdateTemplateParams) (*domain.SlotTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("slot_templates").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if params.Name != nil {
		updateBuilder = updateBuilder.Set("name", *params.Name)
	}
	if params.Weekday != nil {
		updateBuilder = updateBuilder.Set("weekday", int(*params.Weekday))
	}
	if params.StartTime != nil {
		updateBuilder = updateBuilder.Set("start_time", *params.StartTime)
	}
	if params.EndTime != nil {
		updateBuilder = updateBuilder.Set("end_time", *params.EndTime)
	}
	if params.Capacity != nil {
		updateBuilder = updateBuilder.Set("capacity", *params.Capacity)
	}
	if params.InstructorID != nil {
		updateBuilder = updateBuilder.Set("instructor_id", *params.InstructorID)
	}

	query, args, err := updateBuilder.
		Suffix("RETURNING " + templateColumns).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	return r.scanTemplate(executor.QueryRowContext(ctx, query, args...))
}

// UpdateSchedule перезаписывает расписание шаблона: день недели, время,
// вместимость и инструктора. Используется координатором обмена.
func (r *Repository) UpdateSchedule(ctx context.Context, t *domain.SlotTemplate) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slot_templates").
		Set("weekday", int(t.Weekday)).
		Set("start_time", t.StartTime).
		Set("end_time", t.EndTime).
		Set("capacity", t.Capacity).
		Set("instructor_id", t.InstructorID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": t.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrTemplateNotFound
	}

	return nil
}

// Deactivate мягко удаляет шаблон (active=false, deactivated_at=NOW())
func (r *Repository) Deactivate(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slot_templates").
		Set("active", false).
		Set("deactivated_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "active": true}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Deactivate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Deactivate - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrTemplateNotFound
	}

	return nil
}

// List возвращает все шаблоны, опционально только активные
func (r *Repository) List(ctx context.Context, onlyActive bool) ([]*domain.SlotTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"name",
		"weekday",
		"start_time",
		"end_time",
		"capacity",
		"instructor_id",
		"active",
		"deactivated_at",
		"created_at",
		"updated_at",
	).
		From("slot_templates").
		OrderBy("weekday ASC, start_time ASC")

	if onlyActive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	templates := make([]*domain.SlotTemplate, 0)
	for rows.Next() {
		t, err := r.scanTemplateRow(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return templates, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanTemplate(row rowScanner) (*domain.SlotTemplate, error) {
	t, err := r.scanTemplateRow(row)
	if err == sql.ErrNoRows {
		return nil, ErrTemplateNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *Repository) scanTemplateRow(row rowScanner) (*domain.SlotTemplate, error) {
	var t domain.SlotTemplate
	var weekday int
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&t.ID,
		&t.Name,
		&weekday,
		&t.StartTime,
		&t.EndTime,
		&t.Capacity,
		&t.InstructorID,
		&t.Active,
		&t.DeactivatedAt,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanTemplateRow - scan template: %v", ErrScanRow, err)
	}

	t.Weekday = time.Weekday(weekday)
	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time

	return &t, nil
}
