package session

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/m04kA/GMS-ScheduleService/internal/domain"
	"github.com/m04kA/GMS-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/GMS-ScheduleService/pkg/psqlbuilder"
)

// pgUniqueViolation код ошибки PostgreSQL для нарушения уникального индекса
const pgUniqueViolation = "23505"

// seatsTakenColumn подзапрос Capacity Ledger: количество занятых мест сессии.
// Faltou не считается - ledger используется только для будущих проверок,
// Reservado и Presente занимают место.
const seatsTakenColumn = "(SELECT COUNT(*) FROM reservations r WHERE r.session_id = s.id AND r.status IN ('Reservado', 'Presente')) AS seats_taken"

// Repository репозиторий для работы с сессиями занятий
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория сессий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую сессию по шаблону на конкретную дату.
// Уникальность активной пары (шаблон, дата) защищена частичным уникальным
// индексом - нарушение конвертируется в ErrDuplicateSession.
func (r *Repository) Create(ctx context.Context, s *domain.Session) (*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("sessions").
		Columns(
			"slot_template_id",
			"session_date",
			"room",
		).
		Values(
			s.SlotTemplateID,
			s.SessionDate,
			s.Room,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == pgUniqueViolation {
			return nil, ErrDuplicateSession
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// GetByID получает сессию по ID (включая деактивированные)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"slot_template_id",
		"session_date",
		"room",
		"capacity_override",
		"deactivated_at",
		"created_at",
		"updated_at",
	).
		From("sessions").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Session
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.SlotTemplateID,
		&s.SessionDate,
		&s.Room,
		&s.CapacityOverride,
		&s.DeactivatedAt,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan session: %v", ErrScanRow, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// GetWithSeats получает активную сессию с данными шаблона и счётчиком мест.
// Внутри транзакции блокирует строку сессии (FOR UPDATE OF s), чтобы
// конкурирующие бронирования сериализовались на одной сессии.
func (r *Repository) GetWithSeats(ctx context.Context, id int64) (*domain.SessionWithSeats, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.withSeatsBuilder().
		Where(squirrel.Eq{"s.id": id}).
		Where("s.deactivated_at IS NULL")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF s")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithSeats - build select query: %v", ErrBuildQuery, err)
	}

	s, err := r.scanSessionWithSeats(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	return s, nil
}

// ExistsActive проверяет наличие активной сессии на (шаблон, дату)
func (r *Repository) ExistsActive(ctx context.Context, templateID int64, date string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("sessions").
		Where(squirrel.Eq{"slot_template_id": templateID, "session_date": date}).
		Where("deactivated_at IS NULL").
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ExistsActive - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsActive - scan: %v", ErrScanRow, err)
	}

	return true, nil
}

// ListAvailable возвращает активные сессии начиная с указанной даты,
// аннотированные счётчиком занятых мест
func (r *Repository) ListAvailable(ctx context.Context, fromDate string) ([]*domain.SessionWithSeats, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.withSeatsBuilder().
		Where(squirrel.GtOrEq{"s.session_date": fromDate}).
		Where("s.deactivated_at IS NULL").
		OrderBy("s.session_date ASC, t.start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailable - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailable - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSessionsWithSeats(rows)
}

// ListFutureByTemplates возвращает будущие активные сессии указанных шаблонов
// со счётчиком мест. Внутри транзакции блокирует строки сессий - используется
// координатором обмена для проверки конфликтов вместимости.
func (r *Repository) ListFutureByTemplates(ctx context.Context, templateIDs []int64, fromDate string) ([]*domain.SessionWithSeats, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.withSeatsBuilder().
		Where(squirrel.Eq{"s.slot_template_id": templateIDs}).
		Where(squirrel.GtOrEq{"s.session_date": fromDate}).
		Where("s.deactivated_at IS NULL").
		OrderBy("s.session_date ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF s")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListFutureByTemplates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListFutureByTemplates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSessionsWithSeats(rows)
}

// SetCapacityOverride фиксирует вместимость сессии независимо от шаблона.
// Используется при принудительном обмене, чтобы не отменять существующие
// бронирования на сессиях сверх новой вместимости.
func (r *Repository) SetCapacityOverride(ctx context.Context, id int64, capacity int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("sessions").
		Set("capacity_override", capacity).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetCapacityOverride - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetCapacityOverride - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetCapacityOverride - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// Deactivate мягко удаляет сессию
func (r *Repository) Deactivate(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("sessions").
		Set("deactivated_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where("deactivated_at IS NULL").
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
		return ErrSessionNotFound
	}

	return nil
}

// withSeatsBuilder базовый SELECT сессии с данными шаблона и ledger-счётчиком
func (r *Repository) withSeatsBuilder() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"s.id",
		"s.slot_template_id",
		"s.session_date",
		"s.room",
		"s.capacity_override",
		"s.deactivated_at",
		"s.created_at",
		"s.updated_at",
		"t.name",
		"t.start_time",
		"t.end_time",
		"COALESCE(s.capacity_override, t.capacity) AS capacity",
		"t.instructor_id",
		seatsTakenColumn,
	).
		From("sessions s").
		Join("slot_templates t ON t.id = s.slot_template_id")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanSessionWithSeats(row rowScanner) (*domain.SessionWithSeats, error) {
	var s domain.SessionWithSeats
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.SlotTemplateID,
		&s.SessionDate,
		&s.Room,
		&s.CapacityOverride,
		&s.DeactivatedAt,
		&createdAt,
		&updatedAt,
		&s.ClassName,
		&s.StartTime,
		&s.EndTime,
		&s.Capacity,
		&s.InstructorID,
		&s.SeatsTaken,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanSessionWithSeats - scan row: %v", ErrScanRow, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

func (r *Repository) scanSessionsWithSeats(rows *sql.Rows) ([]*domain.SessionWithSeats, error) {
	sessions := make([]*domain.SessionWithSeats, 0)

	for rows.Next() {
		s, err := r.scanSessionWithSeats(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSessionsWithSeats - rows error: %v", ErrScanRow, err)
	}

	return sessions, nil
}
