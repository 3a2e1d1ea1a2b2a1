package reservation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/m04kA/GMS-ScheduleService/internal/domain"
	"github.com/m04kA/GMS-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/GMS-ScheduleService/pkg/psqlbuilder"
)

// pgUniqueViolation код ошибки PostgreSQL для нарушения уникального индекса
const pgUniqueViolation = "23505"

// Repository репозиторий для работы с бронированиями занятий
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateIfSeatAvailable атомарно создает бронирование, только если сессия
// активна и на ней есть свободное место. Проверка вместимости и вставка -
// один условный INSERT ... SELECT, поэтому инвариант
// seats_taken <= capacity выдерживает конкурентные запросы и несколько
// инстансов сервиса без read-then-write логики на стороне приложения.
//
// 0 затронутых строк => ErrNoSeatAvailable (сессии нет/деактивирована/занята).
// Нарушение частичного уникального индекса => ErrAlreadyReserved.
func (r *Repository) CreateIfSeatAvailable(ctx context.Context, memberID, sessionID int64, reservedAt time.Time) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	seatCheck := psqlbuilder.Select().
		Column(squirrel.Expr("?", memberID)).
		Column("s.id").
		Column(squirrel.Expr("?", reservedAt)).
		Column(squirrel.Expr("?", string(domain.StatusReservado))).
		From("sessions s").
		Join("slot_templates t ON t.id = s.slot_template_id").
		Where(squirrel.Eq{"s.id": sessionID}).
		Where("s.deactivated_at IS NULL").
		Where(squirrel.Expr(
			"(SELECT COUNT(*) FROM reservations r WHERE r.session_id = s.id AND r.status IN (?, ?)) < COALESCE(s.capacity_override, t.capacity)",
			string(domain.StatusReservado), string(domain.StatusPresente),
		))

	query, args, err := psqlbuilder.Insert("reservations").
		Columns("member_id", "session_id", "reserved_at", "status").
		Select(seatCheck).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateIfSeatAvailable - build insert query: %v", ErrBuildQuery, err)
	}

	reservation := &domain.Reservation{
		MemberID:   memberID,
		SessionID:  sessionID,
		ReservedAt: reservedAt,
		Status:     domain.StatusReservado,
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&reservation.ID,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNoSeatAvailable
	}
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == pgUniqueViolation {
			return nil, ErrAlreadyReserved
		}
		return nil, fmt.Errorf("%w: CreateIfSeatAvailable - execute insert: %v", ErrExecQuery, err)
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return reservation, nil
}

// HasNonCancelled проверяет наличие неотменённого бронирования пары
// (участник, сессия). Отменённые бронирования не мешают повторной записи.
func (r *Repository) HasNonCancelled(ctx context.Context, memberID, sessionID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("reservations").
		Where(squirrel.Eq{"member_id": memberID, "session_id": sessionID}).
		Where(squirrel.NotEq{"status": string(domain.StatusCancelado)}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: HasNonCancelled - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: HasNonCancelled - scan: %v", ErrScanRow, err)
	}

	return true, nil
}

// CancelActive переводит активное бронирование пары (участник, сессия) в
// Cancelado одним условным UPDATE. Место освобождается сразу же:
// следующий Book увидит освободившееся место без окна рассинхронизации.
func (r *Repository) CancelActive(ctx context.Context, memberID, sessionID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", string(domain.StatusCancelado)).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"member_id":  memberID,
			"session_id": sessionID,
			"status":     string(domain.StatusReservado),
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: CancelActive - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: CancelActive - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: CancelActive - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// ListBySession возвращает бронирования сессии.
// При onlyActive=true - только строки в статусе Reservado.
func (r *Repository) ListBySession(ctx context.Context, sessionID int64, onlyActive bool) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"member_id",
		"session_id",
		"reserved_at",
		"status",
		"cancelled_at",
		"created_at",
		"updated_at",
	).
		From("reservations").
		Where(squirrel.Eq{"session_id": sessionID}).
		OrderBy("reserved_at ASC")

	if onlyActive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(domain.StatusReservado)})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySession - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySession - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// ListByMemberWithFilter возвращает бронирования участника с фильтрацией
// по статусу и дате сессии (история и предстоящие)
func (r *Repository) ListByMemberWithFilter(ctx context.Context, filter domain.MemberReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"res.id",
		"res.member_id",
		"res.session_id",
		"res.reserved_at",
		"res.status",
		"res.cancelled_at",
		"res.created_at",
		"res.updated_at",
	).
		From("reservations res").
		Join("sessions s ON s.id = res.session_id").
		Where(squirrel.Eq{"res.member_id": filter.MemberID}).
		OrderBy("s.session_date DESC, res.reserved_at DESC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"res.status": string(*filter.Status)})
	}
	if filter.FromDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"s.session_date": filter.FromDate.Format(domain.DateFormat)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByMemberWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByMemberWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// MarkAttendance закрывает все Reservado-строки сессии: участники из
// presentMemberIDs получают Presente, остальные - Faltou. Терминальные
// строки не затрагиваются, поэтому повторный вызов идемпотентен.
func (r *Repository) MarkAttendance(ctx context.Context, sessionID int64, presentMemberIDs []int64) (presente int64, faltou int64, err error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	ids := presentMemberIDs
	if ids == nil {
		ids = []int64{}
	}

	presentQuery, presentArgs, err := psqlbuilder.Update("reservations").
		Set("status", string(domain.StatusPresente)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"session_id": sessionID,
			"status":     string(domain.StatusReservado),
			"member_id":  ids,
		}).
		ToSql()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: MarkAttendance - build present query: %v", ErrBuildQuery, err)
	}

	presentResult, err := executor.ExecContext(ctx, presentQuery, presentArgs...)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: MarkAttendance - execute present update: %v", ErrExecQuery, err)
	}

	presente, err = presentResult.RowsAffected()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: MarkAttendance - present rows affected: %v", ErrExecQuery, err)
	}

	absentQuery, absentArgs, err := psqlbuilder.Update("reservations").
		Set("status", string(domain.StatusFaltou)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"session_id": sessionID,
			"status":     string(domain.StatusReservado),
		}).
		ToSql()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: MarkAttendance - build absent query: %v", ErrBuildQuery, err)
	}

	absentResult, err := executor.ExecContext(ctx, absentQuery, absentArgs...)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: MarkAttendance - execute absent update: %v", ErrExecQuery, err)
	}

	faltou, err = absentResult.RowsAffected()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: MarkAttendance - absent rows affected: %v", ErrExecQuery, err)
	}

	return presente, faltou, nil
}

// CountActive возвращает количество строк сессии в статусе Reservado
func (r *Repository) CountActive(ctx context.Context, sessionID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("reservations").
		Where(squirrel.Eq{
			"session_id": sessionID,
			"status":     string(domain.StatusReservado),
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountActive - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActive - scan: %v", ErrScanRow, err)
	}

	return count, nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func (r *Repository) scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		var res domain.Reservation
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&res.ID,
			&res.MemberID,
			&res.SessionID,
			&res.ReservedAt,
			&res.Status,
			&res.CancelledAt,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}

		res.CreatedAt = createdAt.Time
		res.UpdatedAt = updatedAt.Time

		reservations = append(reservations, &res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
