package evaluation

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

// Repository репозиторий для работы с записями на физическую оценку
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей на оценку
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateIfNoneActive атомарно создает запись на оценку, только если у
// участника нет другой активной (Reservado) записи. Проверка инварианта и
// вставка - один условный INSERT ... SELECT; частичный уникальный индекс
// по (member_id) WHERE status='Reservado' закрывает гонку между инстансами.
func (r *Repository) CreateIfNoneActive(ctx context.Context, memberID int64, requestedAt time.Time) (*domain.EvaluationReservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	noActive := psqlbuilder.Select().
		Column(squirrel.Expr("?", memberID)).
		Column(squirrel.Expr("?", requestedAt)).
		Column(squirrel.Expr("?", string(domain.StatusReservado))).
		Suffix("WHERE NOT EXISTS (SELECT 1 FROM evaluation_reservations e WHERE e.member_id = ? AND e.status = ?)",
			memberID, string(domain.StatusReservado))

	query, args, err := psqlbuilder.Insert("evaluation_reservations").
		Columns("member_id", "requested_at", "status").
		Select(noActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateIfNoneActive - build insert query: %v", ErrBuildQuery, err)
	}

	evaluation := &domain.EvaluationReservation{
		MemberID:    memberID,
		RequestedAt: requestedAt,
		Status:      domain.StatusReservado,
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&evaluation.ID,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrActiveReservationExists
	}
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == pgUniqueViolation {
			return nil, ErrActiveReservationExists
		}
		return nil, fmt.Errorf("%w: CreateIfNoneActive - execute insert: %v", ErrExecQuery, err)
	}

	evaluation.CreatedAt = createdAt.Time
	evaluation.UpdatedAt = updatedAt.Time

	return evaluation, nil
}

// GetByID получает запись на оценку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.EvaluationReservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.selectBuilder().Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanEvaluation(executor.QueryRowContext(ctx, query, args...))
}

// GetActiveByMember получает текущую активную запись участника на оценку
func (r *Repository) GetActiveByMember(ctx context.Context, memberID int64) (*domain.EvaluationReservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.selectBuilder().
		Where(squirrel.Eq{
			"member_id": memberID,
			"status":    string(domain.StatusReservado),
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByMember - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanEvaluation(executor.QueryRowContext(ctx, query, args...))
}

// CancelActive переводит активную запись участника в Cancelado одним
// условным UPDATE
func (r *Repository) CancelActive(ctx context.Context, memberID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("evaluation_reservations").
		Set("status", string(domain.StatusCancelado)).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"member_id": memberID,
			"status":    string(domain.StatusReservado),
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
		return ErrEvaluationNotFound
	}

	return nil
}

// MarkPresente переводит запись в Presente и привязывает созданную оценку.
// Переход разрешён только из Reservado.
func (r *Repository) MarkPresente(ctx context.Context, id int64, assessmentID int64) error {
	return r.markTerminal(ctx, id, domain.StatusPresente, &assessmentID)
}

// MarkFaltou переводит запись в Faltou. Переход разрешён только из Reservado.
func (r *Repository) MarkFaltou(ctx context.Context, id int64) error {
	return r.markTerminal(ctx, id, domain.StatusFaltou, nil)
}

func (r *Repository) markTerminal(ctx context.Context, id int64, status domain.ReservationStatus, assessmentID *int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("evaluation_reservations").
		Set("status", string(status)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":     id,
			"status": string(domain.StatusReservado),
		})

	if assessmentID != nil {
		updateBuilder = updateBuilder.Set("assessment_id", *assessmentID)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: markTerminal - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: markTerminal - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: markTerminal - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrNotReservado
	}

	return nil
}

// CreateAssessment сохраняет завершённую физическую оценку с измерениями
func (r *Repository) CreateAssessment(ctx context.Context, a *domain.Assessment) (*domain.Assessment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("assessments").
		Columns(
			"member_id",
			"evaluation_reservation_id",
			"measured_at",
			"weight_kg",
			"height_cm",
			"body_fat_pct",
			"notes",
		).
		Values(
			a.MemberID,
			a.EvaluationReservationID,
			a.MeasuredAt,
			a.WeightKg,
			a.HeightCm,
			a.BodyFatPct,
			a.Notes,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateAssessment - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&a.ID,
		&createdAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: CreateAssessment - execute insert: %v", ErrExecQuery, err)
	}

	a.CreatedAt = createdAt.Time

	return a, nil
}

func (r *Repository) selectBuilder() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"member_id",
		"requested_at",
		"status",
		"cancelled_at",
		"assessment_id",
		"created_at",
		"updated_at",
	).
		From("evaluation_reservations")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanEvaluation(row rowScanner) (*domain.EvaluationReservation, error) {
	var e domain.EvaluationReservation
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&e.ID,
		&e.MemberID,
		&e.RequestedAt,
		&e.Status,
		&e.CancelledAt,
		&e.AssessmentID,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrEvaluationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanEvaluation - scan row: %v", ErrScanRow, err)
	}

	e.CreatedAt = createdAt.Time
	e.UpdatedAt = updatedAt.Time

	return &e, nil
}
