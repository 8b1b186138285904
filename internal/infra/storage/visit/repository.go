package visit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/ovs-lab/OVS-VisitScheduler/internal/domain"
	"github.com/ovs-lab/OVS-VisitScheduler/pkg/dbmetrics"
	"github.com/ovs-lab/OVS-VisitScheduler/pkg/psqlbuilder"
	"github.com/ovs-lab/OVS-VisitScheduler/pkg/types"
)

// Repository репозиторий для работы с официальными визитами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория визитов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// visitColumns колонки визита с join на visit_slots ради time_slot_id
var visitColumns = []string{
	"v.id",
	"v.reference",
	"v.visit_slot_id",
	"vs.time_slot_id",
	"v.prison_code",
	"v.prisoner_number",
	"v.visit_date",
	"v.visit_type",
	"v.status",
	"v.cancellation_reason",
	"v.cancelled_at",
	"v.created_at",
	"v.updated_at",
}

// Create создает визит вместе с посетителями.
// Рассчитан на вызов внутри транзакции (см. txmanager) — вставка визита
// и его посетителей должна быть атомарной.
func (r *Repository) Create(ctx context.Context, visit *domain.OfficialVisit) (*domain.OfficialVisit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("visits").
		Columns(
			"reference",
			"visit_slot_id",
			"prison_code",
			"prisoner_number",
			"visit_date",
			"visit_type",
			"status",
		).
		Values(
			visit.Reference,
			visit.VisitSlotID,
			visit.PrisonCode,
			visit.PrisonerNumber,
			visit.VisitDate,
			visit.VisitType,
			visit.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&visit.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	visit.CreatedAt = createdAt.Time
	visit.UpdatedAt = updatedAt.Time

	for i := range visit.Visitors {
		visitor := &visit.Visitors[i]
		visitor.VisitID = visit.ID

		query, args, err := psqlbuilder.Insert("visit_visitors").
			Columns("visit_id", "contact_id", "first_name", "last_name").
			Values(visitor.VisitID, visitor.ContactID, visitor.FirstName, visitor.LastName).
			Suffix("RETURNING id").
			ToSql()

		if err != nil {
			return nil, fmt.Errorf("%w: Create - build visitor insert: %v", ErrBuildQuery, err)
		}

		if err := executor.QueryRowContext(ctx, query, args...).Scan(&visitor.ID); err != nil {
			return nil, fmt.Errorf("%w: Create - execute visitor insert: %v", ErrExecQuery, err)
		}
	}

	return visit, nil
}

// GetByReference получает визит по внешней ссылке вместе с посетителями
func (r *Repository) GetByReference(ctx context.Context, reference uuid.UUID) (*domain.OfficialVisit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(visitColumns...).
		From("visits v").
		Join("visit_slots vs ON vs.id = v.visit_slot_id").
		Where(squirrel.Eq{"v.reference": reference}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByReference - build select query: %v", ErrBuildQuery, err)
	}

	visit, err := scanVisit(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrVisitNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByReference - scan visit: %v", ErrScanRow, err)
	}

	visitors, err := r.getVisitors(ctx, executor, visit.ID)
	if err != nil {
		return nil, err
	}
	visit.Visitors = visitors

	return visit, nil
}

// GetByPrisonWithFilter получает визиты тюрьмы с фильтрацией по периоду и статусу
func (r *Repository) GetByPrisonWithFilter(ctx context.Context, filter domain.PrisonVisitsFilter) ([]*domain.OfficialVisit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(visitColumns...).
		From("visits v").
		Join("visit_slots vs ON vs.id = v.visit_slot_id").
		Where(squirrel.Eq{"v.prison_code": filter.PrisonCode}).
		OrderBy("v.visit_date", "v.id")

	if filter.FromDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"v.visit_date": *filter.FromDate})
	}
	if filter.ToDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"v.visit_date": *filter.ToDate})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"v.status": *filter.Status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPrisonWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPrisonWithFilter - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var visits []*domain.OfficialVisit
	for rows.Next() {
		visit, err := scanVisit(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByPrisonWithFilter - scan visit: %v", ErrScanRow, err)
		}
		visits = append(visits, visit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByPrisonWithFilter - iterate rows: %v", ErrExecQuery, err)
	}

	return visits, nil
}

// CountByVisitSlot возвращает количество визитов слота независимо от статуса.
// Используется как referential guard при удалении слота визитов.
func (r *Repository) CountByVisitSlot(ctx context.Context, visitSlotID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("visits").
		Where(squirrel.Eq{"visit_slot_id": visitSlotID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountByVisitSlot - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByVisitSlot - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// GetBookedOccupancy получает занятость слотов для расчета доступности:
// одна строка на каждый активный (booked) визит тюрьмы в периоде.
// Агрегацию по (visit slot, дата) выполняет движок.
func (r *Repository) GetBookedOccupancy(ctx context.Context, prisonCode string, fromDate, toDate time.Time) ([]*domain.BookedOccupancy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"vs.time_slot_id",
		"v.visit_slot_id",
		"v.visit_date",
		"v.visit_type = 'video'",
	).
		From("visits v").
		Join("visit_slots vs ON vs.id = v.visit_slot_id").
		Where(squirrel.Eq{"v.prison_code": prisonCode, "v.status": domain.StatusBooked}).
		Where(squirrel.GtOrEq{"v.visit_date": fromDate}).
		Where(squirrel.LtOrEq{"v.visit_date": toDate}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBookedOccupancy - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookedOccupancy - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var occupancy []*domain.BookedOccupancy
	for rows.Next() {
		var row domain.BookedOccupancy
		if err := rows.Scan(&row.TimeSlotID, &row.VisitSlotID, &row.VisitDate, &row.IsVideo); err != nil {
			return nil, fmt.Errorf("%w: GetBookedOccupancy - scan occupancy: %v", ErrScanRow, err)
		}
		occupancy = append(occupancy, &row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBookedOccupancy - iterate rows: %v", ErrExecQuery, err)
	}

	return occupancy, nil
}

// Cancel переводит визит в статус cancelled с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("visits").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "Cancel", query, args)
}

// Complete переводит визит в статус completed
func (r *Repository) Complete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("visits").
		Set("status", domain.StatusCompleted).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Complete - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "Complete", query, args)
}

// UpdateAttendance записывает явку посетителей визита
func (r *Repository) UpdateAttendance(ctx context.Context, visitID int64, attendance []domain.VisitorAttendance) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	for _, record := range attendance {
		query, args, err := psqlbuilder.Update("visit_visitors").
			Set("attended", record.Attended).
			Where(squirrel.Eq{"visit_id": visitID, "contact_id": record.ContactID}).
			ToSql()

		if err != nil {
			return fmt.Errorf("%w: UpdateAttendance - build update query: %v", ErrBuildQuery, err)
		}

		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: UpdateAttendance - execute update: %v", ErrExecQuery, err)
		}
	}

	return nil
}

// ExpireOverdue переводит в статус expired все booked-визиты, чей слот уже
// закончился: дата в прошлом либо сегодня с end_time <= текущего времени.
// Возвращает ссылки затронутых визитов для публикации событий.
func (r *Repository) ExpireOverdue(ctx context.Context, today time.Time, nowTime types.TimeString) ([]uuid.UUID, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("visits v").
		Set("status", domain.StatusExpired).
		Set("updated_at", squirrel.Expr("NOW()")).
		From("visit_slots vs JOIN time_slots ts ON ts.id = vs.time_slot_id").
		Where("vs.id = v.visit_slot_id").
		Where(squirrel.Eq{"v.status": domain.StatusBooked}).
		Where(squirrel.Or{
			squirrel.Lt{"v.visit_date": today},
			squirrel.And{
				squirrel.Eq{"v.visit_date": today},
				squirrel.LtOrEq{"ts.end_time": nowTime.String()},
			},
		}).
		Suffix("RETURNING v.reference").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ExpireOverdue - build update query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ExpireOverdue - execute update: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var references []uuid.UUID
	for rows.Next() {
		var ref uuid.UUID
		if err := rows.Scan(&ref); err != nil {
			return nil, fmt.Errorf("%w: ExpireOverdue - scan reference: %v", ErrScanRow, err)
		}
		references = append(references, ref)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ExpireOverdue - iterate rows: %v", ErrExecQuery, err)
	}

	return references, nil
}

func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, method, query string, args []interface{}) error {
	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, method, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - rows affected: %v", ErrExecQuery, method, err)
	}
	if affected == 0 {
		return ErrVisitNotFound
	}

	return nil
}

func (r *Repository) getVisitors(ctx context.Context, executor DBExecutor, visitID int64) ([]domain.Visitor, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"visit_id",
		"contact_id",
		"first_name",
		"last_name",
		"attended",
	).
		From("visit_visitors").
		Where(squirrel.Eq{"visit_id": visitID}).
		OrderBy("id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getVisitors - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getVisitors - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var visitors []domain.Visitor
	for rows.Next() {
		var visitor domain.Visitor
		var attended sql.NullBool

		if err := rows.Scan(
			&visitor.ID,
			&visitor.VisitID,
			&visitor.ContactID,
			&visitor.FirstName,
			&visitor.LastName,
			&attended,
		); err != nil {
			return nil, fmt.Errorf("%w: getVisitors - scan visitor: %v", ErrScanRow, err)
		}

		if attended.Valid {
			value := attended.Bool
			visitor.Attended = &value
		}

		visitors = append(visitors, visitor)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getVisitors - iterate rows: %v", ErrExecQuery, err)
	}

	return visitors, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanVisit(row rowScanner) (*domain.OfficialVisit, error) {
	var visit domain.OfficialVisit
	var cancellationReason sql.NullString
	var cancelledAt, createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&visit.ID,
		&visit.Reference,
		&visit.VisitSlotID,
		&visit.TimeSlotID,
		&visit.PrisonCode,
		&visit.PrisonerNumber,
		&visit.VisitDate,
		&visit.VisitType,
		&visit.Status,
		&cancellationReason,
		&cancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if cancellationReason.Valid {
		visit.CancellationReason = &cancellationReason.String
	}
	if cancelledAt.Valid {
		ts := cancelledAt.Time
		visit.CancelledAt = &ts
	}
	visit.CreatedAt = createdAt.Time
	visit.UpdatedAt = updatedAt.Time

	return &visit, nil
}
