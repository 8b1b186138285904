package timeslot

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/ovs-lab/OVS-VisitScheduler/internal/domain"
	"github.com/ovs-lab/OVS-VisitScheduler/pkg/dbmetrics"
	"github.com/ovs-lab/OVS-VisitScheduler/pkg/psqlbuilder"
)

// Repository репозиторий для работы с шаблонами слотов (recurring time slots)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория шаблонов слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var timeSlotColumns = []string{
	"id",
	"prison_code",
	"day_code",
	"start_time",
	"end_time",
	"effective_date",
	"expiry_date",
	"created_at",
	"updated_at",
}

// Create создает новый шаблон слота
func (r *Repository) Create(ctx context.Context, slot *domain.RecurringTimeSlot) (*domain.RecurringTimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("time_slots").
		Columns(
			"prison_code",
			"day_code",
			"start_time",
			"end_time",
			"effective_date",
			"expiry_date",
		).
		Values(
			slot.PrisonCode,
			slot.DayCode,
			slot.StartTime,
			slot.EndTime,
			slot.EffectiveDate,
			slot.ExpiryDate,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&slot.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return slot, nil
}

// GetByID получает шаблон слота по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.RecurringTimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(timeSlotColumns...).
		From("time_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanTimeSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrTimeSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan time slot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// GetByPrison получает все шаблоны слотов тюрьмы, отсортированные по дню недели
// и времени начала
func (r *Repository) GetByPrison(ctx context.Context, prisonCode string) ([]*domain.RecurringTimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(timeSlotColumns...).
		From("time_slots").
		Where(squirrel.Eq{"prison_code": prisonCode}).
		OrderBy("day_code", "start_time", "id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByPrison - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPrison - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var slots []*domain.RecurringTimeSlot
	for rows.Next() {
		slot, err := scanTimeSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByPrison - scan time slot: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByPrison - iterate rows: %v", ErrExecQuery, err)
	}

	return slots, nil
}

// Update полностью заменяет поля шаблона слота (кроме audit-полей)
func (r *Repository) Update(ctx context.Context, slot *domain.RecurringTimeSlot) (*domain.RecurringTimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("time_slots").
		Set("prison_code", slot.PrisonCode).
		Set("day_code", slot.DayCode).
		Set("start_time", slot.StartTime).
		Set("end_time", slot.EndTime).
		Set("effective_date", slot.EffectiveDate).
		Set("expiry_date", slot.ExpiryDate).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slot.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrTimeSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return slot, nil
}

// Delete удаляет шаблон слота.
// Проверка отсутствия зависимых visit slots выполняется на уровне сервиса.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("time_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrTimeSlotNotFound
	}

	return nil
}

// GetConfiguredSlots получает read model для расчета доступности:
// все пары (time slot, visit slot) тюрьмы. Фильтрация по effective/expiry
// выполняется движком при разворачивании шаблонов в даты, не здесь.
// Незаданные вместимости читаются как 0.
func (r *Repository) GetConfiguredSlots(ctx context.Context, prisonCode string) ([]*domain.ConfiguredSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"ts.id",
		"vs.id",
		"ts.prison_code",
		"ts.day_code",
		"ts.start_time",
		"ts.end_time",
		"ts.effective_date",
		"ts.expiry_date",
		"vs.dps_location_id",
		"COALESCE(vs.max_adults, 0)",
		"COALESCE(vs.max_groups, 0)",
		"COALESCE(vs.max_video_sessions, 0)",
	).
		From("time_slots ts").
		Join("visit_slots vs ON vs.time_slot_id = ts.id").
		Where(squirrel.Eq{"ts.prison_code": prisonCode}).
		OrderBy("ts.day_code", "ts.start_time", "vs.id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetConfiguredSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetConfiguredSlots - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var slots []*domain.ConfiguredSlot
	for rows.Next() {
		var slot domain.ConfiguredSlot
		var expiryDate sql.NullTime

		err = rows.Scan(
			&slot.TimeSlotID,
			&slot.VisitSlotID,
			&slot.PrisonCode,
			&slot.DayCode,
			&slot.StartTime,
			&slot.EndTime,
			&slot.EffectiveDate,
			&expiryDate,
			&slot.DpsLocationID,
			&slot.MaxAdults,
			&slot.MaxGroups,
			&slot.MaxVideoSessions,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetConfiguredSlots - scan configured slot: %v", ErrScanRow, err)
		}

		if expiryDate.Valid {
			expiry := expiryDate.Time
			slot.ExpiryDate = &expiry
		}

		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetConfiguredSlots - iterate rows: %v", ErrExecQuery, err)
	}

	return slots, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTimeSlot(row rowScanner) (*domain.RecurringTimeSlot, error) {
	var slot domain.RecurringTimeSlot
	var expiryDate, createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&slot.ID,
		&slot.PrisonCode,
		&slot.DayCode,
		&slot.StartTime,
		&slot.EndTime,
		&slot.EffectiveDate,
		&expiryDate,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if expiryDate.Valid {
		expiry := expiryDate.Time
		slot.ExpiryDate = &expiry
	}
	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return &slot, nil
}
