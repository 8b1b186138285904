package visitslot

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/ovs-lab/OVS-VisitScheduler/internal/domain"
	"github.com/ovs-lab/OVS-VisitScheduler/pkg/dbmetrics"
	"github.com/ovs-lab/OVS-VisitScheduler/pkg/psqlbuilder"
)

// Repository репозиторий для работы со слотами визитов (visit slots)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов визитов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var visitSlotColumns = []string{
	"id",
	"time_slot_id",
	"dps_location_id",
	"max_adults",
	"max_groups",
	"max_video_sessions",
	"created_at",
	"updated_at",
}

// Create создает новый слот визитов под существующим шаблоном
func (r *Repository) Create(ctx context.Context, slot *domain.VisitSlot) (*domain.VisitSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("visit_slots").
		Columns(
			"time_slot_id",
			"dps_location_id",
			"max_adults",
			"max_groups",
			"max_video_sessions",
		).
		Values(
			slot.TimeSlotID,
			slot.DpsLocationID,
			slot.MaxAdults,
			slot.MaxGroups,
			slot.MaxVideoSessions,
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

// GetByID получает слот визитов по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.VisitSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(visitSlotColumns...).
		From("visit_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanVisitSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrVisitSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan visit slot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// GetByTimeSlot получает все слоты визитов шаблона
func (r *Repository) GetByTimeSlot(ctx context.Context, timeSlotID int64) ([]*domain.VisitSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(visitSlotColumns...).
		From("visit_slots").
		Where(squirrel.Eq{"time_slot_id": timeSlotID}).
		OrderBy("id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByTimeSlot - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTimeSlot - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var slots []*domain.VisitSlot
	for rows.Next() {
		slot, err := scanVisitSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByTimeSlot - scan visit slot: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByTimeSlot - iterate rows: %v", ErrExecQuery, err)
	}

	return slots, nil
}

// CountByTimeSlot возвращает количество слотов визитов под шаблоном.
// Используется как referential guard при удалении шаблона.
func (r *Repository) CountByTimeSlot(ctx context.Context, timeSlotID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("visit_slots").
		Where(squirrel.Eq{"time_slot_id": timeSlotID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountByTimeSlot - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByTimeSlot - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// Update обновляет локацию и вместимости слота визитов
func (r *Repository) Update(ctx context.Context, slot *domain.VisitSlot) (*domain.VisitSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("visit_slots").
		Set("dps_location_id", slot.DpsLocationID).
		Set("max_adults", slot.MaxAdults).
		Set("max_groups", slot.MaxGroups).
		Set("max_video_sessions", slot.MaxVideoSessions).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slot.ID}).
		Suffix("RETURNING time_slot_id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&slot.TimeSlotID,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrVisitSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return slot, nil
}

// Delete удаляет слот визитов.
// Проверка отсутствия зависимых визитов выполняется на уровне сервиса.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("visit_slots").
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
		return ErrVisitSlotNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanVisitSlot(row rowScanner) (*domain.VisitSlot, error) {
	var slot domain.VisitSlot
	var maxAdults, maxGroups, maxVideo sql.NullInt64
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&slot.ID,
		&slot.TimeSlotID,
		&slot.DpsLocationID,
		&maxAdults,
		&maxGroups,
		&maxVideo,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	slot.MaxAdults = nullableInt(maxAdults)
	slot.MaxGroups = nullableInt(maxGroups)
	slot.MaxVideoSessions = nullableInt(maxVideo)
	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return &slot, nil
}

func nullableInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
