package slotconfig

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-GradShootBooking/internal/domain"
	"github.com/m04kA/SMC-GradShootBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-GradShootBooking/pkg/psqlbuilder"
)

// Repository репозиторий вместимости слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get возвращает вместимость слота.
// Внутри транзакции строка блокируется (FOR UPDATE), так что параллельные
// заявки на один слот выстраиваются в очередь.
func (r *Repository) Get(ctx context.Context, slot domain.SlotKey) (*domain.SlotConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("capacity").
		From("slot_config").
		Where(squirrel.Eq{"type": slot.Type, "date": slot.Date, "time": slot.Time})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	cfg := &domain.SlotConfig{SlotKey: slot}
	err = executor.QueryRowContext(ctx, query, args...).Scan(&cfg.Capacity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotConfigured
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan capacity: %w", ErrScanRow, err)
	}
	return cfg, nil
}

// Upsert задает вместимость слота
func (r *Repository) Upsert(ctx context.Context, cfg domain.SlotConfig) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("slot_config").
		Columns("type", "date", "time", "capacity").
		Values(cfg.Type, cfg.Date, cfg.Time, cfg.Capacity).
		Suffix("ON CONFLICT (type, date, time) DO UPDATE SET capacity = EXCLUDED.capacity").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %w", ErrExecQuery, err)
	}
	return nil
}

// ListUsage вместимость и число подтвержденных броней по каждому слоту типа.
// date ограничивает выборку одним днем.
func (r *Repository) ListUsage(ctx context.Context, shootType domain.ShootType, date *time.Time) ([]domain.SlotUsage, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("s.date", "s.time", "s.capacity", "COUNT(b.id)").
		From("slot_config s").
		LeftJoin("bookings b ON b.type = s.type AND b.date = s.date AND b.time = s.time AND b.status = ?",
			domain.StatusConfirmed).
		Where(squirrel.Eq{"s.type": shootType}).
		GroupBy("s.date", "s.time", "s.capacity").
		OrderBy("s.date ASC")

	if date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"s.date": *date})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListUsage - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListUsage - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	usage := make([]domain.SlotUsage, 0)
	for rows.Next() {
		var u domain.SlotUsage
		if err := rows.Scan(&u.Date, &u.Time, &u.Capacity, &u.Confirmed); err != nil {
			return nil, fmt.Errorf("%w: ListUsage - scan row: %w", ErrScanRow, err)
		}
		usage = append(usage, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListUsage - rows error: %w", ErrScanRow, err)
	}
	return usage, nil
}
