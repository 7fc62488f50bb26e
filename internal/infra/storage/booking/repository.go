package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-GradShootBooking/internal/domain"
	"github.com/m04kA/SMC-GradShootBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-GradShootBooking/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"user_id",
	"type",
	"date",
	"time",
	"status",
	"name",
	"email",
	"mobile",
	"package",
	"addons",
	"makeup",
	"remarks",
	"synced",
	"initial_booking_at",
	"created_at",
	"updated_at",
	"cancelled_at",
	"version",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create вставляет бронь. Если ID пустой, генерируется UUID.
// Вторая подтвержденная бронь пользователя отсекается уникальным индексом.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"user_id",
			"type",
			"date",
			"time",
			"status",
			"name",
			"email",
			"mobile",
			"package",
			"addons",
			"makeup",
			"remarks",
			"synced",
			"initial_booking_at",
		).
		Values(
			booking.ID,
			booking.UserID,
			booking.Type,
			booking.Date,
			booking.Time,
			booking.Status,
			booking.Name,
			booking.Email,
			booking.Mobile,
			booking.Package,
			booking.Addons,
			booking.Makeup,
			booking.Remarks,
			booking.Synced,
			booking.InitialBookingAt,
		).
		Suffix("RETURNING created_at, updated_at, version").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.CreatedAt, &booking.UpdatedAt, &booking.Version)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation && pqErr.Constraint == activeBookingIndex {
			return nil, ErrActiveBookingExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}
	return b, nil
}

// GetActiveByUser возвращает подтвержденную бронь пользователя.
// Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetActiveByUser(ctx context.Context, userID string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": userID, "status": domain.StatusConfirmed}).
		OrderBy("created_at DESC").
		Limit(1)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByUser - build select query: %w", ErrBuildQuery, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByUser - scan booking: %w", ErrScanRow, err)
	}
	return b, nil
}

// CountActiveByUser количество подтвержденных броней пользователя
func (r *Repository) CountActiveByUser(ctx context.Context, userID string) (int, error) {
	return r.count(ctx, "CountActiveByUser", squirrel.Eq{"user_id": userID, "status": domain.StatusConfirmed})
}

// CountConfirmedBySlot количество подтвержденных броней в слоте
func (r *Repository) CountConfirmedBySlot(ctx context.Context, slot domain.SlotKey) (int, error) {
	return r.count(ctx, "CountConfirmedBySlot", squirrel.Eq{
		"type":   slot.Type,
		"date":   slot.Date,
		"time":   slot.Time,
		"status": domain.StatusConfirmed,
	})
}

func (r *Repository) count(ctx context.Context, op string, where squirrel.Eq) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(where).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - build count query: %w", ErrBuildQuery, op, err)
	}

	var n int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: %s - scan count: %w", ErrScanRow, op, err)
	}
	return n, nil
}

// GetInitialBookingAt время самой первой брони пользователя.
// Возвращает nil, если пользователь никогда не бронировал.
func (r *Repository) GetInitialBookingAt(ctx context.Context, userID string) (*time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("MIN(initial_booking_at)").
		From("bookings").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetInitialBookingAt - build select query: %w", ErrBuildQuery, err)
	}

	var initial sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&initial); err != nil {
		return nil, fmt.Errorf("%w: GetInitialBookingAt - scan: %w", ErrScanRow, err)
	}
	if !initial.Valid {
		return nil, nil
	}
	return &initial.Time, nil
}

// Cancel переводит подтвержденную бронь в Cancelled, сбрасывает synced
// и поднимает version, чтобы отмена попала в таблицу
func (r *Repository) Cancel(ctx context.Context, id string, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("synced", false).
		Set("cancelled_at", at).
		Set("updated_at", at).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusConfirmed}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// ListUnsynced брони, еще не выгруженные в таблицу, от старых к новым
func (r *Repository) ListUnsynced(ctx context.Context, limit int, excludeIDs ...string) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"synced": false}).
		OrderBy("created_at ASC").
		Limit(uint64(limit))

	if len(excludeIDs) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": excludeIDs})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListUnsynced - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListUnsynced - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// MarkSynced одним запросом проставляет synced=true строкам, которые
// не менялись с выгруженной версии. Измененные строки остаются synced=false.
func (r *Repository) MarkSynced(ctx context.Context, marks ...domain.SyncMark) (int64, error) {
	if len(marks) == 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	match := make(squirrel.Or, 0, len(marks))
	for _, m := range marks {
		match = append(match, squirrel.And{
			squirrel.Eq{"id": m.ID},
			squirrel.Eq{"version": m.Version},
		})
	}

	query, args, err := psqlbuilder.Update("bookings").
		Set("synced", true).
		Where(match).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: MarkSynced - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: MarkSynced - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: MarkSynced - get rows affected: %w", ErrExecQuery, err)
	}
	return rowsAffected, nil
}

// ListByStatus брони со статусом, упорядоченные по дате и времени
func (r *Repository) ListByStatus(ctx context.Context, status domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"status": status}).
		OrderBy("date ASC", "time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByStatus - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByStatus - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		b           domain.Booking
		cancelledAt sql.NullTime
	)

	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.Type,
		&b.Date,
		&b.Time,
		&b.Status,
		&b.Name,
		&b.Email,
		&b.Mobile,
		&b.Package,
		&b.Addons,
		&b.Makeup,
		&b.Remarks,
		&b.Synced,
		&b.InitialBookingAt,
		&b.CreatedAt,
		&b.UpdatedAt,
		&cancelledAt,
		&b.Version,
	)
	if err != nil {
		return nil, err
	}

	if cancelledAt.Valid {
		b.CancelledAt = &cancelledAt.Time
	}
	return &b, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan booking: %w", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %w", ErrScanRow, err)
	}
	return bookings, nil
}
