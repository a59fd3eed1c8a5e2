package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberBooking/pkg/pgerr"
	"github.com/m04kA/SMC-BarberBooking/pkg/psqlbuilder"
)

type DBExecutor = dbmetrics.DBExecutor

var columns = []string{
	"weekday",
	"is_working_day",
	"open_time",
	"close_time",
	"break_start",
	"break_end",
	"updated_at",
}

// Repository репозиторий недельного расписания (по одной строке на день недели)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetAll возвращает сохраненные строки, отсортированные по дню недели.
// Дни без строки в результат не попадают.
func (r *Repository) GetAll(ctx context.Context) ([]domain.WeeklyScheduleEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("weekly_schedule").
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]domain.WeeklyScheduleEntry, 0, domain.DaysPerWeek)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAll - scan row: %v", ErrScanRow, err)
		}
		entries = append(entries, *entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAll - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}

// GetByWeekday возвращает строку расписания дня недели.
// Внутри транзакции строка блокируется на чтение (FOR SHARE).
func (r *Repository) GetByWeekday(ctx context.Context, weekday domain.Weekday) (*domain.WeeklyScheduleEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("weekly_schedule").
		Where(squirrel.Eq{"weekday": int(weekday)})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR SHARE")
	}

	query, args, err := selectBuilder.ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByWeekday - build select query: %v", ErrBuildQuery, err)
	}

	entry, err := scanEntry(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		// Ошибка сериализации должна остаться в цепочке для повтора транзакции
		return nil, fmt.Errorf("%w: GetByWeekday - scan row: %w", ErrScanRow, err)
	}

	return entry, nil
}

// Upsert вставляет или заменяет строку дня недели.
// Для атомарной замены всей недели вызывайте внутри транзакции.
func (r *Repository) Upsert(ctx context.Context, entry domain.WeeklyScheduleEntry) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("weekly_schedule").
		Columns(
			"weekday",
			"is_working_day",
			"open_time",
			"close_time",
			"break_start",
			"break_end",
		).
		Values(
			int(entry.Weekday),
			entry.IsWorkingDay,
			entry.OpenTime,
			entry.CloseTime,
			entry.BreakStart,
			entry.BreakEnd,
		).
		Suffix(`ON CONFLICT (weekday) DO UPDATE SET
			is_working_day = EXCLUDED.is_working_day,
			open_time = EXCLUDED.open_time,
			close_time = EXCLUDED.close_time,
			break_start = EXCLUDED.break_start,
			break_end = EXCLUDED.break_end,
			updated_at = NOW()`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if pgerr.IsCheckViolation(err) {
			return fmt.Errorf("%w: Upsert weekday=%d: %v", ErrInvalidEntry, entry.Weekday, err)
		}
		return fmt.Errorf("%w: Upsert - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// UpsertAll сохраняет все переданные строки. Транзакцию открывает вызывающий код.
func (r *Repository) UpsertAll(ctx context.Context, entries []domain.WeeklyScheduleEntry) error {
	for _, entry := range entries {
		if err := r.Upsert(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row rowScanner) (*domain.WeeklyScheduleEntry, error) {
	var (
		entry   domain.WeeklyScheduleEntry
		weekday int
	)

	err := row.Scan(
		&weekday,
		&entry.IsWorkingDay,
		&entry.OpenTime,
		&entry.CloseTime,
		&entry.BreakStart,
		&entry.BreakEnd,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.Weekday = domain.Weekday(weekday)
	return &entry, nil
}
