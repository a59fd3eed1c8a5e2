package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberBooking/pkg/pgerr"
	"github.com/m04kA/SMC-BarberBooking/pkg/psqlbuilder"
)

var appointmentColumns = []string{
	"id",
	"service_id",
	"client_name",
	"client_email",
	"start_at",
	"end_at",
	"state",
	"created_at",
	"updated_at",
}

// Колонки записи с данными услуги для отображения
var joinedColumns = []string{
	"a.id",
	"a.service_id",
	"a.client_name",
	"a.client_email",
	"a.start_at",
	"a.end_at",
	"a.state",
	"a.created_at",
	"a.updated_at",
	"s.name",
	"s.duration_minutes",
	"s.price_amount",
}

// Repository репозиторий записей клиентов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// FindConfirmedOverlapping возвращает подтвержденные записи, пересекающиеся с [from, to).
// Внутри транзакции строки блокируются (FOR UPDATE).
func (r *Repository) FindConfirmedOverlapping(ctx context.Context, from, to time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// Тот же предикат, что и domain.Overlaps: start_at < to AND end_at > from
	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"state": domain.StateConfirmed}).
		Where(squirrel.Lt{"start_at": to}).
		Where(squirrel.Gt{"end_at": from}).
		OrderBy("start_at ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindConfirmedOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindConfirmedOverlapping - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows, false)
}

// InsertConfirmed сохраняет подтвержденную запись.
// Пересечение с другой подтвержденной записью отклоняется базой и возвращается как ErrSlotConflict.
func (r *Repository) InsertConfirmed(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"service_id",
			"client_name",
			"client_email",
			"start_at",
			"end_at",
			"state",
		).
		Values(
			a.ServiceID,
			a.ClientName,
			a.ClientEmail,
			a.StartAt.UTC(),
			a.EndAt.UTC(),
			domain.StateConfirmed,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: InsertConfirmed - build insert query: %v", ErrBuildQuery, err)
	}

	created := *a
	created.State = domain.StateConfirmed

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&created.ID,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		switch {
		case pgerr.IsExclusionViolation(err):
			return nil, fmt.Errorf("%w: InsertConfirmed: %v", ErrSlotConflict, err)
		case pgerr.IsForeignKeyViolation(err):
			return nil, fmt.Errorf("%w: InsertConfirmed: %v", ErrServiceReference, err)
		}
		// Ошибку сериализации (40001) сохраняем в цепочке, чтобы txmanager мог повторить транзакцию
		return nil, fmt.Errorf("%w: InsertConfirmed - execute insert: %w", ErrExecQuery, err)
	}

	return &created, nil
}

// UpdateState переводит запись из состояния from в to одним условным UPDATE.
// Если запись не существует или уже не в состоянии from, возвращает ErrAppointmentNotFound.
// ownerEmail, если задан, дополнительно ограничивает обновление записями клиента.
func (r *Repository) UpdateState(ctx context.Context, id int64, from, to domain.AppointmentState, ownerEmail *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("appointments").
		Set("state", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"state": from})

	if ownerEmail != nil {
		updateBuilder = updateBuilder.Where(squirrel.Eq{"client_email": *ownerEmail})
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateState - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if pgerr.IsExclusionViolation(err) {
			return fmt.Errorf("%w: UpdateState: %v", ErrSlotConflict, err)
		}
		return fmt.Errorf("%w: UpdateState - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateState - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// GetByID получает запись по ID вместе с данными услуги
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(joinedColumns...).
		From("appointments a").
		Join("services s ON s.id = a.service_id").
		Where(squirrel.Eq{"a.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	a, err := scanJoined(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return a, nil
}

// ListByFilter получает записи по фильтру вместе с данными услуги.
//
// Примеры:
//
//	// записи клиента
//	filter := domain.AppointmentFilter{ClientEmail: ptr.Ptr("ana@example.com")}
//
//	// подтвержденные записи за день
//	filter := domain.AppointmentFilter{State: ptr.Ptr(domain.StateConfirmed), StartFrom: &dayStart, StartBefore: &dayEnd}
func (r *Repository) ListByFilter(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(joinedColumns...).
		From("appointments a").
		Join("services s ON s.id = a.service_id")

	if filter.State != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"a.state": *filter.State})
	}
	if filter.StartFrom != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"a.start_at": *filter.StartFrom})
	}
	if filter.StartBefore != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"a.start_at": *filter.StartBefore})
	}
	if filter.ClientEmail != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"a.client_email": *filter.ClientEmail})
	}
	if filter.ClientSearch != nil && *filter.ClientSearch != "" {
		pattern := "%" + *filter.ClientSearch + "%"
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.ILike{"a.client_name": pattern},
			squirrel.ILike{"a.client_email": pattern},
		})
	}

	if filter.NewestFirst {
		selectBuilder = selectBuilder.OrderBy("a.start_at DESC")
	} else {
		selectBuilder = selectBuilder.OrderBy("a.start_at ASC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows, true)
}

// DeleteCancelled физически удаляет запись, только если она отменена
func (r *Repository) DeleteCancelled(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("appointments").
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"state": domain.StateCancelled}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteCancelled - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteCancelled - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteCancelled - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// PurgeCancelled удаляет все отмененные записи и возвращает их количество
func (r *Repository) PurgeCancelled(ctx context.Context) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("appointments").
		Where(squirrel.Eq{"state": domain.StateCancelled}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: PurgeCancelled - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: PurgeCancelled - execute delete: %v", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: PurgeCancelled - get rows affected: %v", ErrExecQuery, err)
	}

	return deleted, nil
}

// Stats считает показатели панели администратора.
// Границы месяца и дня берутся в зоне loc.
func (r *Repository) Stats(ctx context.Context, now time.Time, loc *time.Location) (*domain.AppointmentStats, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	local := now.In(loc)
	monthStart := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
	monthEnd := monthStart.AddDate(0, 1, 0)
	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)
	weekEnd := now.AddDate(0, 0, 7)

	query, args, err := psqlbuilder.Select().
		Column(squirrel.Expr("COUNT(*)")).
		Column(squirrel.Expr("COALESCE(SUM(s.price_amount) FILTER (WHERE a.start_at >= ? AND a.start_at < ?), 0)", monthStart, monthEnd)).
		Column(squirrel.Expr("COUNT(*) FILTER (WHERE a.start_at >= ? AND a.start_at < ?)", now, weekEnd)).
		Column(squirrel.Expr("COUNT(*) FILTER (WHERE a.start_at >= ? AND a.start_at < ?)", dayStart, dayEnd)).
		From("appointments a").
		Join("services s ON s.id = a.service_id").
		Where(squirrel.Eq{"a.state": domain.StateConfirmed}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Stats - build select query: %v", ErrBuildQuery, err)
	}

	var stats domain.AppointmentStats
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&stats.ConfirmedTotal,
		&stats.RevenueThisMonth,
		&stats.UpcomingWeek,
		&stats.Today,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Stats - scan row: %v", ErrScanRow, err)
	}

	return &stats, nil
}

// CountFutureConfirmedByService количество подтвержденных записей на услугу, начинающихся не раньше now
func (r *Repository) CountFutureConfirmedByService(ctx context.Context, serviceID int64, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("appointments").
		Where(squirrel.Eq{"service_id": serviceID}).
		Where(squirrel.Eq{"state": domain.StateConfirmed}).
		Where(squirrel.GtOrEq{"start_at": now}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountFutureConfirmedByService - build select query: %v", ErrBuildQuery, err)
	}

	var count int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountFutureConfirmedByService - scan row: %v", ErrScanRow, err)
	}

	return count, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanJoined(row rowScanner) (*domain.Appointment, error) {
	var (
		a       domain.Appointment
		service domain.ServiceSummary
	)

	err := row.Scan(
		&a.ID,
		&a.ServiceID,
		&a.ClientName,
		&a.ClientEmail,
		&a.StartAt,
		&a.EndAt,
		&a.State,
		&a.CreatedAt,
		&a.UpdatedAt,
		&service.Name,
		&service.DurationMinutes,
		&service.PriceAmount,
	)
	if err != nil {
		return nil, err
	}

	service.ID = a.ServiceID
	a.Service = &service

	return &a, nil
}

func scanPlain(row rowScanner) (*domain.Appointment, error) {
	var a domain.Appointment

	err := row.Scan(
		&a.ID,
		&a.ServiceID,
		&a.ClientName,
		&a.ClientEmail,
		&a.StartAt,
		&a.EndAt,
		&a.State,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &a, nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func scanAppointments(rows *sql.Rows, joined bool) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		var (
			a   *domain.Appointment
			err error
		)
		if joined {
			a, err = scanJoined(rows)
		} else {
			a, err = scanPlain(rows)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}
