package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberBooking/pkg/pgerr"
	"github.com/m04kA/SMC-BarberBooking/pkg/psqlbuilder"
)

type DBExecutor = dbmetrics.DBExecutor

var columns = []string{
	"id",
	"name",
	"description",
	"duration_minutes",
	"price_amount",
	"active",
	"created_at",
	"updated_at",
}

// UpdateFields частичное обновление услуги; nil означает "не менять"
type UpdateFields struct {
	Name            *string
	Description     *string
	DurationMinutes *int
	PriceAmount     *int64
	Active          *bool
}

func (f UpdateFields) IsEmpty() bool {
	return f.Name == nil && f.Description == nil && f.DurationMinutes == nil && f.PriceAmount == nil && f.Active == nil
}

// Repository репозиторий каталога услуг
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория услуг
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает услугу по ID независимо от активности
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetActiveByID получает только активную услугу
func (r *Repository) GetActiveByID(ctx context.Context, id int64) (*domain.Service, error) {
	return r.getOne(ctx, "GetActiveByID", squirrel.Eq{"id": id, "active": true})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("services").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	service, err := scanService(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan service: %v", ErrScanRow, op, err)
	}

	return service, nil
}

// ListActive возвращает активные услуги по имени
func (r *Repository) ListActive(ctx context.Context) ([]*domain.Service, error) {
	return r.list(ctx, "ListActive", true)
}

// ListAll возвращает все услуги, включая неактивные
func (r *Repository) ListAll(ctx context.Context) ([]*domain.Service, error) {
	return r.list(ctx, "ListAll", false)
}

func (r *Repository) list(ctx context.Context, op string, onlyActive bool) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("services").
		OrderBy("name ASC", "id ASC")

	if onlyActive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		service, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		services = append(services, service)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return services, nil
}

// Create создает активную услугу
func (r *Repository) Create(ctx context.Context, service *domain.Service) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("services").
		Columns("name", "description", "duration_minutes", "price_amount").
		Values(service.Name, service.Description, service.DurationMinutes, service.PriceAmount).
		Suffix("RETURNING id, active, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	created := *service
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&created.ID,
		&created.Active,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return &created, nil
}

// Update частично обновляет услугу и возвращает ее новое состояние
func (r *Repository) Update(ctx context.Context, id int64, fields UpdateFields) (*domain.Service, error) {
	if fields.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("services").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	if fields.Name != nil {
		updateBuilder = updateBuilder.Set("name", *fields.Name)
	}
	if fields.Description != nil {
		updateBuilder = updateBuilder.Set("description", *fields.Description)
	}
	if fields.DurationMinutes != nil {
		updateBuilder = updateBuilder.Set("duration_minutes", *fields.DurationMinutes)
	}
	if fields.PriceAmount != nil {
		updateBuilder = updateBuilder.Set("price_amount", *fields.PriceAmount)
	}
	if fields.Active != nil {
		updateBuilder = updateBuilder.Set("active", *fields.Active)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	service, err := scanService(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return service, nil
}

// Deactivate помечает услугу неактивной (мягкое удаление)
func (r *Repository) Deactivate(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("services").
		Set("active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Deactivate - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "Deactivate", query, args)
}

// Delete физически удаляет услугу.
// Если на нее ссылаются записи, возвращает ErrServiceInUse.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "Delete", query, args)
}

func (r *Repository) execAffectingOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if pgerr.IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: %s: %v", ErrServiceInUse, op, err)
		}
		return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrServiceNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanService(row rowScanner) (*domain.Service, error) {
	var service domain.Service

	err := row.Scan(
		&service.ID,
		&service.Name,
		&service.Description,
		&service.DurationMinutes,
		&service.PriceAmount,
		&service.Active,
		&service.CreatedAt,
		&service.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &service, nil
}
