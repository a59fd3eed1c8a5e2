package schedule

import (
	"context"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	GetAll(ctx context.Context) ([]domain.WeeklyScheduleEntry, error)
	GetByWeekday(ctx context.Context, weekday domain.Weekday) (*domain.WeeklyScheduleEntry, error)
	UpsertAll(ctx context.Context, entries []domain.WeeklyScheduleEntry) error
}

// TemplateCache кеш недельного шаблона; может отсутствовать
type TemplateCache interface {
	Get(ctx context.Context) ([]domain.WeeklyScheduleEntry, bool, error)
	Set(ctx context.Context, entries []domain.WeeklyScheduleEntry) error
	Invalidate(ctx context.Context) error
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// CacheMetrics учет попаданий в кеш
type CacheMetrics interface {
	ObserveCacheLookup(cache string, hit bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
