package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// FindConfirmedOverlapping внутри транзакции блокирует найденные строки
	FindConfirmedOverlapping(ctx context.Context, from, to time.Time) ([]*domain.Appointment, error)
	InsertConfirmed(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
}

// ServiceCatalog интерфейс каталога услуг
type ServiceCatalog interface {
	GetActiveByID(ctx context.Context, id int64) (*domain.Service, error)
}

// ScheduleProvider источник недельного шаблона; читает базу в обход кеша
type ScheduleProvider interface {
	GetEntryFresh(ctx context.Context, weekday domain.Weekday) (domain.WeeklyScheduleEntry, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Clock часы бизнеса
type Clock interface {
	Now() time.Time
	Location() *time.Location
	ParseInstant(s string) (time.Time, error)
	LocalDate(t time.Time) time.Time
}

// Metrics бизнес-метрики записи
type Metrics interface {
	IncBookingCreated()
	IncBookingRejected(reason string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
