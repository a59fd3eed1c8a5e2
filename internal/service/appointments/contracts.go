package appointments

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	ListByFilter(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error)
	UpdateState(ctx context.Context, id int64, from, to domain.AppointmentState, ownerEmail *string) error
	DeleteCancelled(ctx context.Context, id int64) error
	PurgeCancelled(ctx context.Context) (int64, error)
	Stats(ctx context.Context, now time.Time, loc *time.Location) (*domain.AppointmentStats, error)
}

// Clock источник текущего времени и зоны бизнеса
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

// Metrics бизнес-метрики
type Metrics interface {
	IncBookingCancelled()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
