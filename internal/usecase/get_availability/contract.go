package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// ServiceCatalog интерфейс каталога услуг
type ServiceCatalog interface {
	// GetActiveByID возвращает только активную услугу
	GetActiveByID(ctx context.Context, id int64) (*domain.Service, error)
}

// ScheduleProvider источник недельного шаблона
type ScheduleProvider interface {
	// GetEntry всегда возвращает запись; отсутствующий день считается нерабочим
	GetEntry(ctx context.Context, weekday domain.Weekday) (domain.WeeklyScheduleEntry, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	FindConfirmedOverlapping(ctx context.Context, from, to time.Time) ([]*domain.Appointment, error)
}

// Clock часы бизнеса
type Clock interface {
	Now() time.Time
	Location() *time.Location
	ParseDate(s string) (time.Time, error)
	DayRange(date time.Time) domain.Interval
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
