package domain

import "time"

// AppointmentState represents the state of an appointment
type AppointmentState string

const (
	StateConfirmed AppointmentState = "confirmed"
	StateCancelled AppointmentState = "cancelled"
)

func (s AppointmentState) IsValid() bool {
	return s == StateConfirmed || s == StateCancelled
}

// Appointment a booked interval [StartAt, EndAt) for one service.
// Only confirmed appointments take part in overlap checks.
type Appointment struct {
	ID          int64
	ServiceID   int64
	ClientName  string
	ClientEmail *string
	StartAt     time.Time
	EndAt       time.Time
	State       AppointmentState

	// Заполняется при чтении с JOIN на services
	Service *ServiceSummary

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (a *Appointment) IsConfirmed() bool {
	return a.State == StateConfirmed
}

// CanBeCancelled returns true if the appointment can move to cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.State == StateConfirmed
}

// CanBeDeleted returns true if the appointment may be hard-deleted
func (a *Appointment) CanBeDeleted() bool {
	return a.State == StateCancelled
}

func (a *Appointment) Interval() Interval {
	return Interval{Start: a.StartAt, End: a.EndAt}
}

// AppointmentFilter фильтр списка записей
type AppointmentFilter struct {
	State        *AppointmentState
	StartFrom    *time.Time // start_at >= StartFrom
	StartBefore  *time.Time // start_at < StartBefore
	ClientSearch *string    // подстрока имени или email без учета регистра
	ClientEmail  *string    // точное совпадение, ограничивает выборку записями клиента
	NewestFirst  bool
}

// AppointmentStats dashboard counters
type AppointmentStats struct {
	ConfirmedTotal   int64
	RevenueThisMonth int64
	UpcomingWeek     int64
	Today            int64
}
