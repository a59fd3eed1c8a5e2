package get_availability

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// Reason причина недоступности слота
type Reason string

const (
	ReasonNone           Reason = ""
	ReasonPast           Reason = "past"
	ReasonExceedsClosing Reason = "exceeds_closing"
	ReasonBooked         Reason = "booked"
)

// Request модель запроса доступности
type Request struct {
	Date      string // YYYY-MM-DD в зоне бизнеса
	ServiceID int64
}

// Response модель ответа доступности
type Response struct {
	Date    time.Time // локальная полночь запрошенной даты
	Service *domain.Service
	Availability
}

// Availability результат расчета слотов на день
type Availability struct {
	IsOpen bool
	Open   *types.TimeString
	Close  *types.TimeString
	Break  *BreakWindow
	Slots  []Slot
}

// BreakWindow перерыв [Start, End)
type BreakWindow struct {
	Start types.TimeString
	End   types.TimeString
}

// Slot кандидат на начало записи
type Slot struct {
	Time      types.TimeString // настенное время начала
	StartAt   time.Time
	EndAt     time.Time
	Available bool
	Reason    Reason
}

// SlotInput входные данные расчета слотов
type SlotInput struct {
	Entry           domain.WeeklyScheduleEntry
	DurationMinutes int
	StepMinutes     int
	Date            time.Time // календарная дата в зоне бизнеса
	Existing        []*domain.Appointment
	Now             time.Time
	Location        *time.Location
}
