package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("service not found")

	// ErrInvalidDate возвращается, когда startAt не удается разобрать
	ErrInvalidDate = errors.New("invalid start date")

	// ErrPastDate возвращается, когда startAt раньше текущего момента
	ErrPastDate = errors.New("start date is in the past")

	// ErrNonWorkingDay возвращается, когда день недели нерабочий
	ErrNonWorkingDay = errors.New("non working day")

	// ErrOutsideBusinessHours возвращается, когда запись выходит за часы работы
	ErrOutsideBusinessHours = errors.New("outside business hours")

	// ErrSlotConflict возвращается, когда интервал пересекается с подтвержденной записью
	ErrSlotConflict = errors.New("slot is already booked")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)

// ConflictError отказ из-за пересечения; Existing может быть nil,
// если конфликтующую запись не удалось перечитать
type ConflictError struct {
	Existing *domain.Appointment
}

func (e *ConflictError) Error() string {
	if e.Existing == nil {
		return ErrSlotConflict.Error()
	}
	return fmt.Sprintf("%s: appointment id=%d [%s, %s)", ErrSlotConflict,
		e.Existing.ID, e.Existing.StartAt.Format(domain.LocalDateTimeFormat), e.Existing.EndAt.Format(domain.LocalDateTimeFormat))
}

func (e *ConflictError) Unwrap() error {
	return ErrSlotConflict
}

// rejectReason метка причины отказа для метрик
func rejectReason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrServiceNotFound):
		return "service_not_found"
	case errors.Is(err, ErrInvalidDate):
		return "invalid_date"
	case errors.Is(err, ErrPastDate):
		return "past_date"
	case errors.Is(err, ErrNonWorkingDay):
		return "non_working_day"
	case errors.Is(err, ErrOutsideBusinessHours):
		return "outside_business_hours"
	case errors.Is(err, ErrSlotConflict):
		return "slot_conflict"
	default:
		return "internal"
	}
}
