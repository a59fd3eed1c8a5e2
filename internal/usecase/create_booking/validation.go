package create_booking

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// normalizeRequest валидирует входные данные и убирает пробелы по краям
func normalizeRequest(req *Request) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	req.ClientName = strings.TrimSpace(req.ClientName)
	if req.ClientName == "" {
		return fmt.Errorf("%w: clientName is required", ErrInvalidInput)
	}
	if len(req.ClientName) > domain.MaxClientNameLength {
		return fmt.Errorf("%w: clientName is too long", ErrInvalidInput)
	}

	if req.ClientEmail != nil {
		email := strings.TrimSpace(*req.ClientEmail)
		if email == "" {
			req.ClientEmail = nil
			return nil
		}
		if len(email) > domain.MaxClientEmailLength {
			return fmt.Errorf("%w: clientEmail is too long", ErrInvalidInput)
		}
		if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
			return fmt.Errorf("%w: clientEmail is not a valid address", ErrInvalidInput)
		}
		req.ClientEmail = &email
	}

	return nil
}

// checkBusinessHours проверяет, что [startAt, endAt) целиком внутри часов работы дня startAt
func checkBusinessHours(entry domain.WeeklyScheduleEntry, candidate domain.Interval, clock Clock) error {
	hours, ok := entry.HoursOn(clock.LocalDate(candidate.Start), clock.Location())
	if !ok {
		return ErrNonWorkingDay
	}
	if !hours.Covers(candidate) {
		return fmt.Errorf("%w: %s-%s", ErrOutsideBusinessHours, entry.OpenTime.Short(), entry.CloseTime.Short())
	}
	return nil
}
