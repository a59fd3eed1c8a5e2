package list_appointments

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/service/appointments/models"
)

// parseQuery строит запрос сервиса из query параметров.
// dateTo включает весь указанный день.
func parseQuery(query url.Values, principal domain.Principal, dates DateParser) (*models.ListAppointmentsRequest, error) {
	req := &models.ListAppointmentsRequest{Principal: principal}

	if state := strings.TrimSpace(query.Get("state")); state != "" {
		req.State = &state
	}

	if raw := query.Get("dateFrom"); raw != "" {
		from, err := dates.ParseDate(raw)
		if err != nil {
			return nil, fmt.Errorf("dateFrom: %w", err)
		}
		req.DateFrom = &from
	}

	if raw := query.Get("dateTo"); raw != "" {
		to, err := dates.ParseDate(raw)
		if err != nil {
			return nil, fmt.Errorf("dateTo: %w", err)
		}
		to = to.AddDate(0, 0, 1)
		req.DateTo = &to
	}

	if search := strings.TrimSpace(query.Get("search")); search != "" {
		req.Search = &search
	}

	return req, nil
}
