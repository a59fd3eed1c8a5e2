package list_appointments

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/api/middleware"
	"github.com/m04kA/SMC-BarberBooking/internal/service/appointments"
)

const (
	msgMissingPrincipal = "требуется авторизация"
	msgInvalidDate      = "некорректная дата, ожидается YYYY-MM-DD"
	msgInvalidFilter    = "некорректный фильтр записей"
)

type Handler struct {
	service AppointmentService
	dates   DateParser
	logger  Logger
}

func NewHandler(service AppointmentService, dates DateParser, logger Logger) *Handler {
	return &Handler{
		service: service,
		dates:   dates,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments?state=&dateFrom=&dateTo=&search=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("GET /appointments - Missing principal")
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	req, err := parseQuery(r.URL.Query(), principal, h.dates)
	if err != nil {
		h.logger.Warn("GET /appointments - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	resp, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /appointments - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /appointments - Failed to list appointments: user_id=%d, error=%v", principal.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments - Listed %d appointments for user_id=%d", len(resp.Appointments), principal.ID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
