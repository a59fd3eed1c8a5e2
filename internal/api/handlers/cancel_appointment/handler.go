package cancel_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/api/middleware"
	"github.com/m04kA/SMC-BarberBooking/internal/service/appointments"
)

const (
	codeNotFoundOrAlreadyCancelled = "not_found_or_already_cancelled"

	msgInvalidAppointmentID = "некорректный ID записи"
	msgMissingPrincipal     = "требуется авторизация"
	msgNotFoundOrCancelled  = "запись не найдена или уже отменена"
)

type CancelResponse struct {
	ID    int64  `json:"id"`
	State string `json:"state"`
}

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{id}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/cancel - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("PATCH /appointments/{id}/cancel - Missing principal")
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	if err := h.service.Cancel(r.Context(), id, principal); err != nil {
		switch {
		case errors.Is(err, appointments.ErrNotFoundOrAlreadyCancelled):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Not found or already cancelled: appointment_id=%d", id)
			handlers.RespondError(w, http.StatusNotFound, codeNotFoundOrAlreadyCancelled, msgNotFoundOrCancelled)

		default:
			h.logger.Error("PATCH /appointments/{id}/cancel - Failed to cancel appointment: appointment_id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/cancel - Appointment cancelled successfully: appointment_id=%d, user_id=%d",
		id, principal.ID)
	handlers.RespondJSON(w, http.StatusOK, CancelResponse{ID: id, State: "cancelled"})
}
