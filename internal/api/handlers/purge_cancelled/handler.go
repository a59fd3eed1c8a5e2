package purge_cancelled

import (
	"net/http"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
)

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

// Handle DELETE /api/v1/admin/appointments/cancelled
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.PurgeCancelled(r.Context())
	if err != nil {
		h.logger.Error("DELETE /admin/appointments/cancelled - Failed to purge: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /admin/appointments/cancelled - Purged %d cancelled appointments", result.Deleted)
	handlers.RespondJSON(w, http.StatusOK, result)
}
