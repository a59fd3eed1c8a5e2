package update_schedule

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/service/schedule"
	"github.com/m04kA/SMC-BarberBooking/internal/service/schedule/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidWeekday     = "некорректный день недели"
	msgInvalidTemplate    = "шаблон должен содержать ровно 7 разных дней"
	msgInvalidEntry       = "некорректные часы работы"
	msgInvalidInput       = "укажите рабочие дни, время открытия и закрытия"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/admin/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	entries, err := req.ToDomain()
	if err != nil {
		h.logger.Warn("PUT /admin/schedule - Invalid weekday: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWeekday)
		return
	}

	updated, err := h.service.UpsertTemplate(r.Context(), entries)
	if err != nil {
		h.respondServiceError(w, "PUT /admin/schedule", err)
		return
	}

	h.logger.Info("PUT /admin/schedule - Weekly template replaced")
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainTemplate(updated))
}

// HandleUniform PUT /api/v1/admin/schedule/uniform
func (h *Handler) HandleUniform(w http.ResponseWriter, r *http.Request) {
	var req UniformScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/schedule/uniform - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("PUT /admin/schedule/uniform - Invalid weekday: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWeekday)
		return
	}

	updated, err := h.service.ApplyUniformHours(r.Context(), serviceReq)
	if err != nil {
		h.respondServiceError(w, "PUT /admin/schedule/uniform", err)
		return
	}

	h.logger.Info("PUT /admin/schedule/uniform - Uniform hours applied to %d days", len(serviceReq.WorkingDays))
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainTemplate(updated))
}

func (h *Handler) respondServiceError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, schedule.ErrInvalidTemplate):
		h.logger.Warn("%s - Invalid template: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidTemplate)

	case errors.Is(err, schedule.ErrInvalidEntry):
		h.logger.Warn("%s - Invalid entry: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidEntry)

	case errors.Is(err, schedule.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Failed to update schedule: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
