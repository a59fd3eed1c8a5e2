package create_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-BarberBooking/internal/usecase/create_booking"
)

// Коды ошибок записи; клиент по ним понимает, что подсветить
const (
	codeServiceNotFound      = "service_not_found"
	codeInvalidDate          = "invalid_date"
	codePastDate             = "past_date"
	codeNonWorkingDay        = "non_working_day"
	codeOutsideBusinessHours = "outside_business_hours"
	codeSlotConflict         = "slot_conflict"
	codeInvalidInput         = "invalid_input"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidInput         = "укажите услугу и имя клиента; email должен быть корректным"
	msgServiceNotFound      = "услуга не найдена"
	msgInvalidDate          = "некорректное время начала, ожидается ISO-8601"
	msgPastDate             = "нельзя записаться на прошедшее время"
	msgNonWorkingDay        = "в выбранный день барбершоп не работает"
	msgOutsideBusinessHours = "запись выходит за часы работы"
	msgSlotConflict         = "выбранное время уже занято"
)

type Handler struct {
	useCase CreateBookingUseCase
	loc     *time.Location
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, loc *time.Location, logger Logger) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{
		useCase: useCase,
		loc:     loc,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		var conflict *createBooking.ConflictError
		switch {
		case errors.As(err, &conflict):
			h.logger.Warn("POST /appointments - Slot conflict: service_id=%d, start_at=%s", req.ServiceID, req.StartAt)
			handlers.RespondJSON(w, http.StatusConflict, ConflictResponse{
				Code:     codeSlotConflict,
				Message:  msgSlotConflict,
				Conflict: conflictInfo(conflict.Existing, h.loc),
			})

		case errors.Is(err, createBooking.ErrSlotConflict):
			h.logger.Warn("POST /appointments - Slot conflict: service_id=%d, start_at=%s", req.ServiceID, req.StartAt)
			handlers.RespondError(w, http.StatusConflict, codeSlotConflict, msgSlotConflict)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondError(w, http.StatusBadRequest, codeInvalidInput, msgInvalidInput)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondError(w, http.StatusNotFound, codeServiceNotFound, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Invalid start: %q", req.StartAt)
			handlers.RespondError(w, http.StatusBadRequest, codeInvalidDate, msgInvalidDate)

		case errors.Is(err, createBooking.ErrPastDate):
			h.logger.Warn("POST /appointments - Past date: %q", req.StartAt)
			handlers.RespondError(w, http.StatusBadRequest, codePastDate, msgPastDate)

		case errors.Is(err, createBooking.ErrNonWorkingDay):
			h.logger.Warn("POST /appointments - Non working day: %q", req.StartAt)
			handlers.RespondError(w, http.StatusBadRequest, codeNonWorkingDay, msgNonWorkingDay)

		case errors.Is(err, createBooking.ErrOutsideBusinessHours):
			h.logger.Warn("POST /appointments - Outside business hours: %q", req.StartAt)
			handlers.RespondError(w, http.StatusBadRequest, codeOutsideBusinessHours, msgOutsideBusinessHours)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: service_id=%d, error=%v", req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, service_id=%d",
		result.Appointment.ID, req.ServiceID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result, h.loc))
}
