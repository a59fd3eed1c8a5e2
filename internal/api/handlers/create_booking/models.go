package create_booking

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/service/appointments/models"
	createBooking "github.com/m04kA/SMC-BarberBooking/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceID   int64   `json:"serviceId"`
	ClientName  string  `json:"clientName"`
	ClientEmail *string `json:"clientEmail,omitempty"`
	StartAt     string  `json:"startAt"` // "2025-03-10T10:00:00-03:00" или "2025-03-10T10:00"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	Appointment *models.AppointmentResponse `json:"appointment"`
	Service     models.ServiceInfo          `json:"service"`
}

// ConflictResponse ответ 409 с занявшей интервал записью
type ConflictResponse struct {
	Code     string        `json:"code"`
	Message  string        `json:"message"`
	Conflict *ConflictInfo `json:"conflict,omitempty"`
}

type ConflictInfo struct {
	ClientName string `json:"clientName"`
	StartAt    string `json:"startAt"`
	EndAt      string `json:"endAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() *createBooking.Request {
	return &createBooking.Request{
		ServiceID:   r.ServiceID,
		ClientName:  r.ClientName,
		ClientEmail: r.ClientEmail,
		StartAt:     r.StartAt,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response, loc *time.Location) *BookingResponse {
	return &BookingResponse{
		Appointment: models.FromDomainAppointment(resp.Appointment, loc),
		Service: models.ServiceInfo{
			ID:              resp.Service.ID,
			Name:            resp.Service.Name,
			DurationMinutes: resp.Service.DurationMinutes,
			PriceAmount:     resp.Service.PriceAmount,
		},
	}
}

func conflictInfo(existing *domain.Appointment, loc *time.Location) *ConflictInfo {
	if existing == nil {
		return nil
	}
	return &ConflictInfo{
		ClientName: existing.ClientName,
		StartAt:    existing.StartAt.In(loc).Format(time.RFC3339),
		EndAt:      existing.EndAt.In(loc).Format(time.RFC3339),
	}
}
