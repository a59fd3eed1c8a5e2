package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

var (
	// ErrInvalidState возвращается при некорректном состоянии записи
	ErrInvalidState = errors.New("invalid appointment state")
)

// Request модели

// ListAppointmentsRequest запрос списка записей
type ListAppointmentsRequest struct {
	Principal domain.Principal
	State     *string
	DateFrom  *time.Time // начало периода, включительно
	DateTo    *time.Time // конец периода, не включительно
	Search    *string
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListAppointmentsRequest) ToDomainFilter() (domain.AppointmentFilter, error) {
	filter := domain.AppointmentFilter{
		StartFrom:   r.DateFrom,
		StartBefore: r.DateTo,
	}

	if r.State != nil {
		state, err := ToDomainState(*r.State)
		if err != nil {
			return filter, err
		}
		filter.State = &state
	}

	if r.Principal.IsAdmin() {
		// администратор видит все записи, новые сверху
		filter.ClientSearch = r.Search
		filter.NewestFirst = true
	} else {
		email := r.Principal.Email
		filter.ClientEmail = &email
	}

	return filter, nil
}

// Response модели

// ServiceInfo данные услуги в ответе
type ServiceInfo struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"durationMinutes"`
	PriceAmount     int64  `json:"priceAmount"`
}

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID          int64        `json:"id"`
	ServiceID   int64        `json:"serviceId"`
	ClientName  string       `json:"clientName"`
	ClientEmail *string      `json:"clientEmail,omitempty"`
	StartAt     time.Time    `json:"startAt"`
	EndAt       time.Time    `json:"endAt"`
	State       string       `json:"state"`
	Service     *ServiceInfo `json:"service,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// StatsResponse показатели панели администратора
type StatsResponse struct {
	ConfirmedTotal   int64 `json:"confirmedTotal"`
	RevenueThisMonth int64 `json:"revenueThisMonth"`
	UpcomingWeek     int64 `json:"upcomingWeek"`
	Today            int64 `json:"today"`
}

// PurgeResponse результат очистки отмененных записей
type PurgeResponse struct {
	Deleted int64 `json:"deleted"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment, loc *time.Location) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:          a.ID,
		ServiceID:   a.ServiceID,
		ClientName:  a.ClientName,
		ClientEmail: a.ClientEmail,
		StartAt:     a.StartAt.In(loc),
		EndAt:       a.EndAt.In(loc),
		State:       string(a.State),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}

	if a.Service != nil {
		resp.Service = &ServiceInfo{
			ID:              a.Service.ID,
			Name:            a.Service.Name,
			DurationMinutes: a.Service.DurationMinutes,
			PriceAmount:     a.Service.PriceAmount,
		}
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(list []*domain.Appointment, loc *time.Location) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(list)),
	}

	for _, a := range list {
		if item := FromDomainAppointment(a, loc); item != nil {
			resp.Appointments = append(resp.Appointments, *item)
		}
	}

	return resp
}

// FromDomainStats конвертирует статистику
func FromDomainStats(s *domain.AppointmentStats) *StatsResponse {
	return &StatsResponse{
		ConfirmedTotal:   s.ConfirmedTotal,
		RevenueThisMonth: s.RevenueThisMonth,
		UpcomingWeek:     s.UpcomingWeek,
		Today:            s.Today,
	}
}

// ToDomainState конвертирует строку в domain.AppointmentState с валидацией
func ToDomainState(state string) (domain.AppointmentState, error) {
	s := domain.AppointmentState(state)
	if !s.IsValid() {
		return "", ErrInvalidState
	}
	return s, nil
}
