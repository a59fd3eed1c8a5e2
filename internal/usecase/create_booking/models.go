package create_booking

import "github.com/m04kA/SMC-BarberBooking/internal/domain"

// Request модель запроса на создание записи
type Request struct {
	ServiceID   int64
	ClientName  string
	ClientEmail *string
	StartAt     string // RFC 3339 или YYYY-MM-DDTHH:MM[:SS] в зоне бизнеса
}

// Response модель ответа с созданной записью
type Response struct {
	Appointment *domain.Appointment
	Service     domain.ServiceSummary
}
