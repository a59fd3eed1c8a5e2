package get_availability

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	getAvailability "github.com/m04kA/SMC-BarberBooking/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date            string         `json:"date"`
	ServiceID       int64          `json:"serviceId"`
	DurationMinutes int            `json:"durationMinutes"`
	IsOpen          bool           `json:"isOpen"`
	Open            *string        `json:"open,omitempty"`
	Close           *string        `json:"close,omitempty"`
	Break           *BreakResponse `json:"break,omitempty"`
	Slots           []SlotResponse `json:"slots"`
}

type BreakResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type SlotResponse struct {
	Time      string `json:"time"` // "10:00"
	StartAt   string `json:"startAt"`
	EndAt     string `json:"endAt"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		ServiceID:       resp.Service.ID,
		DurationMinutes: resp.Service.DurationMinutes,
		IsOpen:          resp.IsOpen,
		Slots:           make([]SlotResponse, 0, len(resp.Slots)),
	}

	if resp.Open != nil {
		open := resp.Open.Short()
		out.Open = &open
	}
	if resp.Close != nil {
		closeTime := resp.Close.Short()
		out.Close = &closeTime
	}
	if resp.Break != nil {
		out.Break = &BreakResponse{Start: resp.Break.Start.Short(), End: resp.Break.End.Short()}
	}

	for _, s := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{
			Time:      s.Time.Short(),
			StartAt:   s.StartAt.Format(time.RFC3339),
			EndAt:     s.EndAt.Format(time.RFC3339),
			Available: s.Available,
			Reason:    string(s.Reason),
		})
	}

	return out
}
