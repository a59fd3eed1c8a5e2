package domain

import (
	"fmt"
	"strings"
	"time"
)

// Service an offered service with a fixed duration and price.
// Inactive services stay readable for history but cannot be booked.
type Service struct {
	ID              int64
	Name            string
	Description     *string
	DurationMinutes int
	PriceAmount     int64 // minor units
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ServiceSummary denormalized service data attached to appointments
type ServiceSummary struct {
	ID              int64
	Name            string
	DurationMinutes int
	PriceAmount     int64
}

func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

func (s *Service) Summary() ServiceSummary {
	return ServiceSummary{
		ID:              s.ID,
		Name:            s.Name,
		DurationMinutes: s.DurationMinutes,
		PriceAmount:     s.PriceAmount,
	}
}

// ValidateServiceFields checks the editable service fields
func ValidateServiceFields(name string, durationMinutes int, priceAmount int64) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || len(trimmed) > MaxServiceNameLength {
		return fmt.Errorf("%w: %q", ErrInvalidServiceName, name)
	}
	if durationMinutes < MinServiceDurationMinutes || durationMinutes > MaxServiceDurationMinutes {
		return fmt.Errorf("%w: %d minutes", ErrInvalidDuration, durationMinutes)
	}
	if priceAmount <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPrice, priceAmount)
	}
	return nil
}
