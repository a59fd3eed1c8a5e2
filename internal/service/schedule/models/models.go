package models

import (
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// Request модели

// UniformHoursRequest одинаковые часы для списка рабочих дней, остальные дни выходные
type UniformHoursRequest struct {
	WorkingDays []domain.Weekday
	OpenTime    types.TimeString
	CloseTime   types.TimeString
	BreakStart  *types.TimeString
	BreakEnd    *types.TimeString
}

// Response модели

// EntryResponse день недельного шаблона; время в формате HH:MM
type EntryResponse struct {
	Weekday      int     `json:"weekday"`
	Day          string  `json:"day"`
	IsWorkingDay bool    `json:"isWorkingDay"`
	OpenTime     *string `json:"openTime,omitempty"`
	CloseTime    *string `json:"closeTime,omitempty"`
	BreakStart   *string `json:"breakStart,omitempty"`
	BreakEnd     *string `json:"breakEnd,omitempty"`
}

// TemplateResponse недельный шаблон, 7 дней начиная с воскресенья
type TemplateResponse struct {
	Days []EntryResponse `json:"days"`
}

// Методы конвертации

// FromDomainEntry конвертирует domain модель в DTO
func FromDomainEntry(e domain.WeeklyScheduleEntry) EntryResponse {
	return EntryResponse{
		Weekday:      int(e.Weekday),
		Day:          e.Weekday.Name(),
		IsWorkingDay: e.IsWorkingDay,
		OpenTime:     short(e.OpenTime),
		CloseTime:    short(e.CloseTime),
		BreakStart:   short(e.BreakStart),
		BreakEnd:     short(e.BreakEnd),
	}
}

// FromDomainTemplate конвертирует шаблон в DTO
func FromDomainTemplate(entries []domain.WeeklyScheduleEntry) *TemplateResponse {
	resp := &TemplateResponse{Days: make([]EntryResponse, 0, len(entries))}
	for _, e := range entries {
		resp.Days = append(resp.Days, FromDomainEntry(e))
	}
	return resp
}

func short(ts *types.TimeString) *string {
	if ts == nil {
		return nil
	}
	s := ts.Short()
	return &s
}
