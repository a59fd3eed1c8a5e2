package get_availability

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// ComputeSlots рассчитывает слоты на дату без побочных эффектов.
// Кандидаты идут с шагом StepMinutes от открытия до закрытия по настенному времени,
// начала внутри перерыва пропускаются. Пересечение проверяется тем же предикатом, что и при записи.
func ComputeSlots(in SlotInput) Availability {
	entry := in.Entry
	loc := in.Location
	if loc == nil {
		loc = time.UTC
	}

	hours, ok := entry.HoursOn(in.Date, loc)
	if !ok {
		return Availability{IsOpen: false, Slots: []Slot{}}
	}

	result := Availability{
		IsOpen: true,
		Open:   entry.OpenTime,
		Close:  entry.CloseTime,
		Slots:  make([]Slot, 0),
	}
	if entry.HasBreak() {
		result.Break = &BreakWindow{Start: *entry.BreakStart, End: *entry.BreakEnd}
	}

	step := in.StepMinutes
	if step <= 0 {
		step = domain.DefaultSlotStepMinutes
	}
	duration := time.Duration(in.DurationMinutes) * time.Minute

	for _, tick := range candidateStarts(entry, step) {
		h, m, s := tick.Clock()
		startAt := time.Date(in.Date.Year(), in.Date.Month(), in.Date.Day(), h, m, s, 0, loc)
		candidate := domain.NewInterval(startAt, duration)

		slot := Slot{
			Time:      tick,
			StartAt:   candidate.Start,
			EndAt:     candidate.End,
			Available: true,
		}
		if reason := rejectReason(candidate, hours, in.Existing, in.Now); reason != ReasonNone {
			slot.Available = false
			slot.Reason = reason
		}
		result.Slots = append(result.Slots, slot)
	}

	return result
}

// candidateStarts генерирует настенные времена начала в [open, close) вне перерыва
func candidateStarts(entry domain.WeeklyScheduleEntry, step int) []types.TimeString {
	ticks := make([]types.TimeString, 0)
	closeTime := *entry.CloseTime

	for current := *entry.OpenTime; current.IsBefore(closeTime); {
		if !entry.InBreak(current) {
			ticks = append(ticks, current)
		}
		next, err := current.AddMinutes(step)
		if err != nil {
			// Дальше полуночи кандидатов нет
			break
		}
		current = next
	}

	return ticks
}

// rejectReason возвращает первую причину недоступности кандидата
func rejectReason(candidate, hours domain.Interval, existing []*domain.Appointment, now time.Time) Reason {
	if candidate.End.After(hours.End) {
		return ReasonExceedsClosing
	}

	for _, a := range existing {
		if a == nil || !a.IsConfirmed() {
			continue
		}
		if domain.Overlaps(candidate, a.Interval()) {
			return ReasonBooked
		}
	}

	if candidate.Start.Before(now) {
		return ReasonPast
	}

	return ReasonNone
}
