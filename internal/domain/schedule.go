package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// WeeklyScheduleEntry opening hours of one weekday.
// OpenTime and CloseTime are set only on working days; the break is optional.
type WeeklyScheduleEntry struct {
	Weekday      Weekday
	IsWorkingDay bool
	OpenTime     *types.TimeString
	CloseTime    *types.TimeString
	BreakStart   *types.TimeString
	BreakEnd     *types.TimeString
	UpdatedAt    time.Time
}

// NonWorkingEntry is the entry assumed for a weekday that has no stored row
func NonWorkingEntry(w Weekday) WeeklyScheduleEntry {
	return WeeklyScheduleEntry{Weekday: w}
}

// IsOpen returns true if the business accepts appointments on this day
func (e *WeeklyScheduleEntry) IsOpen() bool {
	return e.IsWorkingDay && e.OpenTime != nil && e.CloseTime != nil
}

func (e *WeeklyScheduleEntry) HasBreak() bool {
	return e.BreakStart != nil && e.BreakEnd != nil
}

// InBreak reports whether the wall-clock time ts falls inside [BreakStart, BreakEnd)
func (e *WeeklyScheduleEntry) InBreak(ts types.TimeString) bool {
	if !e.HasBreak() {
		return false
	}
	return !ts.IsBefore(*e.BreakStart) && ts.IsBefore(*e.BreakEnd)
}

// HoursOn returns the absolute opening hours of the calendar date in loc.
// The second value is false on a non-working day.
func (e *WeeklyScheduleEntry) HoursOn(date time.Time, loc *time.Location) (Interval, bool) {
	if !e.IsOpen() {
		return Interval{}, false
	}
	at := func(ts types.TimeString) time.Time {
		h, m, s := ts.Clock()
		return time.Date(date.Year(), date.Month(), date.Day(), h, m, s, 0, loc)
	}
	return Interval{Start: at(*e.OpenTime), End: at(*e.CloseTime)}, true
}

// Normalized drops hours and break from non-working days
func (e WeeklyScheduleEntry) Normalized() WeeklyScheduleEntry {
	if !e.IsWorkingDay {
		e.OpenTime, e.CloseTime, e.BreakStart, e.BreakEnd = nil, nil, nil, nil
	}
	return e
}

// Validate checks the entry; call on a normalized entry
func (e *WeeklyScheduleEntry) Validate() error {
	if !e.Weekday.IsValid() {
		return fmt.Errorf("%w: %d", ErrInvalidWeekday, int(e.Weekday))
	}
	if !e.IsWorkingDay {
		return nil
	}
	if e.OpenTime == nil || e.CloseTime == nil {
		return fmt.Errorf("%w: %s", ErrMissingHours, e.Weekday)
	}
	for _, ts := range []*types.TimeString{e.OpenTime, e.CloseTime, e.BreakStart, e.BreakEnd} {
		if ts == nil {
			continue
		}
		if err := ts.Validate(); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidTime, e.Weekday, err)
		}
	}
	if !e.CloseTime.IsAfter(*e.OpenTime) {
		return fmt.Errorf("%w: %s %s-%s", ErrCloseNotAfterOpen, e.Weekday, *e.OpenTime, *e.CloseTime)
	}
	if (e.BreakStart == nil) != (e.BreakEnd == nil) {
		return fmt.Errorf("%w: %s", ErrPartialBreak, e.Weekday)
	}
	if e.HasBreak() {
		if !e.BreakEnd.IsAfter(*e.BreakStart) {
			return fmt.Errorf("%w: %s", ErrBreakEndBeforeStart, e.Weekday)
		}
		if e.BreakStart.IsBefore(*e.OpenTime) || e.BreakEnd.IsAfter(*e.CloseTime) {
			return fmt.Errorf("%w: %s", ErrBreakNotInsideHours, e.Weekday)
		}
	}
	return nil
}
