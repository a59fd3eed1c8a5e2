package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// BusinessClock converts between absolute instants and the business wall clock.
// Instants are stored in UTC and converted only when compared with the template.
type BusinessClock struct {
	loc *time.Location
	now func() time.Time
}

// NewBusinessClock builds a clock for loc; now defaults to time.Now
func NewBusinessClock(loc *time.Location, now func() time.Time) *BusinessClock {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &BusinessClock{loc: loc, now: now}
}

// LoadBusinessClock builds a clock for an IANA zone name
func LoadBusinessClock(timezone string) (*BusinessClock, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("domain: load timezone %q: %w", timezone, err)
	}
	return NewBusinessClock(loc, nil), nil
}

func (c *BusinessClock) Location() *time.Location {
	return c.loc
}

// Now returns the current instant in the business zone
func (c *BusinessClock) Now() time.Time {
	return c.now().In(c.loc)
}

// LocalDate returns local midnight of the business day that contains t
func (c *BusinessClock) LocalDate(t time.Time) time.Time {
	local := t.In(c.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, c.loc)
}

// Date returns local midnight of the calendar date y-m-d
func (c *BusinessClock) Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, c.loc)
}

// At combines the calendar fields of date (taken as is) with a wall-clock time
func (c *BusinessClock) At(date time.Time, ts types.TimeString) time.Time {
	h, m, s := ts.Clock()
	return time.Date(date.Year(), date.Month(), date.Day(), h, m, s, 0, c.loc)
}

// DayRange returns [local midnight, next local midnight) of the calendar date
func (c *BusinessClock) DayRange(date time.Time) Interval {
	start := c.Date(date.Year(), date.Month(), date.Day())
	return Interval{Start: start, End: start.AddDate(0, 0, 1)}
}

// Weekday returns the local weekday of instant t
func (c *BusinessClock) Weekday(t time.Time) Weekday {
	return WeekdayOf(t, c.loc)
}

// WallClock returns the local time-of-day of instant t
func (c *BusinessClock) WallClock(t time.Time) types.TimeString {
	return types.NewTimeString(t.In(c.loc))
}

// ParseDate parses YYYY-MM-DD as a business calendar date
func (c *BusinessClock) ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateFormat, strings.TrimSpace(s), c.loc)
}

// ParseInstant accepts RFC 3339 with an offset, or a zone-less local timestamp
// which is read in the business zone
func (c *BusinessClock) ParseInstant(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	// Смещение задано явно, зона бизнеса не нужна
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04Z07:00"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	for _, layout := range []string{LocalDateTimeFormat, LocalDateTimeShort, "2006-01-02 15:04:05", "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, s, c.loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("domain: cannot parse instant %q", s)
}
