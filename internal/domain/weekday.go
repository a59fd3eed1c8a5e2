package domain

import (
	"fmt"
	"strings"
	"time"
)

// Weekday day of week, 0 = Sunday ... 6 = Saturday (same numbering as time.Weekday)
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// Spanish day names used by the HTTP surface. Internally only the number is used.
var weekdayNames = [DaysPerWeek]string{
	"domingo", "lunes", "martes", "miercoles", "jueves", "viernes", "sabado",
}

var weekdayAliases = map[string]Weekday{
	"miércoles": Wednesday,
	"sábado":    Saturday,
}

// AllWeekdays returns Sunday..Saturday
func AllWeekdays() []Weekday {
	return []Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}
}

func (w Weekday) IsValid() bool {
	return w >= Sunday && w <= Saturday
}

// Name returns the Spanish day name
func (w Weekday) Name() string {
	if !w.IsValid() {
		return fmt.Sprintf("weekday(%d)", int(w))
	}
	return weekdayNames[w]
}

func (w Weekday) String() string {
	return w.Name()
}

// WeekdayOf returns the weekday of instant t in loc
func WeekdayOf(t time.Time, loc *time.Location) Weekday {
	return Weekday(t.In(loc).Weekday())
}

// WeekdayFromName accepts Spanish names with or without accents, any case
func WeekdayFromName(name string) (Weekday, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if w, ok := weekdayAliases[n]; ok {
		return w, nil
	}
	for i, candidate := range weekdayNames {
		if candidate == n {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidWeekday, name)
}
