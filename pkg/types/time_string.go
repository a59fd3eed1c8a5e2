package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const secondsPerDay = 24 * 60 * 60

var (
	ErrInvalidTimeString = errors.New("types: invalid time string")
	ErrTimeOverflow      = errors.New("types: time overflows the day")
)

// TimeString время суток без даты и зоны в каноническом виде HH:MM:SS.
// Принимает на входе HH:MM и HH:MM:SS.
type TimeString string

// NewTimeString строит TimeString из настенного времени t
func NewTimeString(t time.Time) TimeString {
	return fromSeconds(t.Hour()*3600 + t.Minute()*60 + t.Second())
}

// NewTimeStringFromString разбирает HH:MM или HH:MM:SS
func NewTimeStringFromString(s string) (TimeString, error) {
	seconds, err := parseSeconds(s)
	if err != nil {
		return "", err
	}
	return fromSeconds(seconds), nil
}

// MustTimeString как NewTimeStringFromString, но паникует на ошибке
func MustTimeString(s string) TimeString {
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return ts
}

// NewTimeStringFromMinutes строит время из количества минут от полуночи
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes*60 >= secondsPerDay {
		return "", fmt.Errorf("%w: %d minutes", ErrTimeOverflow, minutes)
	}
	return fromSeconds(minutes * 60), nil
}

func (t TimeString) IsZero() bool {
	return t == ""
}

func (t TimeString) Validate() error {
	_, err := parseSeconds(string(t))
	return err
}

func (t TimeString) String() string {
	return string(t)
}

// Short возвращает HH:MM
func (t TimeString) Short() string {
	if len(t) >= 5 {
		return string(t[:5])
	}
	return string(t)
}

// Seconds количество секунд от полуночи; для некорректного значения -1
func (t TimeString) Seconds() int {
	s, err := parseSeconds(string(t))
	if err != nil {
		return -1
	}
	return s
}

// Minutes количество полных минут от полуночи; для некорректного значения -1
func (t TimeString) Minutes() int {
	s := t.Seconds()
	if s < 0 {
		return -1
	}
	return s / 60
}

// Clock возвращает часы, минуты и секунды
func (t TimeString) Clock() (hour, minute, second int) {
	s := t.Seconds()
	if s < 0 {
		return 0, 0, 0
	}
	return s / 3600, (s % 3600) / 60, s % 60
}

// AddMinutes сдвигает время; выход за пределы суток считается ошибкой
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	s, err := parseSeconds(string(t))
	if err != nil {
		return "", err
	}
	next := s + minutes*60
	if next < 0 || next >= secondsPerDay {
		return "", fmt.Errorf("%w: %s + %d minutes", ErrTimeOverflow, t, minutes)
	}
	return fromSeconds(next), nil
}

func (t TimeString) IsBefore(other TimeString) bool {
	return t.Seconds() < other.Seconds()
}

func (t TimeString) IsAfter(other TimeString) bool {
	return t.Seconds() > other.Seconds()
}

func (t TimeString) Equal(other TimeString) bool {
	return t.Seconds() == other.Seconds()
}

// Scan читает значение колонки TIME (lib/pq отдает []byte "HH:MM:SS")
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeString, src)
	}
}

func (t *TimeString) scanString(s string) error {
	// TIME может прийти с дробными секундами
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}

func (t *TimeString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeString, err)
	}
	if s == "" {
		*t = ""
		return nil
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func fromSeconds(s int) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d:%02d", s/3600, (s%3600)/60, s%60))
}

func parseSeconds(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	limits := []int{23, 59, 59}
	values := make([]int, 3)
	for i, p := range parts {
		if len(p) != 2 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > limits[i] {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
		}
		values[i] = n
	}

	return values[0]*3600 + values[1]*60 + values[2], nil
}
