package update_schedule

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/service/schedule/models"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

var errMissingWeekday = errors.New("weekday or day is required")

// EntryRequest строка шаблона; день задается числом (0 = воскресенье) или испанским названием
type EntryRequest struct {
	Weekday      *int              `json:"weekday,omitempty"`
	Day          *string           `json:"day,omitempty"`
	IsWorkingDay bool              `json:"isWorkingDay"`
	OpenTime     *types.TimeString `json:"openTime,omitempty"`
	CloseTime    *types.TimeString `json:"closeTime,omitempty"`
	BreakStart   *types.TimeString `json:"breakStart,omitempty"`
	BreakEnd     *types.TimeString `json:"breakEnd,omitempty"`
}

// UpdateScheduleRequest полный недельный шаблон
type UpdateScheduleRequest struct {
	Days []EntryRequest `json:"days"`
}

// UniformScheduleRequest одинаковые часы для перечисленных дней
type UniformScheduleRequest struct {
	WorkingDays []string          `json:"workingDays"`
	OpenTime    types.TimeString  `json:"openTime"`
	CloseTime   types.TimeString  `json:"closeTime"`
	BreakStart  *types.TimeString `json:"breakStart,omitempty"`
	BreakEnd    *types.TimeString `json:"breakEnd,omitempty"`
}

func (e EntryRequest) weekday() (domain.Weekday, error) {
	switch {
	case e.Weekday != nil:
		w := domain.Weekday(*e.Weekday)
		if !w.IsValid() {
			return 0, fmt.Errorf("%w: %d", domain.ErrInvalidWeekday, *e.Weekday)
		}
		return w, nil
	case e.Day != nil:
		return domain.WeekdayFromName(*e.Day)
	default:
		return 0, errMissingWeekday
	}
}

// ToDomain конвертирует запрос в строки шаблона
func (r UpdateScheduleRequest) ToDomain() ([]domain.WeeklyScheduleEntry, error) {
	entries := make([]domain.WeeklyScheduleEntry, 0, len(r.Days))
	for i, day := range r.Days {
		w, err := day.weekday()
		if err != nil {
			return nil, fmt.Errorf("days[%d]: %w", i, err)
		}
		entries = append(entries, domain.WeeklyScheduleEntry{
			Weekday:      w,
			IsWorkingDay: day.IsWorkingDay,
			OpenTime:     day.OpenTime,
			CloseTime:    day.CloseTime,
			BreakStart:   day.BreakStart,
			BreakEnd:     day.BreakEnd,
		})
	}
	return entries, nil
}

// ToServiceRequest разбирает испанские названия дней
func (r UniformScheduleRequest) ToServiceRequest() (*models.UniformHoursRequest, error) {
	days := make([]domain.Weekday, 0, len(r.WorkingDays))
	for _, name := range r.WorkingDays {
		w, err := domain.WeekdayFromName(name)
		if err != nil {
			return nil, err
		}
		days = append(days, w)
	}
	return &models.UniformHoursRequest{
		WorkingDays: days,
		OpenTime:    r.OpenTime,
		CloseTime:   r.CloseTime,
		BreakStart:  r.BreakStart,
		BreakEnd:    r.BreakEnd,
	}, nil
}
