package update_schedule

import (
	"context"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/service/schedule/models"
)

type ScheduleService interface {
	UpsertTemplate(ctx context.Context, entries []domain.WeeklyScheduleEntry) ([]domain.WeeklyScheduleEntry, error)
	ApplyUniformHours(ctx context.Context, req *models.UniformHoursRequest) ([]domain.WeeklyScheduleEntry, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
