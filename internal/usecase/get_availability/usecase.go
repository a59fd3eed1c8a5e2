package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/catalog"
)

// UseCase use case расчета доступных слотов на дату
type UseCase struct {
	catalog      ServiceCatalog
	schedule     ScheduleProvider
	appointments AppointmentRepository
	clock        Clock
	stepMinutes  int
	queryTimeout time.Duration
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalog ServiceCatalog,
	schedule ScheduleProvider,
	appointments AppointmentRepository,
	clock Clock,
	stepMinutes int,
	queryTimeout time.Duration,
	logger Logger,
) *UseCase {
	if stepMinutes <= 0 {
		stepMinutes = domain.DefaultSlotStepMinutes
	}
	return &UseCase{
		catalog:      catalog,
		schedule:     schedule,
		appointments: appointments,
		clock:        clock,
		stepMinutes:  stepMinutes,
		queryTimeout: queryTimeout,
		logger:       logger,
	}
}

// Execute выполняет use case получения доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: service=%d, date=%s", req.ServiceID, req.Date)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Разбираем дату в зоне бизнеса
	date, err := uc.clock.ParseDate(req.Date)
	if err != nil {
		uc.logger.Warn("GetAvailability: invalid date %q: %v", req.Date, err)
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, req.Date)
	}

	ctx, cancel := uc.withTimeout(ctx)
	defer cancel()

	// 3. Получаем активную услугу
	service, err := uc.catalog.GetActiveByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailability: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailability: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Получаем запись шаблона на день недели
	weekday := domain.WeekdayOf(date, uc.clock.Location())
	entry, err := uc.schedule.GetEntry(ctx, weekday)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get schedule for %s: %v", weekday, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	response := &Response{Date: date, Service: service}

	if !entry.IsOpen() {
		uc.logger.Info("GetAvailability: %s is not a working day", req.Date)
		response.Availability = Availability{IsOpen: false, Slots: []Slot{}}
		return response, nil
	}

	// 5. Получаем подтвержденные записи, пересекающие локальные сутки
	day := uc.clock.DayRange(date)
	existing, err := uc.appointments.FindConfirmedOverlapping(ctx, day.Start, day.End)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 6. Рассчитываем слоты
	response.Availability = ComputeSlots(SlotInput{
		Entry:           entry,
		DurationMinutes: service.DurationMinutes,
		StepMinutes:     uc.stepMinutes,
		Date:            date,
		Existing:        existing,
		Now:             uc.clock.Now(),
		Location:        uc.clock.Location(),
	})

	uc.logger.Info("GetAvailability: generated %d slots for service=%d, date=%s",
		len(response.Slots), req.ServiceID, req.Date)

	return response, nil
}

func (uc *UseCase) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if uc.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, uc.queryTimeout)
}
