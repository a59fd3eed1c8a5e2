package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/catalog"
)

// UseCase use case создания записи; единственный источник новых подтвержденных записей
type UseCase struct {
	appointments AppointmentRepository
	catalog      ServiceCatalog
	schedule     ScheduleProvider
	txManager    TransactionManager
	clock        Clock
	metrics      Metrics
	timeout      time.Duration
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointments AppointmentRepository,
	catalog ServiceCatalog,
	schedule ScheduleProvider,
	txManager TransactionManager,
	clock Clock,
	metrics Metrics,
	timeout time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointments: appointments,
		catalog:      catalog,
		schedule:     schedule,
		txManager:    txManager,
		clock:        clock,
		metrics:      metrics,
		timeout:      timeout,
		logger:       logger,
	}
}

// Execute выполняет use case создания записи.
// Проверки идут строго по порядку, каждая со своей ошибкой.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	resp, err := uc.execute(ctx, req)
	if err != nil {
		uc.observeRejected(err)
		return nil, err
	}
	if uc.metrics != nil {
		uc.metrics.IncBookingCreated()
	}
	return resp, nil
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: service=%d, startAt=%s", req.ServiceID, req.StartAt)

	// 1. Валидация входных данных
	if err := normalizeRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	ctx, cancel := uc.withTimeout(ctx)
	defer cancel()

	// 2. Получаем активную услугу
	service, err := uc.catalog.GetActiveByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 3. Разбираем startAt
	startAt, err := uc.clock.ParseInstant(req.StartAt)
	if err != nil {
		uc.logger.Warn("CreateBooking: invalid startAt %q", req.StartAt)
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, req.StartAt)
	}

	// 4. Вычисляем endAt один раз; дальше он хранится и не пересчитывается
	candidate := domain.NewInterval(startAt, service.Duration())

	// 5. Запись в прошлом запрещена
	if candidate.Start.Before(uc.clock.Now()) {
		uc.logger.Warn("CreateBooking: startAt %s is in the past", candidate.Start.Format(time.RFC3339))
		return nil, ErrPastDate
	}

	var created *domain.Appointment

	// 6. Проверка расписания, пересечений и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Рабочий день
		weekday := domain.WeekdayOf(candidate.Start, uc.clock.Location())
		entry, err := uc.schedule.GetEntryFresh(txCtx, weekday)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get schedule for %s: %v", weekday, err)
			return fmt.Errorf("%w: failed to get schedule: %w", ErrInternal, err)
		}
		if !entry.IsOpen() {
			uc.logger.Warn("CreateBooking: %s is not a working day", weekday)
			return ErrNonWorkingDay
		}

		// 6.2. Часы работы
		if err := checkBusinessHours(entry, candidate, uc.clock); err != nil {
			uc.logger.Warn("CreateBooking: %v", err)
			return err
		}

		// 6.3. Пересечения с подтвержденными записями (FOR UPDATE)
		existing, err := uc.appointments.FindConfirmedOverlapping(txCtx, candidate.Start, candidate.End)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get overlapping appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
		}
		for _, a := range existing {
			if domain.Overlaps(candidate, a.Interval()) {
				uc.logger.Warn("CreateBooking: slot conflicts with appointment id=%d", a.ID)
				return &ConflictError{Existing: a}
			}
		}

		// 6.4. Сохраняем запись
		inserted, err := uc.appointments.InsertConfirmed(txCtx, &domain.Appointment{
			ServiceID:   service.ID,
			ClientName:  req.ClientName,
			ClientEmail: req.ClientEmail,
			StartAt:     candidate.Start,
			EndAt:       candidate.End,
			State:       domain.StateConfirmed,
		})
		if err != nil {
			switch {
			case errors.Is(err, appointmentRepo.ErrSlotConflict):
				uc.logger.Warn("CreateBooking: insert rejected by overlap constraint")
				return &ConflictError{}
			case errors.Is(err, appointmentRepo.ErrServiceReference):
				return ErrServiceNotFound
			}
			uc.logger.Error("CreateBooking: failed to insert appointment: %v", err)
			// Ошибка сериализации должна остаться в цепочке для повтора транзакции
			return fmt.Errorf("%w: failed to insert appointment: %w", ErrInternal, err)
		}

		created = inserted
		return nil
	})

	if err != nil {
		var conflict *ConflictError
		if errors.As(err, &conflict) && conflict.Existing == nil {
			conflict.Existing = uc.findConflicting(ctx, candidate)
			return nil, conflict
		}
		if !isBusinessError(err) && !errors.Is(err, ErrInternal) {
			uc.logger.Error("CreateBooking: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
		}
		return nil, err
	}

	summary := service.Summary()
	created.Service = &summary

	uc.logger.Info("CreateBooking: successfully created appointment id=%d", created.ID)

	return &Response{Appointment: created, Service: summary}, nil
}

// findConflicting перечитывает запись, из-за которой сработало ограничение базы
func (uc *UseCase) findConflicting(ctx context.Context, candidate domain.Interval) *domain.Appointment {
	existing, err := uc.appointments.FindConfirmedOverlapping(ctx, candidate.Start, candidate.End)
	if err != nil {
		uc.logger.Warn("CreateBooking: failed to re-read conflicting appointment: %v", err)
		return nil
	}
	for _, a := range existing {
		if domain.Overlaps(candidate, a.Interval()) {
			return a
		}
	}
	return nil
}

func (uc *UseCase) observeRejected(err error) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.IncBookingRejected(rejectReason(err))
}

func (uc *UseCase) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if uc.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, uc.timeout)
}

func isBusinessError(err error) bool {
	for _, target := range []error{
		ErrInvalidInput,
		ErrServiceNotFound,
		ErrInvalidDate,
		ErrPastDate,
		ErrNonWorkingDay,
		ErrOutsideBusinessHours,
		ErrSlotConflict,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
