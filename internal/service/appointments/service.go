package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-BarberBooking/internal/service/appointments/models"
)

// Service сервис для работы с существующими записями
type Service struct {
	repo    AppointmentRepository
	clock   Clock
	metrics Metrics
	logger  Logger

	queryTimeout time.Duration
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	repo AppointmentRepository,
	clock Clock,
	metrics Metrics,
	queryTimeout time.Duration,
	logger Logger,
) *Service {
	return &Service{
		repo:         repo,
		clock:        clock,
		metrics:      metrics,
		logger:       logger,
		queryTimeout: queryTimeout,
	}
}

// GetByID получает запись по ID.
// Клиент видит только свои записи, администратор любые.
func (s *Service) GetByID(ctx context.Context, id int64, principal domain.Principal) (*models.AppointmentResponse, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, principal.ID)

	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if !canSee(principal, appointment) {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", principal.ID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainAppointment(appointment, s.clock.Location()), nil
}

// List получает записи по фильтру; для клиента выборка ограничена его email
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	s.logger.Info("List: fetching appointments for user=%d role=%s", req.Principal.ID, req.Principal.Role)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if req.DateFrom != nil && req.DateTo != nil && !req.DateTo.After(*req.DateFrom) {
		s.logger.Warn("List: empty period %s - %s", req.DateFrom, req.DateTo)
		return nil, fmt.Errorf("%w: dateTo must be after dateFrom", ErrInvalidInput)
	}

	list, err := s.repo.ListByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d appointments", len(list))
	return models.FromDomainAppointmentList(list, s.clock.Location()), nil
}

// Cancel переводит запись confirmed -> cancelled одним условным обновлением.
// Повторная отмена возвращает ErrNotFoundOrAlreadyCancelled и ничего не меняет.
// Клиент может отменить только свою запись.
func (s *Service) Cancel(ctx context.Context, id int64, principal domain.Principal) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	s.logger.Info("Cancel: cancelling appointment id=%d by user=%d", id, principal.ID)

	var ownerEmail *string
	if !principal.IsAdmin() {
		email := principal.Email
		ownerEmail = &email
	}

	err := s.repo.UpdateState(ctx, id, domain.StateConfirmed, domain.StateCancelled, ownerEmail)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found or already cancelled", id)
			return ErrNotFoundOrAlreadyCancelled
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if s.metrics != nil {
		s.metrics.IncBookingCancelled()
	}
	s.logger.Info("Cancel: appointment id=%d cancelled", id)
	return nil
}

// Delete физически удаляет отмененную запись
func (s *Service) Delete(ctx context.Context, id int64) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	s.logger.Info("Delete: deleting appointment id=%d", id)

	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("Delete: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if !appointment.CanBeDeleted() {
		s.logger.Warn("Delete: appointment id=%d is %s", id, appointment.State)
		return ErrNotCancelled
	}

	if err := s.repo.DeleteCancelled(ctx, id); err != nil {
		// запись могли восстановить или удалить между чтением и удалением
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrNotCancelled
		}
		s.logger.Error("Delete: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: appointment id=%d deleted", id)
	return nil
}

// PurgeCancelled удаляет все отмененные записи
func (s *Service) PurgeCancelled(ctx context.Context) (*models.PurgeResponse, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	deleted, err := s.repo.PurgeCancelled(ctx)
	if err != nil {
		s.logger.Error("PurgeCancelled: repository error: %v", err)
		return nil, fmt.Errorf("%w: PurgeCancelled - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("PurgeCancelled: deleted %d cancelled appointments", deleted)
	return &models.PurgeResponse{Deleted: deleted}, nil
}

// Stats показатели панели администратора
func (s *Service) Stats(ctx context.Context) (*models.StatsResponse, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	stats, err := s.repo.Stats(ctx, s.clock.Now(), s.clock.Location())
	if err != nil {
		s.logger.Error("Stats: repository error: %v", err)
		return nil, fmt.Errorf("%w: Stats - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainStats(stats), nil
}

// canSee проверяет, что пользователь имеет доступ к записи
func canSee(principal domain.Principal, a *domain.Appointment) bool {
	if principal.IsAdmin() {
		return true
	}
	return a.ClientEmail != nil && principal.Email != "" && *a.ClientEmail == principal.Email
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.queryTimeout)
}
