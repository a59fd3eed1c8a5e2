package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-BarberBooking/internal/service/catalog/models"
)

// Service сервис каталога услуг
type Service struct {
	repo         ServiceRepository
	appointments AppointmentCounter
	clock        Clock
	logger       Logger
	queryTimeout time.Duration
}

// NewService создает новый экземпляр сервиса каталога
func NewService(
	repo ServiceRepository,
	appointments AppointmentCounter,
	clock Clock,
	queryTimeout time.Duration,
	logger Logger,
) *Service {
	return &Service{
		repo:         repo,
		appointments: appointments,
		clock:        clock,
		logger:       logger,
		queryTimeout: queryTimeout,
	}
}

// GetActiveService возвращает услугу, доступную для записи
func (s *Service) GetActiveService(ctx context.Context, id int64) (*models.ServiceResponse, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	service, err := s.repo.GetActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("GetActiveService: service id=%d not found or inactive", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetActiveService: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetActiveService - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainService(service), nil
}

// ListActive активные услуги для клиентов
func (s *Service) ListActive(ctx context.Context) (*models.ServiceListResponse, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	list, err := s.repo.ListActive(ctx)
	if err != nil {
		s.logger.Error("ListActive: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListActive - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainServiceList(list), nil
}

// ListAll все услуги, включая неактивные
func (s *Service) ListAll(ctx context.Context) (*models.ServiceListResponse, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	list, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.Error("ListAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAll - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainServiceList(list), nil
}

// Create создает услугу
func (s *Service) Create(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	s.logger.Info("Create: creating service name=%q duration=%d", req.Name, req.DurationMinutes)

	name := strings.TrimSpace(req.Name)
	if err := domain.ValidateServiceFields(name, req.DurationMinutes, req.PriceAmount); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	created, err := s.repo.Create(ctx, &domain.Service{
		Name:            name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		PriceAmount:     req.PriceAmount,
	})
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: service id=%d created", created.ID)
	return models.FromDomainService(created), nil
}

// Update частично обновляет услугу
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	s.logger.Info("Update: updating service id=%d", id)

	// 1. Получаем текущее состояние, чтобы проверить итоговые значения
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("Update: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Update: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	fields := catalogRepo.UpdateFields{
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		PriceAmount:     req.PriceAmount,
		Active:          req.Active,
	}
	name, duration, price := current.Name, current.DurationMinutes, current.PriceAmount
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		fields.Name = &trimmed
		name = trimmed
	}
	if req.DurationMinutes != nil {
		duration = *req.DurationMinutes
	}
	if req.PriceAmount != nil {
		price = *req.PriceAmount
	}

	// 2. Валидируем итоговые значения
	if err := domain.ValidateServiceFields(name, duration, price); err != nil {
		s.logger.Warn("Update: validation failed for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	// 3. Сохраняем
	updated, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Update: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainService(updated), nil
}

// Remove удаляет услугу.
// Если на нее есть будущие подтвержденные записи, услуга только деактивируется.
// Иначе удаляется физически; если удалению мешает история записей, тоже деактивируется.
func (s *Service) Remove(ctx context.Context, id int64) (*models.RemoveServiceResponse, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	s.logger.Info("Remove: removing service id=%d", id)

	// 1. Проверяем существование
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("Remove: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Remove: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Remove - repository error: %v", ErrInternal, err)
	}

	// 2. Считаем будущие подтвержденные записи
	future, err := s.appointments.CountFutureConfirmedByService(ctx, id, s.clock.Now())
	if err != nil {
		s.logger.Error("Remove: failed to count appointments for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Remove - count appointments: %v", ErrInternal, err)
	}

	if future > 0 {
		s.logger.Info("Remove: service id=%d has %d future appointments, deactivating", id, future)
		return s.deactivate(ctx, id)
	}

	// 3. Пробуем физическое удаление
	err = s.repo.Delete(ctx, id)
	switch {
	case err == nil:
		s.logger.Info("Remove: service id=%d deleted", id)
		return &models.RemoveServiceResponse{ID: id, Mode: models.RemovedHard}, nil
	case errors.Is(err, catalogRepo.ErrServiceInUse):
		s.logger.Info("Remove: service id=%d is referenced by history, deactivating", id)
		return s.deactivate(ctx, id)
	case errors.Is(err, catalogRepo.ErrServiceNotFound):
		return nil, ErrServiceNotFound
	default:
		s.logger.Error("Remove: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Remove - repository error: %v", ErrInternal, err)
	}
}

func (s *Service) deactivate(ctx context.Context, id int64) (*models.RemoveServiceResponse, error) {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Remove: failed to deactivate service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Remove - deactivate: %v", ErrInternal, err)
	}
	return &models.RemoveServiceResponse{ID: id, Mode: models.RemovedSoft}, nil
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.queryTimeout)
}
