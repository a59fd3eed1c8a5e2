package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-BarberBooking/internal/service/schedule/models"
	"github.com/m04kA/SMC-BarberBooking/pkg/ptr"
)

const cacheName = "schedule"

// Service сервис недельного расписания
type Service struct {
	repo      ScheduleRepository
	cache     TemplateCache
	txManager TransactionManager
	metrics   CacheMetrics
	logger    Logger

	queryTimeout time.Duration
}

// NewService создает сервис расписания. cache и metrics могут быть nil.
func NewService(
	repo ScheduleRepository,
	cache TemplateCache,
	txManager TransactionManager,
	metrics CacheMetrics,
	queryTimeout time.Duration,
	logger Logger,
) *Service {
	return &Service{
		repo:         repo,
		cache:        cache,
		txManager:    txManager,
		metrics:      metrics,
		logger:       logger,
		queryTimeout: queryTimeout,
	}
}

// GetTemplate возвращает ровно 7 строк, упорядоченных от воскресенья до субботы.
// Дни без строки в хранилище считаются выходными.
func (s *Service) GetTemplate(ctx context.Context) ([]domain.WeeklyScheduleEntry, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	// 1. Пробуем кеш; ошибки кеша не мешают чтению из базы
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn("GetTemplate: cache get failed: %v", err)
		}
		s.observeCache(ok && err == nil)
		if ok && err == nil {
			return complete(cached), nil
		}
	}

	// 2. Читаем из базы
	stored, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("GetTemplate: failed to load schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to load schedule: %w", ErrInternal, err)
	}

	template := complete(stored)

	// 3. Кладем в кеш
	if s.cache != nil {
		if err := s.cache.Set(ctx, template); err != nil {
			s.logger.Warn("GetTemplate: cache set failed: %v", err)
		}
	}

	return template, nil
}

// GetEntry возвращает строку дня недели
func (s *Service) GetEntry(ctx context.Context, weekday domain.Weekday) (domain.WeeklyScheduleEntry, error) {
	if !weekday.IsValid() {
		return domain.WeeklyScheduleEntry{}, fmt.Errorf("%w: weekday %d", ErrInvalidInput, int(weekday))
	}

	template, err := s.GetTemplate(ctx)
	if err != nil {
		return domain.WeeklyScheduleEntry{}, err
	}

	return template[weekday], nil
}

// GetEntryFresh читает строку дня недели напрямую из базы, минуя кеш.
// Вызывается внутри транзакции бронирования: строка блокируется до коммита.
func (s *Service) GetEntryFresh(ctx context.Context, weekday domain.Weekday) (domain.WeeklyScheduleEntry, error) {
	if !weekday.IsValid() {
		return domain.WeeklyScheduleEntry{}, fmt.Errorf("%w: weekday %d", ErrInvalidInput, int(weekday))
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	entry, err := s.repo.GetByWeekday(ctx, weekday)
	if errors.Is(err, scheduleRepo.ErrEntryNotFound) {
		return domain.NonWorkingEntry(weekday), nil
	}
	if err != nil {
		s.logger.Error("GetEntryFresh: failed to load %s: %v", weekday, err)
		// Ошибка сериализации должна остаться в цепочке для повтора транзакции
		return domain.WeeklyScheduleEntry{}, fmt.Errorf("%w: failed to load schedule: %w", ErrInternal, err)
	}

	return *entry, nil
}

// UpsertTemplate заменяет шаблон целиком в одной транзакции.
// Требуются 7 строк с разными днями недели; каждая проверяется до записи.
func (s *Service) UpsertTemplate(ctx context.Context, entries []domain.WeeklyScheduleEntry) ([]domain.WeeklyScheduleEntry, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	s.logger.Info("UpsertTemplate: replacing weekly template (%d entries)", len(entries))

	// 1. Проверяем полноту шаблона
	if len(entries) != domain.DaysPerWeek {
		s.logger.Warn("UpsertTemplate: got %d entries", len(entries))
		return nil, fmt.Errorf("%w: got %d entries", ErrInvalidTemplate, len(entries))
	}

	seen := make(map[domain.Weekday]bool, domain.DaysPerWeek)
	normalized := make([]domain.WeeklyScheduleEntry, 0, domain.DaysPerWeek)
	for _, entry := range entries {
		e := entry.Normalized()

		// 2. Проверяем каждую строку
		if err := e.Validate(); err != nil {
			s.logger.Warn("UpsertTemplate: invalid entry: %v", err)
			return nil, fmt.Errorf("%w: %w", ErrInvalidEntry, err)
		}
		if seen[e.Weekday] {
			s.logger.Warn("UpsertTemplate: duplicate weekday %s", e.Weekday)
			return nil, fmt.Errorf("%w: duplicate %s", ErrInvalidTemplate, e.Weekday)
		}
		seen[e.Weekday] = true
		normalized = append(normalized, e)
	}

	// 3. Записываем все строки атомарно
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.repo.UpsertAll(txCtx, normalized)
	})
	if err != nil {
		s.logger.Error("UpsertTemplate: failed to save schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to save schedule: %v", ErrInternal, err)
	}

	// 4. Сбрасываем кеш
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warn("UpsertTemplate: cache invalidate failed: %v", err)
		}
	}

	s.logger.Info("UpsertTemplate: weekly template replaced")

	return s.GetTemplate(ctx)
}

// ApplyUniformHours строит шаблон из списка рабочих дней с одинаковыми часами
func (s *Service) ApplyUniformHours(ctx context.Context, req *models.UniformHoursRequest) ([]domain.WeeklyScheduleEntry, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if req.OpenTime.IsZero() || req.CloseTime.IsZero() {
		return nil, fmt.Errorf("%w: open and close time are required", ErrInvalidInput)
	}

	working := make(map[domain.Weekday]bool, len(req.WorkingDays))
	for _, w := range req.WorkingDays {
		if !w.IsValid() {
			return nil, fmt.Errorf("%w: weekday %d", ErrInvalidInput, int(w))
		}
		working[w] = true
	}

	entries := make([]domain.WeeklyScheduleEntry, 0, domain.DaysPerWeek)
	for _, w := range domain.AllWeekdays() {
		if !working[w] {
			entries = append(entries, domain.NonWorkingEntry(w))
			continue
		}
		entries = append(entries, domain.WeeklyScheduleEntry{
			Weekday:      w,
			IsWorkingDay: true,
			OpenTime:     ptr.Ptr(req.OpenTime),
			CloseTime:    ptr.Ptr(req.CloseTime),
			BreakStart:   req.BreakStart,
			BreakEnd:     req.BreakEnd,
		})
	}

	return s.UpsertTemplate(ctx, entries)
}

func (s *Service) observeCache(hit bool) {
	if s.metrics != nil {
		s.metrics.ObserveCacheLookup(cacheName, hit)
	}
}

// complete раскладывает строки по индексу дня недели и дополняет недостающие выходными
func complete(stored []domain.WeeklyScheduleEntry) []domain.WeeklyScheduleEntry {
	template := make([]domain.WeeklyScheduleEntry, domain.DaysPerWeek)
	for _, w := range domain.AllWeekdays() {
		template[w] = domain.NonWorkingEntry(w)
	}
	for _, e := range stored {
		if e.Weekday.IsValid() {
			template[e.Weekday] = e
		}
	}
	return template
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.queryTimeout)
}
