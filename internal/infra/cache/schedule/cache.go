package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

const templateKey = "barber:schedule:template"

var (
	ErrEncode = errors.New("schedule.cache: failed to encode template")
	ErrDecode = errors.New("schedule.cache: failed to decode template")
	ErrRedis  = errors.New("schedule.cache: redis error")
)

type cachedEntry struct {
	Weekday      int               `json:"weekday"`
	IsWorkingDay bool              `json:"isWorkingDay"`
	OpenTime     *types.TimeString `json:"openTime,omitempty"`
	CloseTime    *types.TimeString `json:"closeTime,omitempty"`
	BreakStart   *types.TimeString `json:"breakStart,omitempty"`
	BreakEnd     *types.TimeString `json:"breakEnd,omitempty"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// Cache кеш полного недельного шаблона в Redis
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get возвращает шаблон из кеша; ok=false при промахе
func (c *Cache) Get(ctx context.Context) ([]domain.WeeklyScheduleEntry, bool, error) {
	raw, err := c.client.Get(ctx, templateKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: Get: %v", ErrRedis, err)
	}

	var cached []cachedEntry
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	entries := make([]domain.WeeklyScheduleEntry, 0, len(cached))
	for _, e := range cached {
		entries = append(entries, domain.WeeklyScheduleEntry{
			Weekday:      domain.Weekday(e.Weekday),
			IsWorkingDay: e.IsWorkingDay,
			OpenTime:     e.OpenTime,
			CloseTime:    e.CloseTime,
			BreakStart:   e.BreakStart,
			BreakEnd:     e.BreakEnd,
			UpdatedAt:    e.UpdatedAt,
		})
	}

	return entries, true, nil
}

// Set сохраняет шаблон с TTL
func (c *Cache) Set(ctx context.Context, entries []domain.WeeklyScheduleEntry) error {
	cached := make([]cachedEntry, 0, len(entries))
	for _, e := range entries {
		cached = append(cached, cachedEntry{
			Weekday:      int(e.Weekday),
			IsWorkingDay: e.IsWorkingDay,
			OpenTime:     e.OpenTime,
			CloseTime:    e.CloseTime,
			BreakStart:   e.BreakStart,
			BreakEnd:     e.BreakEnd,
			UpdatedAt:    e.UpdatedAt,
		})
	}

	raw, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	if err := c.client.Set(ctx, templateKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Set: %v", ErrRedis, err)
	}

	return nil
}

// Invalidate удаляет шаблон из кеша
func (c *Cache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, templateKey).Err(); err != nil {
		return fmt.Errorf("%w: Invalidate: %v", ErrRedis, err)
	}
	return nil
}
