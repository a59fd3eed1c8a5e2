package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/ptr"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

func newCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewCache(client, time.Minute), mr
}

func TestCacheRoundTrip(t *testing.T) {
	cache, mr := newCache(t)
	ctx := context.Background()

	_, ok, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	template := []domain.WeeklyScheduleEntry{
		domain.NonWorkingEntry(domain.Sunday),
		{
			Weekday:      domain.Monday,
			IsWorkingDay: true,
			OpenTime:     ptr.Ptr(types.MustTimeString("10:00")),
			CloseTime:    ptr.Ptr(types.MustTimeString("19:00")),
			BreakStart:   ptr.Ptr(types.MustTimeString("13:00")),
			BreakEnd:     ptr.Ptr(types.MustTimeString("14:00")),
		},
	}
	require.NoError(t, cache.Set(ctx, template))
	assert.True(t, mr.Exists(templateKey))
	assert.Equal(t, time.Minute, mr.TTL(templateKey))

	got, ok, err := cache.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 2)
	assert.False(t, got[0].IsWorkingDay)
	assert.Equal(t, types.TimeString("13:00:00"), *got[1].BreakStart)

	require.NoError(t, cache.Invalidate(ctx))
	_, ok, err = cache.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCacheExpires(t *testing.T) {
	cache, mr := newCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, []domain.WeeklyScheduleEntry{domain.NonWorkingEntry(domain.Sunday)}))
	mr.FastForward(2 * time.Minute)

	_, ok, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCacheCorruptedValue(t *testing.T) {
	cache, mr := newCache(t)

	require.NoError(t, mr.Set(templateKey, "not json"))

	_, _, err := cache.Get(context.Background())
	assert.ErrorIs(t, err, ErrDecode)
}

func TestCacheRedisDown(t *testing.T) {
	cache, mr := newCache(t)
	mr.Close()

	_, _, err := cache.Get(context.Background())
	assert.ErrorIs(t, err, ErrRedis)
}
