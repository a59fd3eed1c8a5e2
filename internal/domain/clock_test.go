package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

func santiago(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Santiago")
	require.NoError(t, err)
	return loc
}

func TestBusinessClockLocalDay(t *testing.T) {
	loc := santiago(t)
	clock := NewBusinessClock(loc, nil)

	// 02:30 UTC on Tuesday is still Monday evening in Santiago
	instant := time.Date(2025, 3, 11, 2, 30, 0, 0, time.UTC)

	assert.Equal(t, Monday, clock.Weekday(instant))
	assert.Equal(t, 10, clock.LocalDate(instant).Day())
}

func TestBusinessClockAt(t *testing.T) {
	loc := santiago(t)
	clock := NewBusinessClock(loc, nil)

	date := clock.Date(2025, time.July, 14)
	open := clock.At(date, types.MustTimeString("10:00"))

	assert.Equal(t, time.Date(2025, time.July, 14, 10, 0, 0, 0, loc), open)
	assert.Equal(t, "10:00", types.NewTimeString(open.In(loc)).Short())

	day := clock.DayRange(date)
	assert.True(t, day.Contains(open))
	assert.Equal(t, date.AddDate(0, 0, 1), day.End)
}

func TestBusinessClockParseInstant(t *testing.T) {
	loc := santiago(t)
	clock := NewBusinessClock(loc, nil)

	withZone, err := clock.ParseInstant("2025-07-14T14:00:00Z")
	require.NoError(t, err)
	assert.True(t, withZone.Equal(time.Date(2025, 7, 14, 14, 0, 0, 0, time.UTC)))

	local, err := clock.ParseInstant("2025-07-14T10:00")
	require.NoError(t, err)
	assert.True(t, local.Equal(time.Date(2025, 7, 14, 10, 0, 0, 0, loc)))

	shortOffset, err := clock.ParseInstant("2025-03-10T10:00-03:00")
	require.NoError(t, err)
	assert.True(t, shortOffset.Equal(time.Date(2025, 3, 10, 13, 0, 0, 0, time.UTC)))

	_, err = clock.ParseInstant("tomorrow")
	assert.Error(t, err)
}

func TestBusinessClockNow(t *testing.T) {
	fixed := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := NewBusinessClock(time.UTC, func() time.Time { return fixed })

	assert.Equal(t, fixed, clock.Now())
}
