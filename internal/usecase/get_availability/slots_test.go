package get_availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/ptr"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

var (
	testLoc = time.FixedZone("CLT", -3*3600)
	monday  = time.Date(2025, 3, 10, 0, 0, 0, 0, testLoc)
)

func ts(s string) *types.TimeString {
	return ptr.Ptr(types.MustTimeString(s))
}

func localAt(hour, minute int) time.Time {
	return time.Date(2025, 3, 10, hour, minute, 0, 0, testLoc)
}

func mondayEntry() domain.WeeklyScheduleEntry {
	return domain.WeeklyScheduleEntry{
		Weekday:      domain.Monday,
		IsWorkingDay: true,
		OpenTime:     ts("10:00"),
		CloseTime:    ts("19:00"),
	}
}

func confirmed(from, to time.Time) *domain.Appointment {
	return &domain.Appointment{StartAt: from, EndAt: to, State: domain.StateConfirmed}
}

func input(entry domain.WeeklyScheduleEntry, duration int, existing ...*domain.Appointment) SlotInput {
	return SlotInput{
		Entry:           entry,
		DurationMinutes: duration,
		StepMinutes:     60,
		Date:            monday,
		Existing:        existing,
		Now:             time.Date(2025, 3, 9, 12, 0, 0, 0, testLoc),
		Location:        testLoc,
	}
}

func slotAt(t *testing.T, a Availability, clock string) Slot {
	t.Helper()
	for _, s := range a.Slots {
		if s.Time == types.MustTimeString(clock) {
			return s
		}
	}
	t.Fatalf("no slot at %s", clock)
	return Slot{}
}

func times(a Availability) []string {
	out := make([]string, 0, len(a.Slots))
	for _, s := range a.Slots {
		out = append(out, s.Time.Short())
	}
	return out
}

func TestComputeSlotsHourlyTicks(t *testing.T) {
	a := ComputeSlots(input(mondayEntry(), 60))

	require.True(t, a.IsOpen)
	assert.Equal(t, []string{"10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00", "17:00", "18:00"}, times(a))
	for _, s := range a.Slots {
		assert.True(t, s.Available, s.Time)
	}

	last := slotAt(t, a, "18:00")
	assert.Equal(t, localAt(19, 0), last.EndAt, "ending exactly at close is bookable")
}

func TestComputeSlotsExceedsClosing(t *testing.T) {
	a := ComputeSlots(input(mondayEntry(), 90))

	assert.True(t, slotAt(t, a, "17:00").Available)
	last := slotAt(t, a, "18:00")
	assert.False(t, last.Available)
	assert.Equal(t, ReasonExceedsClosing, last.Reason)
}

func TestComputeSlotsSkipsBreak(t *testing.T) {
	entry := mondayEntry()
	entry.BreakStart, entry.BreakEnd = ts("13:00"), ts("14:00")

	a := ComputeSlots(input(entry, 60))

	assert.Equal(t, []string{"10:00", "11:00", "12:00", "14:00", "15:00", "16:00", "17:00", "18:00"}, times(a))
	require.NotNil(t, a.Break)
	assert.Equal(t, types.MustTimeString("13:00"), a.Break.Start)
}

func TestComputeSlotsBooked(t *testing.T) {
	t.Run("exact and touching", func(t *testing.T) {
		a := ComputeSlots(input(mondayEntry(), 60, confirmed(localAt(10, 0), localAt(11, 0))))

		assert.Equal(t, ReasonBooked, slotAt(t, a, "10:00").Reason)
		assert.True(t, slotAt(t, a, "11:00").Available, "touching intervals do not conflict")
	})

	t.Run("straddling two ticks", func(t *testing.T) {
		a := ComputeSlots(input(mondayEntry(), 60, confirmed(localAt(10, 30), localAt(11, 30))))

		assert.Equal(t, ReasonBooked, slotAt(t, a, "10:00").Reason)
		assert.Equal(t, ReasonBooked, slotAt(t, a, "11:00").Reason)
		assert.True(t, slotAt(t, a, "12:00").Available)
	})

	t.Run("candidate contains existing", func(t *testing.T) {
		a := ComputeSlots(input(mondayEntry(), 120, confirmed(localAt(12, 15), localAt(12, 45))))

		assert.Equal(t, ReasonBooked, slotAt(t, a, "11:00").Reason)
		assert.Equal(t, ReasonBooked, slotAt(t, a, "12:00").Reason)
		assert.True(t, slotAt(t, a, "13:00").Available)
	})

	t.Run("cancelled is ignored", func(t *testing.T) {
		cancelled := confirmed(localAt(10, 0), localAt(11, 0))
		cancelled.State = domain.StateCancelled

		a := ComputeSlots(input(mondayEntry(), 60, cancelled))

		assert.True(t, slotAt(t, a, "10:00").Available)
	})

	t.Run("stored in utc", func(t *testing.T) {
		a := ComputeSlots(input(mondayEntry(), 60, confirmed(localAt(15, 0).UTC(), localAt(16, 0).UTC())))

		assert.Equal(t, ReasonBooked, slotAt(t, a, "15:00").Reason)
		assert.True(t, slotAt(t, a, "14:00").Available)
	})
}

func TestComputeSlotsPastToday(t *testing.T) {
	in := input(mondayEntry(), 60)
	in.Now = localAt(12, 30)

	a := ComputeSlots(in)

	assert.Equal(t, ReasonPast, slotAt(t, a, "10:00").Reason)
	assert.Equal(t, ReasonPast, slotAt(t, a, "12:00").Reason)
	assert.True(t, slotAt(t, a, "13:00").Available)
}

func TestComputeSlotsReasonOrder(t *testing.T) {
	in := input(mondayEntry(), 90, confirmed(localAt(18, 0), localAt(19, 0)))
	in.Now = localAt(18, 30)

	a := ComputeSlots(in)

	assert.Equal(t, ReasonExceedsClosing, slotAt(t, a, "18:00").Reason)
	assert.Equal(t, ReasonBooked, slotAt(t, a, "17:00").Reason)
	assert.Equal(t, ReasonPast, slotAt(t, a, "10:00").Reason)
}

func TestComputeSlotsStep(t *testing.T) {
	in := input(mondayEntry(), 60)
	in.StepMinutes = 30

	a := ComputeSlots(in)

	assert.Len(t, a.Slots, 18)
	assert.True(t, slotAt(t, a, "18:00").Available)
	assert.Equal(t, ReasonExceedsClosing, slotAt(t, a, "18:30").Reason)
}

func TestComputeSlotsNonWorkingDay(t *testing.T) {
	a := ComputeSlots(input(domain.NonWorkingEntry(domain.Sunday), 60))

	assert.False(t, a.IsOpen)
	assert.Empty(t, a.Slots)
	assert.NotNil(t, a.Slots)
}

func TestComputeSlotsWorkingDayWithoutHours(t *testing.T) {
	entry := domain.WeeklyScheduleEntry{Weekday: domain.Monday, IsWorkingDay: true}

	a := ComputeSlots(input(entry, 60))

	assert.False(t, a.IsOpen)
}
