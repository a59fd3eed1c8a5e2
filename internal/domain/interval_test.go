package domain

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var base = time.Date(2025, 3, 10, 13, 0, 0, 0, time.UTC)

func at(minutes int) time.Time {
	return base.Add(time.Duration(minutes) * time.Minute)
}

func TestOverlapsBoundaries(t *testing.T) {
	existing := Interval{Start: at(60), End: at(120)} // 11:00-12:00

	tests := []struct {
		name string
		cand Interval
		want bool
	}{
		{"touching before", Interval{at(0), at(60)}, false},
		{"touching after", Interval{at(120), at(180)}, false},
		{"starts inside", Interval{at(90), at(150)}, true},
		{"ends inside", Interval{at(30), at(90)}, true},
		{"contains existing", Interval{at(30), at(150)}, true},
		{"inside existing", Interval{at(75), at(105)}, true},
		{"equal", Interval{at(60), at(120)}, true},
		{"disjoint", Interval{at(200), at(260)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.cand, existing))
			assert.Equal(t, tt.want, Overlaps(existing, tt.cand), "symmetric")
		})
	}
}

// threeCase is the start-inside / end-inside / contains formulation
func threeCase(a, b Interval) bool {
	startInside := !b.Start.Before(a.Start) && b.Start.Before(a.End)
	endInside := b.End.After(a.Start) && !b.End.After(a.End)
	contains := !b.Start.After(a.Start) && !b.End.Before(a.End)
	return startInside || endInside || contains
}

func TestOverlapsMatchesThreeCaseForm(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for i := 0; i < 5000; i++ {
		aStart := r.Intn(48) * 15
		bStart := r.Intn(48) * 15
		a := Interval{at(aStart), at(aStart + (r.Intn(8)+1)*15)}
		b := Interval{at(bStart), at(bStart + (r.Intn(8)+1)*15)}

		assert.Equal(t, threeCase(a, b), Overlaps(a, b), "a=%v b=%v", a, b)
	}
}

func TestIntervalContains(t *testing.T) {
	i := NewInterval(at(0), time.Hour)

	assert.True(t, i.Contains(at(0)))
	assert.True(t, i.Contains(at(59)))
	assert.False(t, i.Contains(at(60)))
	assert.Equal(t, time.Hour, i.Duration())
	assert.False(t, i.IsEmpty())
}

func TestIntervalCovers(t *testing.T) {
	hours := Interval{Start: at(0), End: at(540)}

	assert.True(t, hours.Covers(Interval{Start: at(0), End: at(60)}))
	assert.True(t, hours.Covers(Interval{Start: at(480), End: at(540)}), "ending exactly at close fits")
	assert.False(t, hours.Covers(Interval{Start: at(481), End: at(541)}), "one minute past close")
	assert.False(t, hours.Covers(Interval{Start: at(-1), End: at(59)}))
}
