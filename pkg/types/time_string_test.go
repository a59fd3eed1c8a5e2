package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		in      string
		want    TimeString
		wantErr bool
	}{
		{in: "10:00", want: "10:00:00"},
		{in: "09:30:15", want: "09:30:15"},
		{in: "23:59", want: "23:59:00"},
		{in: "24:00", wantErr: true},
		{in: "9:00", wantErr: true},
		{in: "10:60", wantErr: true},
		{in: "", wantErr: true},
		{in: "10-00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeStringArithmetic(t *testing.T) {
	ts := MustTimeString("18:30")

	next, err := ts.AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, "19:00", next.Short())
	assert.True(t, ts.IsBefore(next))
	assert.True(t, next.IsAfter(ts))
	assert.Equal(t, 19*60, next.Minutes())

	_, err = MustTimeString("23:30").AddMinutes(30)
	assert.ErrorIs(t, err, ErrTimeOverflow)
}

func TestTimeStringScan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan([]byte("10:00:00")))
	assert.Equal(t, TimeString("10:00:00"), ts)

	require.NoError(t, ts.Scan("13:00:00.000000"))
	assert.Equal(t, TimeString("13:00:00"), ts)

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 8, 15, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("08:15:00"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeStringJSON(t *testing.T) {
	var payload struct {
		Open TimeString `json:"open"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"open":"10:00"}`), &payload))
	assert.Equal(t, TimeString("10:00:00"), payload.Open)

	assert.Error(t, json.Unmarshal([]byte(`{"open":"25:00"}`), &payload))
}
