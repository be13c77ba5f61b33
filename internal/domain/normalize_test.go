package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminahealth/LMH-SchedulingService/pkg/types"
)

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantHour int
		wantMin  int
		wantErr  bool
	}{
		{name: "24h afternoon", input: "14:00", wantHour: 14},
		{name: "24h with minutes", input: "09:45", wantHour: 9, wantMin: 45},
		{name: "12h spaced", input: "2:00 PM", wantHour: 14},
		{name: "12h compact", input: "2:00PM", wantHour: 14},
		{name: "12h no minutes", input: "2pm", wantHour: 14},
		{name: "noon stays noon", input: "12:00 PM", wantHour: 12},
		{name: "midnight is zero", input: "12:00 AM", wantHour: 0},
		{name: "midnight no minutes", input: "12 am", wantHour: 0},
		{name: "morning am", input: "9:30 am", wantHour: 9, wantMin: 30},
		{name: "empty", input: "", wantErr: true},
		{name: "hour out of range 24h", input: "25:00", wantErr: true},
		{name: "hour out of range 12h", input: "13:00 PM", wantErr: true},
		{name: "zero hour 12h", input: "0:30 am", wantErr: true},
		{name: "minutes out of range", input: "9:75", wantErr: true},
		{name: "garbage", input: "sometime tomorrow", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hour, minute, err := ParseClockTime(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTimeFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHour, hour)
			assert.Equal(t, tt.wantMin, minute)
		})
	}
}

func TestNormalizeLocalTime(t *testing.T) {
	nt, err := NormalizeLocalTime("2026-01-05", "2:00 PM", "America/New_York", 50)
	require.NoError(t, err)

	assert.Equal(t, "2026-01-05", nt.Date)
	assert.Equal(t, types.TimeString("14:00"), nt.Time)
	assert.Equal(t, "America/New_York", nt.Timezone)
	assert.Equal(t, 50*time.Minute, nt.End.Sub(nt.Start))
	assert.Equal(t, "Monday, January 5, 2026 at 2:00 PM", nt.Display)

	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 5, 14, 0, 0, 0, loc), nt.Start)
}

func TestNormalizeLocalTimeMidnightRoundTrip(t *testing.T) {
	nt, err := NormalizeLocalTime("2026-01-05", "12:00 AM", "America/New_York", 30)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("00:00"), nt.Time)
}

func TestNormalizeLocalTimeErrors(t *testing.T) {
	_, err := NormalizeLocalTime("2026-02-30", "14:00", "America/New_York", 30)
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = NormalizeLocalTime("not-a-date", "14:00", "America/New_York", 30)
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = NormalizeLocalTime("2026-01-05", "around noonish", "America/New_York", 30)
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)

	_, err = NormalizeLocalTime("2026-01-05", "14:00", "Mars/Olympus", 30)
	assert.ErrorIs(t, err, ErrInvalidTimezone)
}

func TestNormalizeLocalTimeBuffersNotIncluded(t *testing.T) {
	// End must be exactly start + duration; buffers are applied only at
	// conflict-check time.
	nt, err := NormalizeLocalTime("2026-01-05", "14:00", "UTC", 50)
	require.NoError(t, err)
	assert.Equal(t, nt.Start.Add(50*time.Minute), nt.End)
}
