package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04", value)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return parsed
}

func testAppointment(t *testing.T, id, start, end string, before, after int, status AppointmentStatus) *Appointment {
	t.Helper()
	return &Appointment{
		ID:                  id,
		StartTime:           mustTime(t, start),
		EndTime:             mustTime(t, end),
		BufferBeforeMinutes: before,
		BufferAfterMinutes:  after,
		Status:              status,
	}
}

func TestIntervalOverlaps(t *testing.T) {
	a := Interval{Start: mustTime(t, "2026-01-05 14:00"), End: mustTime(t, "2026-01-05 15:00")}

	tests := []struct {
		name  string
		other Interval
		want  bool
	}{
		{
			name:  "contained",
			other: Interval{Start: mustTime(t, "2026-01-05 14:15"), End: mustTime(t, "2026-01-05 14:45")},
			want:  true,
		},
		{
			name:  "partial front",
			other: Interval{Start: mustTime(t, "2026-01-05 13:30"), End: mustTime(t, "2026-01-05 14:30")},
			want:  true,
		},
		{
			name:  "touching end is not overlap",
			other: Interval{Start: mustTime(t, "2026-01-05 15:00"), End: mustTime(t, "2026-01-05 16:00")},
			want:  false,
		},
		{
			name:  "touching start is not overlap",
			other: Interval{Start: mustTime(t, "2026-01-05 13:00"), End: mustTime(t, "2026-01-05 14:00")},
			want:  false,
		},
		{
			name:  "disjoint",
			other: Interval{Start: mustTime(t, "2026-01-05 16:00"), End: mustTime(t, "2026-01-05 17:00")},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Overlaps(tt.other))
			// Overlap is symmetric.
			assert.Equal(t, tt.want, tt.other.Overlaps(a))
		})
	}
}

func TestBlockedWindowAsymmetricBuffers(t *testing.T) {
	// 30-minute session, 5 before / 15 after must block [start-5, end+15].
	appt := testAppointment(t, "apt-1", "2026-01-05 14:30", "2026-01-05 15:00", 5, 15, StatusScheduled)

	blocked := appt.BlockedWindow()
	assert.Equal(t, mustTime(t, "2026-01-05 14:25"), blocked.Start)
	assert.Equal(t, mustTime(t, "2026-01-05 15:15"), blocked.End)
}

func TestFindConflictUsesEachBookingsOwnBuffers(t *testing.T) {
	// Mental Health Consultation 14:00-14:50 with 10/10 blocks 13:50-15:00.
	existing := []*Appointment{
		testAppointment(t, "apt-mh", "2026-01-05 14:00", "2026-01-05 14:50", 10, 10, StatusScheduled),
	}

	// Crisis Intervention candidate 14:30-15:00 with 5/15 blocks 14:25-15:15.
	candidate := Interval{Start: mustTime(t, "2026-01-05 14:30"), End: mustTime(t, "2026-01-05 15:00")}
	assert.True(t, HasConflict(candidate, 5, 15, existing, ""))

	// A candidate after the blocked window of the first booking is free.
	free := Interval{Start: mustTime(t, "2026-01-05 15:00"), End: mustTime(t, "2026-01-05 15:30")}
	assert.False(t, HasConflict(free, 5, 15, existing, ""))
}

func TestConflictSymmetry(t *testing.T) {
	a := testAppointment(t, "apt-a", "2026-01-05 14:00", "2026-01-05 14:50", 10, 10, StatusScheduled)
	b := testAppointment(t, "apt-b", "2026-01-05 14:30", "2026-01-05 15:00", 5, 15, StatusScheduled)

	aAgainstB := HasConflict(a.Interval(), a.BufferBeforeMinutes, a.BufferAfterMinutes, []*Appointment{b}, "")
	bAgainstA := HasConflict(b.Interval(), b.BufferBeforeMinutes, b.BufferAfterMinutes, []*Appointment{a}, "")
	assert.Equal(t, aAgainstB, bAgainstA)
}

func TestCancelledAppointmentsNeverConflict(t *testing.T) {
	existing := []*Appointment{
		testAppointment(t, "apt-cancelled", "2026-01-05 14:00", "2026-01-05 14:50", 10, 10, StatusCancelled),
	}

	candidate := Interval{Start: mustTime(t, "2026-01-05 14:00"), End: mustTime(t, "2026-01-05 14:50")}
	assert.False(t, HasConflict(candidate, 10, 10, existing, ""))
}

func TestFindConflictSelfExclusion(t *testing.T) {
	self := testAppointment(t, "apt-self", "2026-01-05 14:00", "2026-01-05 14:50", 10, 10, StatusConfirmed)

	// Rescheduling to the exact current time must not conflict with itself.
	assert.False(t, HasConflict(self.Interval(), 10, 10, []*Appointment{self}, "apt-self"))
	assert.True(t, HasConflict(self.Interval(), 10, 10, []*Appointment{self}, ""))
}

func TestAppendNote(t *testing.T) {
	first := AppendNote(nil, "Rescheduled from 2026-01-05 14:00: patient request")
	assert.Equal(t, "Rescheduled from 2026-01-05 14:00: patient request", *first)

	second := AppendNote(first, "Cancelled: no longer needed")
	assert.Equal(t, "Rescheduled from 2026-01-05 14:00: patient request\nCancelled: no longer needed", *second)

	unchanged := AppendNote(second, "")
	assert.Equal(t, *second, *unchanged)
}
