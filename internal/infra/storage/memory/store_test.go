package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminahealth/LMH-SchedulingService/internal/domain"
	"github.com/luminahealth/LMH-SchedulingService/pkg/ptr"
)

func storeAppointment(t *testing.T, store *Store, id, date, hhmm, phone string) {
	t.Helper()

	nt, err := domain.NormalizeLocalTime(date, hhmm, "America/New_York", 30)
	require.NoError(t, err)
	day, err := time.Parse(domain.DateFormat, nt.Date)
	require.NoError(t, err)

	_, err = store.Create(context.Background(), &domain.Appointment{
		ID:              id,
		PatientName:     "Sam Blake",
		PatientPhone:    ptr.Ptr(phone),
		PatientEmail:    ptr.Ptr("sam@example.com"),
		AppointmentType: "General Consultation",
		Date:            day,
		Time:            nt.Time,
		StartTime:       nt.Start,
		EndTime:         nt.End,
		Timezone:        nt.Timezone,
		DurationMinutes: 30,
		Status:          domain.StatusScheduled,
	})
	require.NoError(t, err)
}

func TestSearchOrderIsDeterministic(t *testing.T) {
	store := NewStore()

	// Two bookings share a start time; a third is earlier.
	storeAppointment(t, store, "apt-b", "2026-01-05", "14:00", "555-0101")
	storeAppointment(t, store, "apt-a", "2026-01-06", "14:00", "555-0101")
	storeAppointment(t, store, "apt-c", "2026-01-06", "14:00", "555-0101")
	storeAppointment(t, store, "apt-d", "2026-01-06", "09:00", "555-0101")

	wantOrder := []string{"apt-a", "apt-c", "apt-d", "apt-b"}
	for i := 0; i < 10; i++ {
		result, err := store.Search(context.Background(), "0101")
		require.NoError(t, err)
		require.Len(t, result, 4)

		got := make([]string, 0, len(result))
		for _, appt := range result {
			got = append(got, appt.ID)
		}
		assert.Equal(t, wantOrder, got)
	}
}
