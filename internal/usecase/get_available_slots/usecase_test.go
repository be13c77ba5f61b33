package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminahealth/LMH-SchedulingService/internal/domain"
	"github.com/luminahealth/LMH-SchedulingService/internal/infra/storage/memory"
	"github.com/luminahealth/LMH-SchedulingService/pkg/types"
)

type testLogger struct{}

func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}

func newTestUseCase(store *memory.Store) *UseCase {
	return NewUseCase(
		store,
		domain.NewTypeRegistry(nil),
		domain.BusinessHours{OpenHour: 9, CloseHour: 17},
		15,
		"America/New_York",
		testLogger{},
	)
}

func seedAppointment(t *testing.T, store *memory.Store, id, typeName, date, clock string) *domain.Appointment {
	t.Helper()

	registry := domain.NewTypeRegistry(nil)
	apptType := registry.Resolve(typeName)

	nt, err := domain.NormalizeLocalTime(date, clock, "America/New_York", apptType.DurationMinutes)
	require.NoError(t, err)
	day, err := time.Parse(domain.DateFormat, nt.Date)
	require.NoError(t, err)

	appt := &domain.Appointment{
		ID:                  id,
		PatientName:         "Sam Blake",
		AppointmentType:     apptType.Name,
		Date:                day,
		Time:                nt.Time,
		StartTime:           nt.Start,
		EndTime:             nt.End,
		Timezone:            nt.Timezone,
		DurationMinutes:     apptType.DurationMinutes,
		BufferBeforeMinutes: apptType.BufferBeforeMinutes,
		BufferAfterMinutes:  apptType.BufferAfterMinutes,
		Status:              domain.StatusScheduled,
	}
	_, err = store.Create(context.Background(), appt)
	require.NoError(t, err)
	return appt
}

func TestSlotsFitInsideBusinessHours(t *testing.T) {
	uc := newTestUseCase(memory.NewStore())

	// 50-minute session buffered 10/10 occupies 70 minutes; on the
	// 15-minute grid the last fitting start is 15:45 and 16:00 is out.
	resp, err := uc.Execute(context.Background(), &Request{
		Date:            "2026-01-05",
		AppointmentType: "Mental Health Consultation",
	})
	require.NoError(t, err)

	require.NotEmpty(t, resp.Available)
	assert.Equal(t, types.TimeString("09:00"), resp.Available[0])
	assert.Equal(t, types.TimeString("15:45"), resp.Available[len(resp.Available)-1])
	assert.NotContains(t, resp.Available, types.TimeString("16:00"))
	assert.Equal(t, 50, resp.SlotDurationMinutes)
	assert.Equal(t, 10, resp.BufferBeforeMinutes)
	assert.Equal(t, 10, resp.BufferAfterMinutes)
	assert.Empty(t, resp.Booked)
	assert.Equal(t, len(resp.Available), resp.Total)
}

func TestSlotsPartitionAgainstBookings(t *testing.T) {
	store := memory.NewStore()
	uc := newTestUseCase(store)

	// 14:00-14:50 with 10/10 buffers blocks 13:50-15:00.
	seedAppointment(t, store, "apt-1", "Mental Health Consultation", "2026-01-05", "14:00")

	resp, err := uc.Execute(context.Background(), &Request{
		Date:            "2026-01-05",
		AppointmentType: "Follow-up",
	})
	require.NoError(t, err)

	// Follow-up is 15 minutes with 5/5 buffers. 13:30 occupies
	// 13:25-13:50 and touches the blocked window without overlap.
	assert.Contains(t, resp.Available, types.TimeString("13:30"))
	assert.Contains(t, resp.Booked, types.TimeString("13:45"))
	assert.Contains(t, resp.Booked, types.TimeString("14:00"))
	assert.Contains(t, resp.Booked, types.TimeString("14:30"))
	assert.Contains(t, resp.Booked, types.TimeString("14:45"))
	// 15:00 still reaches back into the window via its before-buffer;
	// 15:15 is the first clear start after the booking.
	assert.Contains(t, resp.Booked, types.TimeString("15:00"))
	assert.Contains(t, resp.Available, types.TimeString("15:15"))

	assert.Equal(t, resp.Total, len(resp.Available)+len(resp.Booked))
}

func TestSlotsIgnoreCancelledBookings(t *testing.T) {
	store := memory.NewStore()
	uc := newTestUseCase(store)
	ctx := context.Background()

	appt := seedAppointment(t, store, "apt-1", "Therapy Session", "2026-01-05", "11:00")
	require.NoError(t, store.Cancel(ctx, appt.ID, "Patient request", nil))

	resp, err := uc.Execute(ctx, &Request{Date: "2026-01-05", AppointmentType: "Therapy Session"})
	require.NoError(t, err)

	assert.Contains(t, resp.Available, types.TimeString("11:00"))
	assert.Empty(t, resp.Booked)
}

func TestSlotsDefaultTypeAndDeterminism(t *testing.T) {
	uc := newTestUseCase(memory.NewStore())
	ctx := context.Background()

	first, err := uc.Execute(ctx, &Request{Date: "2026-01-05"})
	require.NoError(t, err)
	assert.Equal(t, "General Consultation", first.AppointmentType)
	assert.Equal(t, "America/New_York", first.Timezone)

	second, err := uc.Execute(ctx, &Request{Date: "2026-01-05"})
	require.NoError(t, err)
	assert.Equal(t, first.Available, second.Available)
	assert.Equal(t, first.Booked, second.Booked)
}

func TestSlotsInputErrors(t *testing.T) {
	uc := newTestUseCase(memory.NewStore())
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(ctx, &Request{Date: "2026-02-30"})
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = uc.Execute(ctx, &Request{Date: "not-a-date"})
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = uc.Execute(ctx, &Request{Date: "2026-01-05", Timezone: "Mars/Olympus_Mons"})
	assert.ErrorIs(t, err, ErrInvalidTimezone)
}
