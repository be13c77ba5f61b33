package reschedule_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminahealth/LMH-SchedulingService/internal/domain"
	"github.com/luminahealth/LMH-SchedulingService/internal/infra/storage/memory"
	"github.com/luminahealth/LMH-SchedulingService/internal/integrations/calendar"
	"github.com/luminahealth/LMH-SchedulingService/internal/locker"
)

type testLogger struct{}

func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}

type noopTxManager struct{}

func (noopTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestUseCase(store *memory.Store) *UseCase {
	log := testLogger{}
	return NewUseCase(
		store,
		domain.NewTypeRegistry(nil),
		domain.BusinessHours{OpenHour: 9, CloseHour: 17},
		calendar.NewMockClient(log),
		locker.NewLocalLocker(),
		noopTxManager{},
		log,
	)
}

func seedAppointment(t *testing.T, store *memory.Store, id, typeName, date, clock string, status domain.AppointmentStatus) *domain.Appointment {
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
		Status:              status,
	}
	_, err = store.Create(context.Background(), appt)
	require.NoError(t, err)
	return appt
}

func TestRescheduleMovesAppointment(t *testing.T) {
	store := memory.NewStore()
	uc := newTestUseCase(store)
	ctx := context.Background()

	seedAppointment(t, store, "apt-1", "Therapy Session", "2026-01-05", "14:00", domain.StatusConfirmed)

	resp, err := uc.Execute(ctx, &Request{
		AppointmentID: "apt-1",
		NewDate:       "2026-01-05",
		NewTime:       "3:00 PM",
		Reason:        "Patient asked to move",
	})
	require.NoError(t, err)

	assert.Equal(t, "2026-01-05", resp.PreviousDate)
	assert.Equal(t, "14:00", resp.PreviousTime.String())
	assert.Equal(t, "15:00", resp.Time.String())
	assert.Equal(t, "confirmed", resp.Status)
	require.NotNil(t, resp.Notes)
	assert.Contains(t, *resp.Notes, "Rescheduled from 2026-01-05 14:00: Patient asked to move")

	stored, err := store.GetByID(ctx, "apt-1")
	require.NoError(t, err)
	assert.Equal(t, "15:00", stored.Time.String())
	assert.Equal(t, domain.StatusConfirmed, stored.Status)
}

func TestRescheduleExcludesItselfFromConflicts(t *testing.T) {
	store := memory.NewStore()
	uc := newTestUseCase(store)

	seedAppointment(t, store, "apt-1", "Mental Health Consultation", "2026-01-05", "14:00", domain.StatusScheduled)

	// Moving onto its own current slot must not conflict with itself.
	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID: "apt-1",
		NewDate:       "2026-01-05",
		NewTime:       "14:00",
	})
	require.NoError(t, err)

	assert.Equal(t, "14:00", resp.Time.String())
	require.NotNil(t, resp.Notes)
	assert.Contains(t, *resp.Notes, "Rescheduled from 2026-01-05 14:00: Not specified")
}

func TestRescheduleConflictsWithOtherBooking(t *testing.T) {
	store := memory.NewStore()
	uc := newTestUseCase(store)

	seedAppointment(t, store, "apt-1", "Therapy Session", "2026-01-05", "10:00", domain.StatusScheduled)
	seedAppointment(t, store, "apt-2", "Therapy Session", "2026-01-05", "14:00", domain.StatusScheduled)

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: "apt-1",
		NewDate:       "2026-01-05",
		NewTime:       "14:30",
	})
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestRescheduleRejections(t *testing.T) {
	store := memory.NewStore()
	uc := newTestUseCase(store)
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{AppointmentID: "apt-missing", NewDate: "2026-01-05", NewTime: "10:00"})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	cancelled := seedAppointment(t, store, "apt-gone", "Follow-up", "2026-01-05", "10:00", domain.StatusScheduled)
	require.NoError(t, store.Cancel(ctx, cancelled.ID, "Patient request", nil))

	_, err = uc.Execute(ctx, &Request{AppointmentID: "apt-gone", NewDate: "2026-01-05", NewTime: "11:00"})
	assert.ErrorIs(t, err, ErrCancelledAppointment)

	seedAppointment(t, store, "apt-1", "Follow-up", "2026-01-05", "10:00", domain.StatusScheduled)

	_, err = uc.Execute(ctx, &Request{AppointmentID: "apt-1", NewDate: "2026-01-05", NewTime: "8:00 PM"})
	assert.ErrorIs(t, err, ErrOutsideBusinessHours)

	_, err = uc.Execute(ctx, &Request{AppointmentID: "apt-1", NewDate: "2026-02-30", NewTime: "10:00"})
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = uc.Execute(ctx, &Request{AppointmentID: "apt-1"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRescheduleFreesOldSlot(t *testing.T) {
	store := memory.NewStore()
	uc := newTestUseCase(store)
	ctx := context.Background()

	appt := seedAppointment(t, store, "apt-1", "General Consultation", "2026-01-05", "14:00", domain.StatusScheduled)

	_, err := uc.Execute(ctx, &Request{
		AppointmentID: appt.ID,
		NewDate:       "2026-01-05",
		NewTime:       "15:00",
	})
	require.NoError(t, err)

	day, err := time.Parse(domain.DateFormat, "2026-01-05")
	require.NoError(t, err)
	existing, err := store.GetByDate(ctx, day, false)
	require.NoError(t, err)

	// The old 14:00 interval is clear for a fresh booking of the same
	// type, and the new 15:00 interval is blocked.
	registry := domain.NewTypeRegistry(nil)
	apptType := registry.Resolve("General Consultation")

	oldSlot, err := domain.NormalizeLocalTime("2026-01-05", "14:00", "America/New_York", apptType.DurationMinutes)
	require.NoError(t, err)
	assert.False(t, domain.HasConflict(
		domain.Interval{Start: oldSlot.Start, End: oldSlot.End},
		apptType.BufferBeforeMinutes, apptType.BufferAfterMinutes, existing, ""))

	newSlot, err := domain.NormalizeLocalTime("2026-01-05", "15:00", "America/New_York", apptType.DurationMinutes)
	require.NoError(t, err)
	assert.True(t, domain.HasConflict(
		domain.Interval{Start: newSlot.Start, End: newSlot.End},
		apptType.BufferBeforeMinutes, apptType.BufferAfterMinutes, existing, ""))
}
