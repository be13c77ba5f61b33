package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminahealth/LMH-SchedulingService/internal/domain"
	"github.com/luminahealth/LMH-SchedulingService/internal/infra/storage/memory"
	"github.com/luminahealth/LMH-SchedulingService/internal/integrations/notify"
	"github.com/luminahealth/LMH-SchedulingService/internal/service/appointments/models"
	"github.com/luminahealth/LMH-SchedulingService/pkg/ptr"
)

type testLogger struct{}

func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}

// recordingCalendar captures which events were deleted.
type recordingCalendar struct {
	deleted []string
}

func (c *recordingCalendar) DeleteEvent(_ context.Context, eventID string) error {
	c.deleted = append(c.deleted, eventID)
	return nil
}

// recordingNotifier captures sent confirmations.
type recordingNotifier struct {
	sent []*notify.Confirmation
}

func (n *recordingNotifier) SendConfirmation(_ context.Context, confirmation *notify.Confirmation) error {
	n.sent = append(n.sent, confirmation)
	return nil
}

func seedAppointment(t *testing.T, store *memory.Store, id, phone, email string, status domain.AppointmentStatus) *domain.Appointment {
	t.Helper()

	nt, err := domain.NormalizeLocalTime("2026-01-05", "14:00", "America/New_York", 30)
	require.NoError(t, err)
	day, err := time.Parse(domain.DateFormat, nt.Date)
	require.NoError(t, err)

	appt := &domain.Appointment{
		ID:                  id,
		PatientName:         "Sam Blake",
		PatientPhone:        ptr.Ptr(phone),
		PatientEmail:        ptr.Ptr(email),
		AppointmentType:     "General Consultation",
		Date:                day,
		Time:                nt.Time,
		StartTime:           nt.Start,
		EndTime:             nt.End,
		Timezone:            nt.Timezone,
		DurationMinutes:     30,
		BufferBeforeMinutes: 10,
		BufferAfterMinutes:  10,
		Status:              status,
		CalendarEventID:     ptr.Ptr("evt-" + id),
	}
	_, err = store.Create(context.Background(), appt)
	require.NoError(t, err)
	return appt
}

func TestConfirmTransitions(t *testing.T) {
	store := memory.NewStore()
	notifier := &recordingNotifier{}
	svc := NewService(store, &recordingCalendar{}, notifier, testLogger{})
	ctx := context.Background()

	seedAppointment(t, store, "apt-1", "555-0101", "sam@example.com", domain.StatusScheduled)

	resp, err := svc.Confirm(ctx, "apt-1")
	require.NoError(t, err)
	assert.False(t, resp.AlreadyConfirmed)
	assert.Equal(t, "confirmed", resp.Appointment.Status)

	// The patient is notified once the status change is persisted.
	require.Len(t, notifier.sent, 1)
	require.NotNil(t, notifier.sent[0].Phone)
	assert.Equal(t, "555-0101", *notifier.sent[0].Phone)
	assert.Equal(t, "Appointment confirmed", notifier.sent[0].Subject)

	// Confirming again is a no-op success and does not re-notify.
	resp, err = svc.Confirm(ctx, "apt-1")
	require.NoError(t, err)
	assert.True(t, resp.AlreadyConfirmed)
	assert.Equal(t, "confirmed", resp.Appointment.Status)
	assert.Len(t, notifier.sent, 1)
}

type failingNotifier struct{}

func (failingNotifier) SendConfirmation(context.Context, *notify.Confirmation) error {
	return errors.New("notify down")
}

func TestConfirmSurvivesNotifierFailure(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store, &recordingCalendar{}, failingNotifier{}, testLogger{})

	seedAppointment(t, store, "apt-1", "555-0101", "sam@example.com", domain.StatusScheduled)

	resp, err := svc.Confirm(context.Background(), "apt-1")
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Appointment.Status)
}

func TestConfirmCancelledFails(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store, &recordingCalendar{}, &recordingNotifier{}, testLogger{})
	ctx := context.Background()

	seedAppointment(t, store, "apt-1", "555-0101", "sam@example.com", domain.StatusScheduled)
	_, err := svc.Cancel(ctx, &models.CancelAppointmentRequest{AppointmentID: "apt-1"})
	require.NoError(t, err)

	_, err = svc.Confirm(ctx, "apt-1")
	assert.ErrorIs(t, err, ErrCancelledAppointment)
}

func TestConfirmNotFound(t *testing.T) {
	svc := NewService(memory.NewStore(), &recordingCalendar{}, &recordingNotifier{}, testLogger{})

	_, err := svc.Confirm(context.Background(), "apt-missing")
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestCancelRecordsReasonAndNote(t *testing.T) {
	store := memory.NewStore()
	cal := &recordingCalendar{}
	svc := NewService(store, cal, &recordingNotifier{}, testLogger{})
	ctx := context.Background()

	seedAppointment(t, store, "apt-1", "555-0101", "sam@example.com", domain.StatusConfirmed)

	resp, err := svc.Cancel(ctx, &models.CancelAppointmentRequest{
		AppointmentID: "apt-1",
		Reason:        "Feeling better",
	})
	require.NoError(t, err)

	assert.False(t, resp.AlreadyCancelled)
	assert.Equal(t, "cancelled", resp.Appointment.Status)
	require.NotNil(t, resp.Appointment.CancellationReason)
	assert.Equal(t, "Feeling better", *resp.Appointment.CancellationReason)
	require.NotNil(t, resp.Appointment.Notes)
	assert.Contains(t, *resp.Appointment.Notes, "Cancelled: Feeling better")
	assert.NotNil(t, resp.Appointment.CancelledAt)
	assert.Equal(t, []string{"evt-apt-1"}, cal.deleted)
}

func TestCancelDefaultsReasonAndIsIdempotent(t *testing.T) {
	store := memory.NewStore()
	cal := &recordingCalendar{}
	svc := NewService(store, cal, &recordingNotifier{}, testLogger{})
	ctx := context.Background()

	seedAppointment(t, store, "apt-1", "555-0101", "sam@example.com", domain.StatusScheduled)

	resp, err := svc.Cancel(ctx, &models.CancelAppointmentRequest{AppointmentID: "apt-1"})
	require.NoError(t, err)
	require.NotNil(t, resp.Appointment.CancellationReason)
	assert.Equal(t, "Not specified", *resp.Appointment.CancellationReason)

	// A second cancel succeeds without touching the calendar again.
	resp, err = svc.Cancel(ctx, &models.CancelAppointmentRequest{AppointmentID: "apt-1"})
	require.NoError(t, err)
	assert.True(t, resp.AlreadyCancelled)
	assert.Len(t, cal.deleted, 1)
}

func TestGetByID(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store, &recordingCalendar{}, &recordingNotifier{}, testLogger{})

	seedAppointment(t, store, "apt-1", "555-0101", "sam@example.com", domain.StatusScheduled)

	appt, err := svc.GetByID(context.Background(), "apt-1")
	require.NoError(t, err)
	assert.Equal(t, "apt-1", appt.ID)
	assert.Equal(t, "2026-01-05", appt.Date)
	assert.Equal(t, "14:00", appt.Time)

	_, err = svc.GetByID(context.Background(), "apt-missing")
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestSearchMatchesPhoneAndEmail(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store, &recordingCalendar{}, &recordingNotifier{}, testLogger{})
	ctx := context.Background()

	seedAppointment(t, store, "apt-1", "555-0101", "sam@example.com", domain.StatusScheduled)
	seedAppointment(t, store, "apt-2", "555-0202", "riley@clinic.org", domain.StatusCancelled)

	byPhone, err := svc.Search(ctx, &models.SearchAppointmentsRequest{Term: "0101"})
	require.NoError(t, err)
	require.Equal(t, 1, byPhone.Total)
	assert.Equal(t, "apt-1", byPhone.Appointments[0].ID)

	// Case-insensitive, and cancelled appointments stay visible.
	byEmail, err := svc.Search(ctx, &models.SearchAppointmentsRequest{Term: "RILEY@CLINIC"})
	require.NoError(t, err)
	require.Equal(t, 1, byEmail.Total)
	assert.Equal(t, "apt-2", byEmail.Appointments[0].ID)

	// No results is an empty list, not an error.
	none, err := svc.Search(ctx, &models.SearchAppointmentsRequest{Term: "nobody"})
	require.NoError(t, err)
	assert.Equal(t, 0, none.Total)

	_, err = svc.Search(ctx, &models.SearchAppointmentsRequest{Term: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
