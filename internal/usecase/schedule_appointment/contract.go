package schedule_appointment

import (
	"context"
	"time"

	"github.com/luminahealth/LMH-SchedulingService/internal/domain"
	"github.com/luminahealth/LMH-SchedulingService/internal/integrations/calendar"
	"github.com/luminahealth/LMH-SchedulingService/internal/integrations/notify"
	"github.com/luminahealth/LMH-SchedulingService/internal/integrations/patientdir"
)

// AppointmentRepository is the persistence collaborator.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	GetByDate(ctx context.Context, date time.Time, includeCancelled bool) ([]*domain.Appointment, error)
	SetCalendarEventID(ctx context.Context, id string, eventID string) error
}

// CalendarClient creates external calendar events, best-effort.
type CalendarClient interface {
	CreateEvent(ctx context.Context, event *calendar.Event) (*calendar.EventRef, error)
}

// NotifierClient sends booking confirmations, best-effort.
type NotifierClient interface {
	SendConfirmation(ctx context.Context, confirmation *notify.Confirmation) error
}

// PatientDirectoryClient resolves longitudinal patient records,
// best-effort.
type PatientDirectoryClient interface {
	GetOrCreatePatient(ctx context.Context, name string, phone, email *string) (*patientdir.Patient, error)
}

// DateLocker serializes the check-then-reserve sequence per date.
type DateLocker interface {
	WithDateLock(ctx context.Context, date string, fn func(ctx context.Context) error) error
}

// TransactionManager wraps the conflict check and insert in one
// transaction.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger is the logging surface the use case needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
