package reschedule_appointment

import (
	"context"
	"time"

	"github.com/luminahealth/LMH-SchedulingService/internal/domain"
	"github.com/luminahealth/LMH-SchedulingService/internal/integrations/calendar"
)

// AppointmentRepository is the persistence collaborator.
type AppointmentRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	GetByDate(ctx context.Context, date time.Time, includeCancelled bool) ([]*domain.Appointment, error)
	UpdateSchedule(ctx context.Context, id string, upd domain.ScheduleUpdate) error
}

// CalendarClient moves the external calendar event, best-effort.
type CalendarClient interface {
	UpdateEvent(ctx context.Context, eventID string, event *calendar.Event) error
}

// DateLocker serializes the check-then-reserve sequence per date.
type DateLocker interface {
	WithDateLock(ctx context.Context, date string, fn func(ctx context.Context) error) error
}

// TransactionManager wraps the conflict check and update in one
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
