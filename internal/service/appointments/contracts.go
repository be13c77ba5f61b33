package appointments

import (
	"context"

	"github.com/luminahealth/LMH-SchedulingService/internal/domain"
	"github.com/luminahealth/LMH-SchedulingService/internal/integrations/notify"
)

// AppointmentRepository is the persistence surface the service needs.
type AppointmentRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) error
	Cancel(ctx context.Context, id string, reason string, notes *string) error
	Search(ctx context.Context, term string) ([]*domain.Appointment, error)
}

// CalendarClient removes calendar events for cancelled appointments.
type CalendarClient interface {
	DeleteEvent(ctx context.Context, eventID string) error
}

// NotifierClient sends confirmation messages, best-effort.
type NotifierClient interface {
	SendConfirmation(ctx context.Context, confirmation *notify.Confirmation) error
}

// Logger is the logging surface the service needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
