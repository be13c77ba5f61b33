package get_available_slots

import (
	"context"
	"time"

	"github.com/luminahealth/LMH-SchedulingService/internal/domain"
)

// AppointmentRepository is the booking-lookup collaborator.
type AppointmentRepository interface {
	GetByDate(ctx context.Context, date time.Time, includeCancelled bool) ([]*domain.Appointment, error)
}

// Logger is the logging surface the use case needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
