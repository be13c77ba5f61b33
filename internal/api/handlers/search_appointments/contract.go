package search_appointments

import (
	"context"

	"github.com/luminahealth/LMH-SchedulingService/internal/service/appointments/models"
)

type AppointmentService interface {
	Search(ctx context.Context, req *models.SearchAppointmentsRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
