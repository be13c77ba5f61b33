package schedule_appointment

import (
	"time"

	"github.com/luminahealth/LMH-SchedulingService/internal/domain"
	"github.com/luminahealth/LMH-SchedulingService/pkg/types"
)

// Request is the canonical schedule request. Boundary layers normalize
// loosely-shaped caller input into this one shape before it gets here.
type Request struct {
	PatientName     string
	PatientPhone    *string
	PatientEmail    *string
	AppointmentType string  // free text; resolved leniently
	Provider        *string // informational label only
	Date            string  // YYYY-MM-DD
	Time            string  // "2:00 PM", "2pm" or "14:00"
	Timezone        string  // optional; defaults to the practice timezone
}

// Response summarizes the created appointment.
type Response struct {
	ID                  string
	PatientName         string
	PatientPhone        *string
	PatientEmail        *string
	PatientRecordID     *string
	AppointmentType     string
	Provider            *string
	Date                string
	Time                types.TimeString
	StartTime           time.Time
	EndTime             time.Time
	Timezone            string
	DurationMinutes     int
	BufferBeforeMinutes int
	BufferAfterMinutes  int
	Status              string
	Display             string
	CalendarEventID     *string
	CreatedAt           time.Time
}

func fromDomain(appt *domain.Appointment) *Response {
	return &Response{
		ID:                  appt.ID,
		PatientName:         appt.PatientName,
		PatientPhone:        appt.PatientPhone,
		PatientEmail:        appt.PatientEmail,
		PatientRecordID:     appt.PatientRecordID,
		AppointmentType:     appt.AppointmentType,
		Provider:            appt.Provider,
		Date:                appt.Date.Format(domain.DateFormat),
		Time:                appt.Time,
		StartTime:           appt.StartTime,
		EndTime:             appt.EndTime,
		Timezone:            appt.Timezone,
		DurationMinutes:     appt.DurationMinutes,
		BufferBeforeMinutes: appt.BufferBeforeMinutes,
		BufferAfterMinutes:  appt.BufferAfterMinutes,
		Status:              string(appt.Status),
		Display:             appt.DisplayString(),
		CalendarEventID:     appt.CalendarEventID,
		CreatedAt:           appt.CreatedAt,
	}
}
