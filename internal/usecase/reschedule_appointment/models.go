package reschedule_appointment

import (
	"time"

	"github.com/luminahealth/LMH-SchedulingService/internal/domain"
	"github.com/luminahealth/LMH-SchedulingService/pkg/types"
)

// Request moves an existing appointment to a new date and time.
type Request struct {
	AppointmentID string
	NewDate       string // YYYY-MM-DD
	NewTime       string // "2:00 PM", "2pm" or "14:00"
	Timezone      string // optional; defaults to the appointment's own timezone
	Reason        string // optional; recorded in the audit note
}

// Response summarizes the appointment after the move.
type Response struct {
	ID                  string
	PatientName         string
	AppointmentType     string
	Provider            *string
	PreviousDate        string
	PreviousTime        types.TimeString
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
	Notes               *string
}

func fromDomain(appt *domain.Appointment, prevDate string, prevTime types.TimeString) *Response {
	return &Response{
		ID:                  appt.ID,
		PatientName:         appt.PatientName,
		AppointmentType:     appt.AppointmentType,
		Provider:            appt.Provider,
		PreviousDate:        prevDate,
		PreviousTime:        prevTime,
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
		Notes:               appt.Notes,
	}
}
