package schedule_appointment

import (
	"time"

	scheduleAppointment "github.com/luminahealth/LMH-SchedulingService/internal/usecase/schedule_appointment"
)

// ScheduleAppointmentRequest HTTP request model
type ScheduleAppointmentRequest struct {
	PatientName     string  `json:"patientName"`
	PatientPhone    *string `json:"patientPhone,omitempty"`
	PatientEmail    *string `json:"patientEmail,omitempty"`
	AppointmentType string  `json:"appointmentType"`
	Provider        *string `json:"provider,omitempty"`
	Date            string  `json:"date"` // "2026-01-05"
	Time            string  `json:"time"` // "2:00 PM" or "14:00"
	Timezone        string  `json:"timezone,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID                  string  `json:"id"`
	PatientName         string  `json:"patientName"`
	PatientPhone        *string `json:"patientPhone,omitempty"`
	PatientEmail        *string `json:"patientEmail,omitempty"`
	PatientRecordID     *string `json:"patientRecordId,omitempty"`
	AppointmentType     string  `json:"appointmentType"`
	Provider            *string `json:"provider,omitempty"`
	Date                string  `json:"date"`
	Time                string  `json:"time"`
	Timezone            string  `json:"timezone"`
	DurationMinutes     int     `json:"durationMinutes"`
	BufferBeforeMinutes int     `json:"bufferBeforeMinutes"`
	BufferAfterMinutes  int     `json:"bufferAfterMinutes"`
	Status              string  `json:"status"`
	Display             string  `json:"display"`
	CalendarEventID     *string `json:"calendarEventId,omitempty"`
	CreatedAt           string  `json:"createdAt"`
}

// ToUseCaseRequest converts the HTTP request into the use case model.
func (r *ScheduleAppointmentRequest) ToUseCaseRequest() *scheduleAppointment.Request {
	return &scheduleAppointment.Request{
		PatientName:     r.PatientName,
		PatientPhone:    r.PatientPhone,
		PatientEmail:    r.PatientEmail,
		AppointmentType: r.AppointmentType,
		Provider:        r.Provider,
		Date:            r.Date,
		Time:            r.Time,
		Timezone:        r.Timezone,
	}
}

// FromUseCaseResponse converts the use case response into the HTTP response.
func FromUseCaseResponse(resp *scheduleAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:                  resp.ID,
		PatientName:         resp.PatientName,
		PatientPhone:        resp.PatientPhone,
		PatientEmail:        resp.PatientEmail,
		PatientRecordID:     resp.PatientRecordID,
		AppointmentType:     resp.AppointmentType,
		Provider:            resp.Provider,
		Date:                resp.Date,
		Time:                resp.Time.String(),
		Timezone:            resp.Timezone,
		DurationMinutes:     resp.DurationMinutes,
		BufferBeforeMinutes: resp.BufferBeforeMinutes,
		BufferAfterMinutes:  resp.BufferAfterMinutes,
		Status:              resp.Status,
		Display:             resp.Display,
		CalendarEventID:     resp.CalendarEventID,
		CreatedAt:           resp.CreatedAt.Format(time.RFC3339),
	}
}
