package reschedule_appointment

import (
	rescheduleAppointment "github.com/luminahealth/LMH-SchedulingService/internal/usecase/reschedule_appointment"
)

// RescheduleAppointmentRequest HTTP request model
type RescheduleAppointmentRequest struct {
	NewDate  string `json:"newDate"` // "2026-01-06"
	NewTime  string `json:"newTime"` // "3:00 PM" or "15:00"
	Timezone string `json:"timezone,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// RescheduledAppointmentResponse HTTP response model
type RescheduledAppointmentResponse struct {
	ID                  string  `json:"id"`
	PatientName         string  `json:"patientName"`
	AppointmentType     string  `json:"appointmentType"`
	Provider            *string `json:"provider,omitempty"`
	PreviousDate        string  `json:"previousDate"`
	PreviousTime        string  `json:"previousTime"`
	Date                string  `json:"date"`
	Time                string  `json:"time"`
	Timezone            string  `json:"timezone"`
	DurationMinutes     int     `json:"durationMinutes"`
	BufferBeforeMinutes int     `json:"bufferBeforeMinutes"`
	BufferAfterMinutes  int     `json:"bufferAfterMinutes"`
	Status              string  `json:"status"`
	Display             string  `json:"display"`
	Notes               *string `json:"notes,omitempty"`
}

// ToUseCaseRequest converts the HTTP request into the use case model.
func (r *RescheduleAppointmentRequest) ToUseCaseRequest(appointmentID string) *rescheduleAppointment.Request {
	return &rescheduleAppointment.Request{
		AppointmentID: appointmentID,
		NewDate:       r.NewDate,
		NewTime:       r.NewTime,
		Timezone:      r.Timezone,
		Reason:        r.Reason,
	}
}

// FromUseCaseResponse converts the use case response into the HTTP response.
func FromUseCaseResponse(resp *rescheduleAppointment.Response) *RescheduledAppointmentResponse {
	return &RescheduledAppointmentResponse{
		ID:                  resp.ID,
		PatientName:         resp.PatientName,
		AppointmentType:     resp.AppointmentType,
		Provider:            resp.Provider,
		PreviousDate:        resp.PreviousDate,
		PreviousTime:        resp.PreviousTime.String(),
		Date:                resp.Date,
		Time:                resp.Time.String(),
		Timezone:            resp.Timezone,
		DurationMinutes:     resp.DurationMinutes,
		BufferBeforeMinutes: resp.BufferBeforeMinutes,
		BufferAfterMinutes:  resp.BufferAfterMinutes,
		Status:              resp.Status,
		Display:             resp.Display,
		Notes:               resp.Notes,
	}
}
