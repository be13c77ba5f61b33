package models

import (
	"time"

	"github.com/luminahealth/LMH-SchedulingService/internal/domain"
)

// Request models

// CancelAppointmentRequest asks for a cancellation with an optional reason.
type CancelAppointmentRequest struct {
	AppointmentID string `json:"appointmentId"`
	Reason        string `json:"reason,omitempty"`
}

// SearchAppointmentsRequest matches patients by phone or email.
type SearchAppointmentsRequest struct {
	Term string `json:"term"`
}

// Response models

// AppointmentResponse is the appointment DTO.
type AppointmentResponse struct {
	ID                  string  `json:"id"`
	PatientName         string  `json:"patientName"`
	PatientPhone        *string `json:"patientPhone,omitempty"`
	PatientEmail        *string `json:"patientEmail,omitempty"`
	PatientRecordID     *string `json:"patientRecordId,omitempty"`
	AppointmentType     string  `json:"appointmentType"`
	Provider            *string `json:"provider,omitempty"`
	Date                string  `json:"date"`      // "2026-01-05"
	Time                string  `json:"time"`      // "14:00"
	Timezone            string  `json:"timezone"`
	DurationMinutes     int     `json:"durationMinutes"`
	BufferBeforeMinutes int     `json:"bufferBeforeMinutes"`
	BufferAfterMinutes  int     `json:"bufferAfterMinutes"`
	Status              string  `json:"status"`
	Display             string  `json:"display"`
	Notes               *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse is a list of appointment DTOs.
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// ConfirmResponse reports a confirmation. AlreadyConfirmed is set when
// the appointment was confirmed before this call; the call still succeeds.
type ConfirmResponse struct {
	Appointment      *AppointmentResponse `json:"appointment"`
	AlreadyConfirmed bool                 `json:"alreadyConfirmed"`
}

// CancelResponse reports a cancellation. AlreadyCancelled is set when
// the appointment was cancelled before this call; the call still succeeds.
type CancelResponse struct {
	Appointment      *AppointmentResponse `json:"appointment"`
	AlreadyCancelled bool                 `json:"alreadyCancelled"`
}

// Conversion helpers

// FromDomainAppointment converts the domain model into the DTO.
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:                  a.ID,
		PatientName:         a.PatientName,
		PatientPhone:        a.PatientPhone,
		PatientEmail:        a.PatientEmail,
		PatientRecordID:     a.PatientRecordID,
		AppointmentType:     a.AppointmentType,
		Provider:            a.Provider,
		Date:                a.Date.Format(domain.DateFormat),
		Time:                a.Time.String(),
		Timezone:            a.Timezone,
		DurationMinutes:     a.DurationMinutes,
		BufferBeforeMinutes: a.BufferBeforeMinutes,
		BufferAfterMinutes:  a.BufferAfterMinutes,
		Status:              string(a.Status),
		Display:             a.DisplayString(),
		Notes:               a.Notes,
		CancellationReason:  a.CancellationReason,
		CreatedAt:           a.CreatedAt,
		UpdatedAt:           a.UpdatedAt,
	}

	if a.CancelledAt != nil {
		cancelled := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelled
	}

	return resp
}

// FromDomainAppointments converts a slice of domain models.
func FromDomainAppointments(appts []*domain.Appointment) *AppointmentListResponse {
	out := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appts)),
		Total:        len(appts),
	}
	for _, a := range appts {
		out.Appointments = append(out.Appointments, *FromDomainAppointment(a))
	}
	return out
}
