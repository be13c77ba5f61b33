package domain

import (
	"time"

	"github.com/luminahealth/LMH-SchedulingService/pkg/types"
)

// AppointmentStatus represents the lifecycle state of an appointment.
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// ActiveStatuses participate in conflict detection.
var ActiveStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusConfirmed,
}

// Appointment is a booked telehealth session. Duration and buffers are
// snapshotted from the type registry at schedule/reschedule time, so
// later registry edits never change existing bookings.
type Appointment struct {
	ID string

	// Patient
	PatientName     string
	PatientPhone    *string
	PatientEmail    *string
	PatientRecordID *string // longitudinal-record ref, owned by the patient directory

	// Classification
	AppointmentType string
	Provider        *string

	// Scheduling. Date carries the calendar day at UTC midnight;
	// StartTime/EndTime are the absolute interval in Timezone. Buffers
	// are not part of [StartTime, EndTime); they only widen the blocked
	// window during conflict checks.
	Date                time.Time
	Time                types.TimeString
	StartTime           time.Time
	EndTime             time.Time
	Timezone            string
	DurationMinutes     int
	BufferBeforeMinutes int
	BufferAfterMinutes  int

	Status AppointmentStatus

	// Audit
	Notes              *string
	CancellationReason *string
	CancelledAt        *time.Time

	// External linkage, passed through unmodified
	CalendarEventID *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the appointment blocks other bookings.
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// IsCancelled reports whether the appointment is terminally cancelled.
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// CanBeRescheduled reports whether a reschedule is a legal transition.
func (a *Appointment) CanBeRescheduled() bool {
	return a.Status == StatusScheduled || a.Status == StatusConfirmed
}

// CanBeCancelled reports whether a cancel would change state.
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusScheduled || a.Status == StatusConfirmed
}

// Interval returns the core [start, end) interval without buffers.
func (a *Appointment) Interval() Interval {
	return Interval{Start: a.StartTime, End: a.EndTime}
}

// BlockedWindow returns the interval expanded by this appointment's own
// buffers. Buffer width is a property of each booking, not a global.
func (a *Appointment) BlockedWindow() Interval {
	return a.Interval().Expand(a.BufferBeforeMinutes, a.BufferAfterMinutes)
}

// ContactSummary returns phone or email for notification addressing,
// preferring phone.
func (a *Appointment) ContactSummary() string {
	if a.PatientPhone != nil && *a.PatientPhone != "" {
		return *a.PatientPhone
	}
	if a.PatientEmail != nil && *a.PatientEmail != "" {
		return *a.PatientEmail
	}
	return ""
}

// DisplayString renders the confirmation-text form of the start time in
// the appointment's own timezone, e.g. "Monday, January 5, 2026 at 2:00 PM".
// Used only for human-facing output, never for comparisons.
func (a *Appointment) DisplayString() string {
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		loc = time.UTC
	}
	return a.StartTime.In(loc).Format(DisplayFormat)
}

// AppendNote adds a line to the append-only audit trail.
func AppendNote(existing *string, line string) *string {
	if line == "" {
		return existing
	}
	if existing == nil || *existing == "" {
		return &line
	}
	combined := *existing + "\n" + line
	return &combined
}

// ScheduleUpdate carries the scheduling fields replaced by a reschedule.
// The whole set is replaced at once; individual fields are never patched.
type ScheduleUpdate struct {
	Date                time.Time
	Time                types.TimeString
	StartTime           time.Time
	EndTime             time.Time
	Timezone            string
	DurationMinutes     int
	BufferBeforeMinutes int
	BufferAfterMinutes  int
	Notes               *string
}
