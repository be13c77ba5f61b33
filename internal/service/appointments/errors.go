package appointments

import "errors"

var (
	// ErrAppointmentNotFound is returned when the appointment does not exist.
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrCancelledAppointment is returned when a cancelled appointment is
	// asked to transition forward. Cancelled is terminal.
	ErrCancelledAppointment = errors.New("appointment is cancelled")

	// ErrInvalidInput is returned on malformed requests.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on unexpected failures.
	ErrInternal = errors.New("service: internal error")
)
