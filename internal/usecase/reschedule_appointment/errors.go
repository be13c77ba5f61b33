package reschedule_appointment

import "errors"

var (
	ErrValidation           = errors.New("validation failed")
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrCancelledAppointment = errors.New("cancelled appointments cannot be rescheduled")
	ErrInvalidTimeFormat    = errors.New("invalid time format")
	ErrInvalidDate          = errors.New("invalid date")
	ErrInvalidTimezone      = errors.New("invalid timezone")
	ErrSlotUnavailable      = errors.New("requested slot is unavailable")
	ErrOutsideBusinessHours = errors.New("requested time is outside business hours")
	ErrInternal             = errors.New("internal error")
)
