package schedule_appointment

import "errors"

var (
	// ErrValidation is returned for missing required fields. The wrapped
	// message lists every violation, not just the first.
	ErrValidation = errors.New("schedule_appointment: validation failed")

	// ErrInvalidTimeFormat is returned when the requested time matches
	// neither the 12-hour nor the 24-hour form.
	ErrInvalidTimeFormat = errors.New("schedule_appointment: invalid time format")

	// ErrInvalidDate is returned when the requested date is not a real
	// calendar date.
	ErrInvalidDate = errors.New("schedule_appointment: invalid date")

	// ErrInvalidTimezone is returned for unknown timezone names.
	ErrInvalidTimezone = errors.New("schedule_appointment: invalid timezone")

	// ErrSlotUnavailable is returned when the requested interval
	// conflicts with an existing booking's blocked window.
	ErrSlotUnavailable = errors.New("schedule_appointment: slot is not available")

	// ErrOutsideBusinessHours is returned when the requested interval
	// does not fit inside business hours.
	ErrOutsideBusinessHours = errors.New("schedule_appointment: requested time is outside business hours")

	// ErrInternal is returned for unexpected failures.
	ErrInternal = errors.New("schedule_appointment: internal error")
)
