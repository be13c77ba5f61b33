package get_available_slots

import "errors"

var (
	// ErrInvalidInput is returned for missing or malformed request fields.
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInvalidDate is returned when the date does not parse to a real
	// calendar date.
	ErrInvalidDate = errors.New("get_available_slots: invalid date")

	// ErrInvalidTimezone is returned for unknown timezone names.
	ErrInvalidTimezone = errors.New("get_available_slots: invalid timezone")

	// ErrInternal is returned for unexpected failures.
	ErrInternal = errors.New("get_available_slots: internal error")
)
