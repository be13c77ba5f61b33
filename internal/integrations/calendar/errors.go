package calendar

import "errors"

var (
	// ErrEventNotFound is returned when the event does not exist upstream.
	ErrEventNotFound = errors.New("calendar: event not found")

	// ErrInvalidResponse is returned for unexpected upstream responses.
	ErrInvalidResponse = errors.New("calendar: invalid response")

	// ErrInternal is returned for transport-level failures.
	ErrInternal = errors.New("calendar: internal error")
)
