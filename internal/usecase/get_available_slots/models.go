package get_available_slots

import (
	"github.com/luminahealth/LMH-SchedulingService/pkg/types"
)

// Request asks for the availability partition of one day.
type Request struct {
	Date            string // YYYY-MM-DD
	AppointmentType string // free text; resolved leniently
	Timezone        string // optional; defaults to the practice timezone
}

// Response is the available/booked partition for the day. For fixed
// inputs and a fixed snapshot of existing bookings the content is
// exactly reproducible.
type Response struct {
	Date                string
	AppointmentType     string // resolved registry name
	Timezone            string
	SlotDurationMinutes int
	BufferBeforeMinutes int
	BufferAfterMinutes  int
	GranularityMinutes  int
	Available           []types.TimeString
	Booked              []types.TimeString
	Total               int
}
