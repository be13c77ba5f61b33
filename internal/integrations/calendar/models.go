package calendar

import "time"

// Event is the payload sent to the external calendar service.
type Event struct {
	Summary     string    `json:"summary"`
	Description string    `json:"description,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Timezone    string    `json:"timezone"`
}

// EventRef identifies a created calendar event.
type EventRef struct {
	ID string `json:"id"`
}
