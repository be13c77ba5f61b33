package get_available_slots

import (
	getAvailableSlots "github.com/luminahealth/LMH-SchedulingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date                string   `json:"date"`
	AppointmentType     string   `json:"appointmentType"`
	Timezone            string   `json:"timezone"`
	SlotDurationMinutes int      `json:"slotDurationMinutes"`
	BufferBeforeMinutes int      `json:"bufferBeforeMinutes"`
	BufferAfterMinutes  int      `json:"bufferAfterMinutes"`
	GranularityMinutes  int      `json:"granularityMinutes"`
	Available           []string `json:"available"`
	Booked              []string `json:"booked"`
	Total               int      `json:"total"`
}

// FromUseCaseResponse converts the use case response into the HTTP response.
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	out := &AvailableSlotsResponse{
		Date:                resp.Date,
		AppointmentType:     resp.AppointmentType,
		Timezone:            resp.Timezone,
		SlotDurationMinutes: resp.SlotDurationMinutes,
		BufferBeforeMinutes: resp.BufferBeforeMinutes,
		BufferAfterMinutes:  resp.BufferAfterMinutes,
		GranularityMinutes:  resp.GranularityMinutes,
		Available:           make([]string, 0, len(resp.Available)),
		Booked:              make([]string, 0, len(resp.Booked)),
		Total:               resp.Total,
	}
	for _, slot := range resp.Available {
		out.Available = append(out.Available, slot.String())
	}
	for _, slot := range resp.Booked {
		out.Booked = append(out.Booked, slot.String())
	}
	return out
}
