package get_available_slots

import (
	"github.com/luminahealth/LMH-SchedulingService/internal/domain"
	"github.com/luminahealth/LMH-SchedulingService/pkg/types"
)

// generateTimeSlots enumerates candidate start times across business
// hours at the given granularity. A candidate is admitted only when its
// whole occupied span (duration plus both buffers) fits before closing:
// with 9-17 hours and a 50-minute session buffered 10/10, 15:45 is the
// last admissible start on a 15-minute grid and 16:00 never appears.
// Same inputs always yield the same ordered list.
func generateTimeSlots(
	hours domain.BusinessHours,
	durationMinutes int,
	bufferBeforeMinutes int,
	bufferAfterMinutes int,
	granularityMinutes int,
) []types.TimeString {
	occupied := durationMinutes + bufferBeforeMinutes + bufferAfterMinutes

	slots := make([]types.TimeString, 0)
	for start := hours.OpenMinutes(); start+occupied <= hours.CloseMinutes(); start += granularityMinutes {
		slot, err := types.NewTimeStringFromMinutes(start)
		if err != nil {
			break
		}
		slots = append(slots, slot)
	}
	return slots
}

// partitionSlots splits candidates into available and booked against the
// existing bookings for the day. Each candidate is normalized into a
// concrete interval and tested with the candidate type's buffers; every
// existing booking blocks with its own snapshotted buffers.
func partitionSlots(
	date string,
	timezone string,
	candidates []types.TimeString,
	apptType domain.AppointmentType,
	existing []*domain.Appointment,
) (available, booked []types.TimeString, err error) {
	available = make([]types.TimeString, 0, len(candidates))
	booked = make([]types.TimeString, 0)

	for _, candidate := range candidates {
		nt, err := domain.NormalizeLocalTime(date, candidate.String(), timezone, apptType.DurationMinutes)
		if err != nil {
			return nil, nil, err
		}

		interval := domain.Interval{Start: nt.Start, End: nt.End}
		if domain.HasConflict(interval, apptType.BufferBeforeMinutes, apptType.BufferAfterMinutes, existing, "") {
			booked = append(booked, candidate)
		} else {
			available = append(available, candidate)
		}
	}
	return available, booked, nil
}
