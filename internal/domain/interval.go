package domain

import "time"

// Interval is a half-open absolute time span [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Expand widens the interval by the given buffer minutes on each side,
// producing the blocked window used for conflict detection.
func (i Interval) Expand(bufferBeforeMinutes, bufferAfterMinutes int) Interval {
	return Interval{
		Start: i.Start.Add(-time.Duration(bufferBeforeMinutes) * time.Minute),
		End:   i.End.Add(time.Duration(bufferAfterMinutes) * time.Minute),
	}
}

// Overlaps applies the standard half-open overlap test. Intervals that
// merely touch at a boundary do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}

// HasConflict reports whether a candidate interval, expanded by the
// candidate's own buffers, overlaps the blocked window of any active
// appointment in existing. Each existing booking is expanded by its own
// buffers, not the candidate's. Appointments whose ID equals excludeID
// are skipped; a reschedule passes its own id so the booking never
// conflicts with its prior slot.
func HasConflict(candidate Interval, bufferBeforeMinutes, bufferAfterMinutes int, existing []*Appointment, excludeID string) bool {
	return FindConflict(candidate, bufferBeforeMinutes, bufferAfterMinutes, existing, excludeID) != nil
}

// FindConflict returns the first active appointment whose blocked window
// overlaps the candidate's, or nil when the slot is free.
func FindConflict(candidate Interval, bufferBeforeMinutes, bufferAfterMinutes int, existing []*Appointment, excludeID string) *Appointment {
	blocked := candidate.Expand(bufferBeforeMinutes, bufferAfterMinutes)

	for _, appt := range existing {
		if excludeID != "" && appt.ID == excludeID {
			continue
		}
		if !appt.IsActive() {
			continue
		}
		if blocked.Overlaps(appt.BlockedWindow()) {
			return appt
		}
	}
	return nil
}
