package schedule_appointment

import (
	"fmt"
	"strings"

	"github.com/luminahealth/LMH-SchedulingService/internal/domain"
)

// validateRequest collects every violation before failing, so callers
// see the full list rather than fixing fields one at a time.
func validateRequest(req *Request) error {
	var violations []string

	if strings.TrimSpace(req.PatientName) == "" {
		violations = append(violations, "patient name is required")
	}
	if !hasValue(req.PatientPhone) && !hasValue(req.PatientEmail) {
		violations = append(violations, "at least one of phone or email is required")
	}
	if strings.TrimSpace(req.Date) == "" {
		violations = append(violations, "date is required")
	}
	if strings.TrimSpace(req.Time) == "" {
		violations = append(violations, "time is required")
	}

	if len(violations) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(violations, "; "))
	}
	return nil
}

func hasValue(p *string) bool {
	return p != nil && strings.TrimSpace(*p) != ""
}

// withinBusinessHours applies the admissibility rule for a normalized
// candidate: it must start at or after opening, and its end plus the
// after-buffer must not pass closing. Checked independently of pairwise
// conflicts.
func withinBusinessHours(nt *domain.NormalizedTime, bufferAfterMinutes int, hours domain.BusinessHours) bool {
	if nt.End.Day() != nt.Start.Day() {
		return false
	}

	startMinutes := nt.Start.Hour()*60 + nt.Start.Minute()
	endMinutes := nt.End.Hour()*60 + nt.End.Minute()

	return startMinutes >= hours.OpenMinutes() &&
		endMinutes+bufferAfterMinutes <= hours.CloseMinutes()
}
