package reschedule_appointment

import (
	"fmt"
	"strings"

	"github.com/luminahealth/LMH-SchedulingService/internal/domain"
)

func validateRequest(req *Request) error {
	var violations []string

	if strings.TrimSpace(req.AppointmentID) == "" {
		violations = append(violations, "appointment id is required")
	}
	if strings.TrimSpace(req.NewDate) == "" {
		violations = append(violations, "new date is required")
	}
	if strings.TrimSpace(req.NewTime) == "" {
		violations = append(violations, "new time is required")
	}

	if len(violations) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(violations, "; "))
	}
	return nil
}

func withinBusinessHours(nt *domain.NormalizedTime, bufferAfterMinutes int, hours domain.BusinessHours) bool {
	if nt.End.Day() != nt.Start.Day() {
		return false
	}

	startMinutes := nt.Start.Hour()*60 + nt.Start.Minute()
	endMinutes := nt.End.Hour()*60 + nt.End.Minute()

	return startMinutes >= hours.OpenMinutes() &&
		endMinutes+bufferAfterMinutes <= hours.CloseMinutes()
}
