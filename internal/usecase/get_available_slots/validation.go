package get_available_slots

import (
	"fmt"
	"strings"
	"time"

	"github.com/luminahealth/LMH-SchedulingService/internal/domain"
)

// validateRequest checks the request fields and parses the date.
func validateRequest(req *Request) (time.Time, error) {
	if strings.TrimSpace(req.Date) == "" {
		return time.Time{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	day, err := time.Parse(domain.DateFormat, strings.TrimSpace(req.Date))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, req.Date)
	}
	return day, nil
}
