package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/luminahealth/LMH-SchedulingService/pkg/types"
)

var (
	// ErrInvalidTimeFormat is returned when a time-of-day string matches
	// neither the 12-hour nor the 24-hour form.
	ErrInvalidTimeFormat = errors.New("domain: invalid time format")

	// ErrInvalidDate is returned when a date string does not parse to a
	// real calendar date.
	ErrInvalidDate = errors.New("domain: invalid date")

	// ErrInvalidTimezone is returned for unknown IANA timezone names.
	ErrInvalidTimezone = errors.New("domain: invalid timezone")
)

// NormalizedTime is the canonical bookable interval produced from a
// requested (date, time, timezone) triple. End = Start + duration;
// buffers are never part of it.
type NormalizedTime struct {
	Date     string           // YYYY-MM-DD as requested
	Time     types.TimeString // HH:MM, 24-hour
	Start    time.Time        // absolute, in Timezone
	End      time.Time        // absolute, Start + duration
	Timezone string
	Display  string // human confirmation text, rendered in Timezone
}

// NormalizeLocalTime converts a requested appointment moment into its
// canonical absolute interval. The time string accepts 12-hour forms
// with am/pm markers ("2:00 PM", "2pm") and 24-hour "HH:MM"; minutes
// default to 0 when omitted.
func NormalizeLocalTime(date, clock, timezone string, durationMinutes int) (*NormalizedTime, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, timezone)
	}

	day, err := time.ParseInLocation(DateFormat, strings.TrimSpace(date), loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	hour, minute, err := ParseClockTime(clock)
	if err != nil {
		return nil, err
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc)
	end := start.Add(time.Duration(durationMinutes) * time.Minute)

	return &NormalizedTime{
		Date:     day.Format(DateFormat),
		Time:     types.TimeString(fmt.Sprintf("%02d:%02d", hour, minute)),
		Start:    start,
		End:      end,
		Timezone: timezone,
		Display:  start.Format(DisplayFormat),
	}, nil
}

// ParseClockTime parses a wall-clock string into (hour, minute).
// Accepted forms: "14:00", "2:00 PM", "2:00PM", "2pm", "12 am".
// 12-hour edge cases: "12 am" is hour 0, "12 pm" stays hour 12.
func ParseClockTime(clock string) (int, int, error) {
	s := strings.ToLower(strings.TrimSpace(clock))
	if s == "" {
		return 0, 0, fmt.Errorf("%w: empty time", ErrInvalidTimeFormat)
	}

	meridiem := ""
	for _, suffix := range []string{"am", "pm"} {
		if strings.HasSuffix(s, suffix) {
			meridiem = suffix
			s = strings.TrimSpace(strings.TrimSuffix(s, suffix))
			break
		}
	}

	hourPart := s
	minutePart := "0"
	if idx := strings.Index(s, ":"); idx >= 0 {
		hourPart = s[:idx]
		minutePart = s[idx+1:]
	}

	hour, err := strconv.Atoi(strings.TrimSpace(hourPart))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, clock)
	}
	minute, err := strconv.Atoi(strings.TrimSpace(minutePart))
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, clock)
	}

	if meridiem != "" {
		if hour < 1 || hour > 12 {
			return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, clock)
		}
		if meridiem == "am" && hour == 12 {
			hour = 0
		} else if meridiem == "pm" && hour != 12 {
			hour += 12
		}
	} else if hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, clock)
	}

	return hour, minute, nil
}
