package domain

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
	TimeFormat = "15:04"      // HH:MM

	// DisplayFormat renders the long confirmation form, e.g.
	// "Monday, January 5, 2026 at 2:00 PM".
	DisplayFormat = "Monday, January 2, 2006 at 3:04 PM"
)

// Business validation constants
const (
	MinDurationMinutes = 5
	MaxDurationMinutes = 480 // 8 hours
	MaxBufferMinutes   = 120
	MaxNotesLength     = 2000
	MaxReasonLength    = 500
)

// BusinessHours bounds the bookable day. Hours are whole clock hours in
// the requested timezone; open and close both fall on :00.
type BusinessHours struct {
	OpenHour  int
	CloseHour int
}

// OpenMinutes returns the opening time as minutes since midnight.
func (h BusinessHours) OpenMinutes() int {
	return h.OpenHour * 60
}

// CloseMinutes returns the closing time as minutes since midnight.
func (h BusinessHours) CloseMinutes() int {
	return h.CloseHour * 60
}
