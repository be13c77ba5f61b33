package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/luminahealth/LMH-SchedulingService/internal/domain"
	appointmentstorage "github.com/luminahealth/LMH-SchedulingService/internal/infra/storage/appointment"
)

var (
	// ErrAppointmentNotFound matches the SQL repository's sentinel, so
	// callers map missing appointments the same way for either store.
	ErrAppointmentNotFound = appointmentstorage.ErrAppointmentNotFound

	// ErrDuplicateID is returned on id collisions.
	ErrDuplicateID = errors.New("memory.store: duplicate appointment id")
)

// Store is an in-memory appointment store guarded by a single mutex.
// Without database transactions, the mutex is the critical section that
// serializes the check-then-write sequence, so a concurrent schedule
// cannot pass the conflict check against a stale read.
type Store struct {
	mu    sync.Mutex
	items map[string]*domain.Appointment
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{items: make(map[string]*domain.Appointment)}
}

// Create inserts a new appointment.
func (s *Store) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[appt.ID]; exists {
		return nil, ErrDuplicateID
	}

	now := time.Now()
	stored := cloneAppointment(appt)
	stored.CreatedAt = now
	stored.UpdatedAt = now
	s.items[appt.ID] = stored

	return cloneAppointment(stored), nil
}

// GetByID fetches one appointment.
func (s *Store) GetByID(_ context.Context, id string) (*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	appt, ok := s.items[id]
	if !ok {
		return nil, ErrAppointmentNotFound
	}
	return cloneAppointment(appt), nil
}

// GetByDate returns the appointments on a calendar date ordered by
// start time, excluding cancelled rows unless includeCancelled.
func (s *Store) GetByDate(_ context.Context, date time.Time, includeCancelled bool) ([]*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	day := date.Format(domain.DateFormat)
	result := make([]*domain.Appointment, 0)
	for _, appt := range s.items {
		if appt.Date.Format(domain.DateFormat) != day {
			continue
		}
		if !includeCancelled && appt.IsCancelled() {
			continue
		}
		result = append(result, cloneAppointment(appt))
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].StartTime.Equal(result[j].StartTime) {
			return result[i].ID < result[j].ID
		}
		return result[i].StartTime.Before(result[j].StartTime)
	})
	return result, nil
}

// UpdateSchedule replaces the scheduling fields of an appointment.
func (s *Store) UpdateSchedule(_ context.Context, id string, upd domain.ScheduleUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	appt, ok := s.items[id]
	if !ok {
		return ErrAppointmentNotFound
	}

	appt.Date = upd.Date
	appt.Time = upd.Time
	appt.StartTime = upd.StartTime
	appt.EndTime = upd.EndTime
	appt.Timezone = upd.Timezone
	appt.DurationMinutes = upd.DurationMinutes
	appt.BufferBeforeMinutes = upd.BufferBeforeMinutes
	appt.BufferAfterMinutes = upd.BufferAfterMinutes
	appt.Notes = upd.Notes
	appt.UpdatedAt = time.Now()
	return nil
}

// UpdateStatus sets the lifecycle status.
func (s *Store) UpdateStatus(_ context.Context, id string, status domain.AppointmentStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	appt, ok := s.items[id]
	if !ok {
		return ErrAppointmentNotFound
	}
	appt.Status = status
	appt.UpdatedAt = time.Now()
	return nil
}

// Cancel soft-retires an appointment with a reason and audit note.
func (s *Store) Cancel(_ context.Context, id string, reason string, notes *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	appt, ok := s.items[id]
	if !ok {
		return ErrAppointmentNotFound
	}

	now := time.Now()
	appt.Status = domain.StatusCancelled
	appt.CancellationReason = &reason
	appt.CancelledAt = &now
	appt.Notes = notes
	appt.UpdatedAt = now
	return nil
}

// SetCalendarEventID stamps the external calendar reference.
func (s *Store) SetCalendarEventID(_ context.Context, id string, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	appt, ok := s.items[id]
	if !ok {
		return ErrAppointmentNotFound
	}
	appt.CalendarEventID = &eventID
	appt.UpdatedAt = time.Now()
	return nil
}

// Search matches term against patient phone and email substrings,
// case-insensitively, newest first. No matches yields an empty slice.
func (s *Store) Search(_ context.Context, term string) ([]*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	needle := strings.ToLower(term)
	result := make([]*domain.Appointment, 0)
	for _, appt := range s.items {
		if containsFold(appt.PatientPhone, needle) || containsFold(appt.PatientEmail, needle) {
			result = append(result, cloneAppointment(appt))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].StartTime.Equal(result[j].StartTime) {
			return result[i].ID < result[j].ID
		}
		return result[i].StartTime.After(result[j].StartTime)
	})
	return result, nil
}

func containsFold(value *string, needle string) bool {
	if value == nil || needle == "" {
		return false
	}
	return strings.Contains(strings.ToLower(*value), needle)
}

func cloneAppointment(appt *domain.Appointment) *domain.Appointment {
	clone := *appt
	clone.PatientPhone = clonePtr(appt.PatientPhone)
	clone.PatientEmail = clonePtr(appt.PatientEmail)
	clone.PatientRecordID = clonePtr(appt.PatientRecordID)
	clone.Provider = clonePtr(appt.Provider)
	clone.Notes = clonePtr(appt.Notes)
	clone.CancellationReason = clonePtr(appt.CancellationReason)
	clone.CalendarEventID = clonePtr(appt.CalendarEventID)
	if appt.CancelledAt != nil {
		cancelled := *appt.CancelledAt
		clone.CancelledAt = &cancelled
	}
	return &clone
}

func clonePtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
