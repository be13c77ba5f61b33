package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/luminahealth/LMH-SchedulingService/internal/domain"
	appointmentstorage "github.com/luminahealth/LMH-SchedulingService/internal/infra/storage/appointment"
	"github.com/luminahealth/LMH-SchedulingService/internal/integrations/calendar"
)

// UseCase moves an existing appointment to a new time. A reschedule is
// treated as a fresh booking of the same type: the new slot goes through
// the same business-hours and conflict checks as a new appointment, with
// the appointment being moved excluded from the conflict scan so that
// booking into its own current window (or an overlapping one) succeeds.
type UseCase struct {
	repo           AppointmentRepository
	registry       *domain.TypeRegistry
	hours          domain.BusinessHours
	calendarClient CalendarClient
	locker         DateLocker
	txManager      TransactionManager
	logger         Logger
}

// NewUseCase creates the reschedule use case.
func NewUseCase(
	repo AppointmentRepository,
	registry *domain.TypeRegistry,
	hours domain.BusinessHours,
	calendarClient CalendarClient,
	locker DateLocker,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		repo:           repo,
		registry:       registry,
		hours:          hours,
		calendarClient: calendarClient,
		locker:         locker,
		txManager:      txManager,
		logger:         logger,
	}
}

// Execute loads the appointment, checks the new slot and persists the move.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("Reschedule: appointment=%s, date=%s, time=%q",
		req.AppointmentID, req.NewDate, req.NewTime)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("Reschedule: validation failed: %v", err)
		return nil, err
	}

	appt, err := uc.repo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, appointmentstorage.ErrAppointmentNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrAppointmentNotFound, req.AppointmentID)
		}
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	if !appt.CanBeRescheduled() {
		uc.logger.Warn("Reschedule: appointment %s is cancelled", appt.ID)
		return nil, fmt.Errorf("%w: %s", ErrCancelledAppointment, appt.ID)
	}

	// The type's current registry definition drives the new interval, so
	// a registry change since the original booking takes effect here.
	apptType := uc.registry.Resolve(appt.AppointmentType)

	timezone := req.Timezone
	if timezone == "" {
		timezone = appt.Timezone
	}

	nt, err := domain.NormalizeLocalTime(req.NewDate, req.NewTime, timezone, apptType.DurationMinutes)
	if err != nil {
		uc.logger.Warn("Reschedule: time normalization failed: %v", err)
		return nil, mapNormalizationError(err)
	}

	day, err := time.Parse(domain.DateFormat, nt.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: re-parse normalized date: %v", ErrInternal, err)
	}

	prevDate := appt.Date.Format(domain.DateFormat)
	prevTime := appt.Time

	reason := req.Reason
	if reason == "" {
		reason = "Not specified"
	}
	notes := domain.AppendNote(appt.Notes,
		fmt.Sprintf("Rescheduled from %s %s: %s", prevDate, prevTime, reason))

	upd := domain.ScheduleUpdate{
		Date:                day,
		Time:                nt.Time,
		StartTime:           nt.Start,
		EndTime:             nt.End,
		Timezone:            nt.Timezone,
		DurationMinutes:     apptType.DurationMinutes,
		BufferBeforeMinutes: apptType.BufferBeforeMinutes,
		BufferAfterMinutes:  apptType.BufferAfterMinutes,
		Notes:               notes,
	}

	err = uc.locker.WithDateLock(ctx, nt.Date, func(lockCtx context.Context) error {
		return uc.txManager.DoSerializable(lockCtx, func(txCtx context.Context) error {
			if !withinBusinessHours(nt, apptType.BufferAfterMinutes, uc.hours) {
				uc.logger.Warn("Reschedule: %s %s outside business hours %d:00-%d:00",
					nt.Date, nt.Time, uc.hours.OpenHour, uc.hours.CloseHour)
				return fmt.Errorf("%w: %s on %s does not fit business hours %d:00-%d:00",
					ErrOutsideBusinessHours, nt.Time, nt.Date, uc.hours.OpenHour, uc.hours.CloseHour)
			}

			existing, err := uc.repo.GetByDate(txCtx, day, false)
			if err != nil {
				return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
			}

			candidate := domain.Interval{Start: nt.Start, End: nt.End}
			if blocking := domain.FindConflict(candidate, apptType.BufferBeforeMinutes, apptType.BufferAfterMinutes, existing, appt.ID); blocking != nil {
				uc.logger.Warn("Reschedule: %s %s conflicts with appointment %s", nt.Date, nt.Time, blocking.ID)
				return fmt.Errorf("%w: %s on %s conflicts with an existing booking",
					ErrSlotUnavailable, nt.Time, nt.Date)
			}

			if err := uc.repo.UpdateSchedule(txCtx, appt.ID, upd); err != nil {
				if errors.Is(err, appointmentstorage.ErrAppointmentNotFound) {
					return fmt.Errorf("%w: %s", ErrAppointmentNotFound, appt.ID)
				}
				return fmt.Errorf("%w: failed to update appointment: %v", ErrInternal, err)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	appt.Date = day
	appt.Time = nt.Time
	appt.StartTime = nt.Start
	appt.EndTime = nt.End
	appt.Timezone = nt.Timezone
	appt.DurationMinutes = apptType.DurationMinutes
	appt.BufferBeforeMinutes = apptType.BufferBeforeMinutes
	appt.BufferAfterMinutes = apptType.BufferAfterMinutes
	appt.Notes = notes

	uc.logger.Info("Reschedule: moved appointment %s from %s %s to %s %s",
		appt.ID, prevDate, prevTime, nt.Date, nt.Time)

	uc.moveCalendarEvent(ctx, appt)

	return fromDomain(appt, prevDate, prevTime), nil
}

// moveCalendarEvent updates the external calendar after the move is
// durable. Failure is logged and never surfaced.
func (uc *UseCase) moveCalendarEvent(ctx context.Context, appt *domain.Appointment) {
	if appt.CalendarEventID == nil || *appt.CalendarEventID == "" {
		return
	}

	event := &calendar.Event{
		Summary:     fmt.Sprintf("%s - %s", appt.AppointmentType, appt.PatientName),
		Description: fmt.Sprintf("Telehealth session (%d min)", appt.DurationMinutes),
		Start:       appt.StartTime,
		End:         appt.EndTime,
		Timezone:    appt.Timezone,
	}

	if err := uc.calendarClient.UpdateEvent(ctx, *appt.CalendarEventID, event); err != nil {
		uc.logger.Warn("Reschedule: calendar event update failed for %s: %v", appt.ID, err)
	}
}

func mapNormalizationError(err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidTimeFormat):
		return fmt.Errorf("%w: %v", ErrInvalidTimeFormat, err)
	case errors.Is(err, domain.ErrInvalidDate):
		return fmt.Errorf("%w: %v", ErrInvalidDate, err)
	case errors.Is(err, domain.ErrInvalidTimezone):
		return fmt.Errorf("%w: %v", ErrInvalidTimezone, err)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
