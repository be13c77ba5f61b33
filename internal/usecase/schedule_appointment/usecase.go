package schedule_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/luminahealth/LMH-SchedulingService/internal/domain"
	"github.com/luminahealth/LMH-SchedulingService/internal/integrations/calendar"
	"github.com/luminahealth/LMH-SchedulingService/internal/integrations/notify"
)

// UseCase schedules a new appointment. The conflict check and insert
// run inside a per-date lock and a serializable transaction, so two
// concurrent requests for overlapping intervals leave exactly one
// winner. Calendar, notification and patient-directory calls are
// best-effort: the persisted appointment is the source of truth and
// their failure never rolls a booking back.
type UseCase struct {
	repo            AppointmentRepository
	registry        *domain.TypeRegistry
	hours           domain.BusinessHours
	defaultTimezone string
	calendarClient  CalendarClient
	notifier        NotifierClient
	patientDir      PatientDirectoryClient
	locker          DateLocker
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase creates the schedule use case.
func NewUseCase(
	repo AppointmentRepository,
	registry *domain.TypeRegistry,
	hours domain.BusinessHours,
	defaultTimezone string,
	calendarClient CalendarClient,
	notifier NotifierClient,
	patientDir PatientDirectoryClient,
	locker DateLocker,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		repo:            repo,
		registry:        registry,
		hours:           hours,
		defaultTimezone: defaultTimezone,
		calendarClient:  calendarClient,
		notifier:        notifier,
		patientDir:      patientDir,
		locker:          locker,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute validates, normalizes, reserves and persists the appointment.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("Schedule: patient=%q, type=%q, date=%s, time=%q",
		req.PatientName, req.AppointmentType, req.Date, req.Time)

	// 1. Validate required fields, collecting all violations.
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("Schedule: validation failed: %v", err)
		return nil, err
	}

	timezone := req.Timezone
	if timezone == "" {
		timezone = uc.defaultTimezone
	}

	// 2. Resolve the appointment type; unknown names fall back to the
	// default type rather than failing.
	if !uc.registry.Known(req.AppointmentType) {
		uc.logger.Warn("Schedule: unknown type %q, using %q", req.AppointmentType, uc.registry.DefaultTypeName())
	}
	apptType := uc.registry.Resolve(req.AppointmentType)

	// 3. Normalize the requested moment into the canonical interval.
	nt, err := domain.NormalizeLocalTime(req.Date, req.Time, timezone, apptType.DurationMinutes)
	if err != nil {
		uc.logger.Warn("Schedule: time normalization failed: %v", err)
		return nil, mapNormalizationError(err)
	}

	// 4. Resolve the longitudinal patient record. A directory failure
	// must not block scheduling.
	var patientRecordID *string
	if patient, err := uc.patientDir.GetOrCreatePatient(ctx, req.PatientName, req.PatientPhone, req.PatientEmail); err != nil {
		uc.logger.Warn("Schedule: patient directory unavailable: %v", err)
	} else if patient.ID != "" {
		patientRecordID = &patient.ID
	}

	day, err := time.Parse(domain.DateFormat, nt.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: re-parse normalized date: %v", ErrInternal, err)
	}

	appt := &domain.Appointment{
		ID:                  "apt-" + uuid.NewString(),
		PatientName:         req.PatientName,
		PatientPhone:        req.PatientPhone,
		PatientEmail:        req.PatientEmail,
		PatientRecordID:     patientRecordID,
		AppointmentType:     apptType.Name,
		Provider:            req.Provider,
		Date:                day,
		Time:                nt.Time,
		StartTime:           nt.Start,
		EndTime:             nt.End,
		Timezone:            nt.Timezone,
		DurationMinutes:     apptType.DurationMinutes,
		BufferBeforeMinutes: apptType.BufferBeforeMinutes,
		BufferAfterMinutes:  apptType.BufferAfterMinutes,
		Status:              domain.StatusScheduled,
	}

	// 5. Reserve the slot. The per-date lock plus serializable
	// transaction keeps check-then-reserve atomic against concurrent
	// requests for the same date.
	var created *domain.Appointment
	err = uc.locker.WithDateLock(ctx, nt.Date, func(lockCtx context.Context) error {
		return uc.txManager.DoSerializable(lockCtx, func(txCtx context.Context) error {
			if !withinBusinessHours(nt, apptType.BufferAfterMinutes, uc.hours) {
				uc.logger.Warn("Schedule: %s %s outside business hours %d:00-%d:00",
					nt.Date, nt.Time, uc.hours.OpenHour, uc.hours.CloseHour)
				return fmt.Errorf("%w: %s on %s does not fit business hours %d:00-%d:00",
					ErrOutsideBusinessHours, nt.Time, nt.Date, uc.hours.OpenHour, uc.hours.CloseHour)
			}

			existing, err := uc.repo.GetByDate(txCtx, day, false)
			if err != nil {
				return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
			}

			candidate := domain.Interval{Start: nt.Start, End: nt.End}
			if blocking := domain.FindConflict(candidate, apptType.BufferBeforeMinutes, apptType.BufferAfterMinutes, existing, ""); blocking != nil {
				uc.logger.Warn("Schedule: %s %s conflicts with appointment %s", nt.Date, nt.Time, blocking.ID)
				return fmt.Errorf("%w: %s on %s conflicts with an existing booking",
					ErrSlotUnavailable, nt.Time, nt.Date)
			}

			created, err = uc.repo.Create(txCtx, appt)
			if err != nil {
				return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Schedule: created appointment %s (%s at %s %s)",
		created.ID, created.AppointmentType, created.Date.Format(domain.DateFormat), created.Time)

	// 6. Best-effort side effects after the booking is durable.
	uc.createCalendarEvent(ctx, created)
	uc.sendConfirmation(ctx, created)

	return fromDomain(created), nil
}

func (uc *UseCase) createCalendarEvent(ctx context.Context, appt *domain.Appointment) {
	event := &calendar.Event{
		Summary:     fmt.Sprintf("%s - %s", appt.AppointmentType, appt.PatientName),
		Description: fmt.Sprintf("Telehealth session (%d min)", appt.DurationMinutes),
		Start:       appt.StartTime,
		End:         appt.EndTime,
		Timezone:    appt.Timezone,
	}

	ref, err := uc.calendarClient.CreateEvent(ctx, event)
	if err != nil {
		uc.logger.Warn("Schedule: calendar event creation failed for %s: %v", appt.ID, err)
		return
	}

	if err := uc.repo.SetCalendarEventID(ctx, appt.ID, ref.ID); err != nil {
		uc.logger.Warn("Schedule: failed to store calendar ref for %s: %v", appt.ID, err)
		return
	}
	appt.CalendarEventID = &ref.ID
}

func (uc *UseCase) sendConfirmation(ctx context.Context, appt *domain.Appointment) {
	confirmation := &notify.Confirmation{
		Phone:   appt.PatientPhone,
		Email:   appt.PatientEmail,
		Subject: "Appointment confirmed",
		Message: fmt.Sprintf("Your %s is scheduled for %s.", appt.AppointmentType, appt.DisplayString()),
	}

	if err := uc.notifier.SendConfirmation(ctx, confirmation); err != nil {
		uc.logger.Warn("Schedule: confirmation notification failed for %s: %v", appt.ID, err)
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
