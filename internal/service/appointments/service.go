package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/luminahealth/LMH-SchedulingService/internal/domain"
	appointmentstorage "github.com/luminahealth/LMH-SchedulingService/internal/infra/storage/appointment"
	"github.com/luminahealth/LMH-SchedulingService/internal/integrations/notify"
	"github.com/luminahealth/LMH-SchedulingService/internal/service/appointments/models"
)

// Service covers the lifecycle operations that do not reserve a slot:
// confirming, cancelling, fetching and searching appointments. Slot
// reservation (schedule, reschedule) lives in dedicated use cases.
type Service struct {
	repo           AppointmentRepository
	calendarClient CalendarClient
	notifier       NotifierClient
	logger         Logger
}

// NewService creates the appointments service.
func NewService(repo AppointmentRepository, calendarClient CalendarClient, notifier NotifierClient, logger Logger) *Service {
	return &Service{
		repo:           repo,
		calendarClient: calendarClient,
		notifier:       notifier,
		logger:         logger,
	}
}

// GetByID fetches one appointment.
func (s *Service) GetByID(ctx context.Context, id string) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%s", id)

	appt, err := s.getAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainAppointment(appt), nil
}

// Confirm moves a scheduled appointment to confirmed. Confirming an
// already-confirmed appointment is a no-op success; confirming a
// cancelled one fails, cancelled is terminal.
func (s *Service) Confirm(ctx context.Context, id string) (*models.ConfirmResponse, error) {
	s.logger.Info("Confirm: confirming appointment id=%s", id)

	appt, err := s.getAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	if appt.IsCancelled() {
		s.logger.Warn("Confirm: appointment id=%s is cancelled", id)
		return nil, fmt.Errorf("%w: %s cannot be confirmed", ErrCancelledAppointment, id)
	}

	if appt.Status == domain.StatusConfirmed {
		s.logger.Info("Confirm: appointment id=%s already confirmed", id)
		return &models.ConfirmResponse{
			Appointment:      models.FromDomainAppointment(appt),
			AlreadyConfirmed: true,
		}, nil
	}

	if err := s.repo.UpdateStatus(ctx, id, domain.StatusConfirmed); err != nil {
		if errors.Is(err, appointmentstorage.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Confirm: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
	}

	appt.Status = domain.StatusConfirmed
	s.sendConfirmation(ctx, appt)

	s.logger.Info("Confirm: appointment id=%s confirmed", id)
	return &models.ConfirmResponse{Appointment: models.FromDomainAppointment(appt)}, nil
}

// Cancel cancels an appointment and frees its slot for future bookings.
// Cancelling an already-cancelled appointment is a no-op success. The
// reason is recorded and appended to the notes.
func (s *Service) Cancel(ctx context.Context, req *models.CancelAppointmentRequest) (*models.CancelResponse, error) {
	s.logger.Info("Cancel: cancelling appointment id=%s", req.AppointmentID)

	appt, err := s.getAppointment(ctx, req.AppointmentID)
	if err != nil {
		return nil, err
	}

	if appt.IsCancelled() {
		s.logger.Info("Cancel: appointment id=%s already cancelled", req.AppointmentID)
		return &models.CancelResponse{
			Appointment:      models.FromDomainAppointment(appt),
			AlreadyCancelled: true,
		}, nil
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		reason = "Not specified"
	}
	notes := domain.AppendNote(appt.Notes, "Cancelled: "+reason)

	if err := s.repo.Cancel(ctx, req.AppointmentID, reason, notes); err != nil {
		if errors.Is(err, appointmentstorage.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%s: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// The calendar event is cleanup, not part of the cancellation.
	if appt.CalendarEventID != nil && *appt.CalendarEventID != "" {
		if err := s.calendarClient.DeleteEvent(ctx, *appt.CalendarEventID); err != nil {
			s.logger.Warn("Cancel: calendar event deletion failed for appointment id=%s: %v", req.AppointmentID, err)
		}
	}

	updated, err := s.getAppointment(ctx, req.AppointmentID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: appointment id=%s cancelled, reason=%q", req.AppointmentID, reason)
	return &models.CancelResponse{Appointment: models.FromDomainAppointment(updated)}, nil
}

// Search finds appointments whose patient phone or email contains the
// term, case-insensitively. Cancelled appointments are included so
// front-desk staff see full history.
func (s *Service) Search(ctx context.Context, req *models.SearchAppointmentsRequest) (*models.AppointmentListResponse, error) {
	term := strings.TrimSpace(req.Term)
	if term == "" {
		return nil, fmt.Errorf("%w: search term is required", ErrInvalidInput)
	}

	s.logger.Info("Search: term=%q", term)

	appts, err := s.repo.Search(ctx, term)
	if err != nil {
		s.logger.Error("Search: repository error for term=%q: %v", term, err)
		return nil, fmt.Errorf("%w: Search - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Search: term=%q matched %d appointments", term, len(appts))
	return models.FromDomainAppointments(appts), nil
}

func (s *Service) sendConfirmation(ctx context.Context, appt *domain.Appointment) {
	confirmation := &notify.Confirmation{
		Phone:   appt.PatientPhone,
		Email:   appt.PatientEmail,
		Subject: "Appointment confirmed",
		Message: fmt.Sprintf("Your %s on %s is confirmed.", appt.AppointmentType, appt.DisplayString()),
	}

	if err := s.notifier.SendConfirmation(ctx, confirmation); err != nil {
		s.logger.Warn("Confirm: confirmation notification failed for %s: %v", appt.ID, err)
	}
}

func (s *Service) getAppointment(ctx context.Context, id string) (*domain.Appointment, error) {
	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentstorage.ErrAppointmentNotFound) {
			s.logger.Warn("appointment id=%s not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return appt, nil
}
