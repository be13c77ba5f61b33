package reschedule_appointment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/luminahealth/LMH-SchedulingService/internal/api/handlers"
	rescheduleAppointment "github.com/luminahealth/LMH-SchedulingService/internal/usecase/reschedule_appointment"
)

const (
	msgInvalidRequestBody   = "invalid request body"
	msgMissingAppointmentID = "appointment id is required"
	msgNotFound             = "appointment not found"
	msgCancelled            = "cancelled appointments cannot be rescheduled"
	msgInvalidTime          = "invalid time format, expected HH:MM or H:MM AM/PM"
	msgInvalidDate          = "invalid date, expected a real calendar date as YYYY-MM-DD"
	msgInvalidTimezone      = "unknown timezone"
	msgSlotUnavailable      = "requested time slot is unavailable"
	msgOutsideBusinessHours = "requested time is outside business hours"
)

type Handler struct {
	useCase RescheduleAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID := vars["appointmentId"]
	if appointmentID == "" {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Missing appointment ID")
		handlers.RespondBadRequest(w, msgMissingAppointmentID)
		return
	}

	var req RescheduleAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(appointmentID))
	if err != nil {
		switch {
		case errors.Is(err, rescheduleAppointment.ErrValidation):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, rescheduleAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Not found: appointment_id=%s", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleAppointment.ErrCancelledAppointment):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Appointment cancelled: appointment_id=%s", appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgCancelled)

		case errors.Is(err, rescheduleAppointment.ErrInvalidTimeFormat):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid time: %q", req.NewTime)
			handlers.RespondBadRequest(w, msgInvalidTime)

		case errors.Is(err, rescheduleAppointment.ErrInvalidDate):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid date: %q", req.NewDate)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, rescheduleAppointment.ErrInvalidTimezone):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid timezone: %q", req.Timezone)
			handlers.RespondBadRequest(w, msgInvalidTimezone)

		case errors.Is(err, rescheduleAppointment.ErrOutsideBusinessHours):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Outside business hours: date=%s, time=%q",
				req.NewDate, req.NewTime)
			handlers.RespondBadRequest(w, msgOutsideBusinessHours)

		case errors.Is(err, rescheduleAppointment.ErrSlotUnavailable):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Slot unavailable: date=%s, time=%q",
				req.NewDate, req.NewTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotUnavailable)

		default:
			h.logger.Error("PATCH /appointments/{id}/reschedule - Failed to reschedule: appointment_id=%s, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/reschedule - Appointment moved: appointment_id=%s, from=%s %s, to=%s %s",
		result.ID, result.PreviousDate, result.PreviousTime, result.Date, result.Time)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
