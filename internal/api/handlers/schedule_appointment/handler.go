package schedule_appointment

import (
	"errors"
	"net/http"

	"github.com/luminahealth/LMH-SchedulingService/internal/api/handlers"
	scheduleAppointment "github.com/luminahealth/LMH-SchedulingService/internal/usecase/schedule_appointment"
)

const (
	msgInvalidRequestBody   = "invalid request body"
	msgInvalidTime          = "invalid time format, expected HH:MM or H:MM AM/PM"
	msgInvalidDate          = "invalid date, expected a real calendar date as YYYY-MM-DD"
	msgInvalidTimezone      = "unknown timezone"
	msgSlotUnavailable      = "requested time slot is unavailable"
	msgOutsideBusinessHours = "requested time is outside business hours"
)

type Handler struct {
	useCase ScheduleAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase ScheduleAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ScheduleAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, scheduleAppointment.ErrValidation):
			h.logger.Warn("POST /appointments - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, scheduleAppointment.ErrInvalidTimeFormat):
			h.logger.Warn("POST /appointments - Invalid time: %q", req.Time)
			handlers.RespondBadRequest(w, msgInvalidTime)

		case errors.Is(err, scheduleAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Invalid date: %q", req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, scheduleAppointment.ErrInvalidTimezone):
			h.logger.Warn("POST /appointments - Invalid timezone: %q", req.Timezone)
			handlers.RespondBadRequest(w, msgInvalidTimezone)

		case errors.Is(err, scheduleAppointment.ErrOutsideBusinessHours):
			h.logger.Warn("POST /appointments - Outside business hours: date=%s, time=%q", req.Date, req.Time)
			handlers.RespondBadRequest(w, msgOutsideBusinessHours)

		case errors.Is(err, scheduleAppointment.ErrSlotUnavailable):
			h.logger.Warn("POST /appointments - Slot unavailable: date=%s, time=%q", req.Date, req.Time)
			handlers.RespondError(w, http.StatusConflict, msgSlotUnavailable)

		default:
			h.logger.Error("POST /appointments - Failed to schedule: patient=%q, error=%v", req.PatientName, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment scheduled: id=%s, type=%s, date=%s, time=%s",
		result.ID, result.AppointmentType, result.Date, result.Time)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
