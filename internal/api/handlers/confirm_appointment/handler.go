package confirm_appointment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/luminahealth/LMH-SchedulingService/internal/api/handlers"
	"github.com/luminahealth/LMH-SchedulingService/internal/service/appointments"
)

const (
	msgMissingAppointmentID = "appointment id is required"
	msgNotFound             = "appointment not found"
	msgCancelled            = "cancelled appointments cannot be confirmed"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/{appointmentId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID := vars["appointmentId"]
	if appointmentID == "" {
		h.logger.Warn("POST /appointments/{id}/confirm - Missing appointment ID")
		handlers.RespondBadRequest(w, msgMissingAppointmentID)
		return
	}

	result, err := h.service.Confirm(r.Context(), appointmentID)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("POST /appointments/{id}/confirm - Not found: appointment_id=%s", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrCancelledAppointment):
			h.logger.Warn("POST /appointments/{id}/confirm - Appointment cancelled: appointment_id=%s", appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgCancelled)

		default:
			h.logger.Error("POST /appointments/{id}/confirm - Failed to confirm: appointment_id=%s, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/{id}/confirm - Appointment confirmed: appointment_id=%s, already_confirmed=%t",
		appointmentID, result.AlreadyConfirmed)
	handlers.RespondJSON(w, http.StatusOK, result)
}
