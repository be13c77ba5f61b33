package search_appointments

import (
	"errors"
	"net/http"

	"github.com/luminahealth/LMH-SchedulingService/internal/api/handlers"
	"github.com/luminahealth/LMH-SchedulingService/internal/service/appointments"
	"github.com/luminahealth/LMH-SchedulingService/internal/service/appointments/models"
)

const msgMissingTerm = "q query parameter is required"

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

// Handle GET /api/v1/appointments/search
// Query params: q (required) - matched against patient phone and email
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")

	result, err := h.service.Search(r.Context(), &models.SearchAppointmentsRequest{Term: term})
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /appointments/search - Missing search term")
			handlers.RespondBadRequest(w, msgMissingTerm)

		default:
			h.logger.Error("GET /appointments/search - Search failed: term=%q, error=%v", term, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments/search - Found %d appointments: term=%q", result.Total, term)
	handlers.RespondJSON(w, http.StatusOK, result)
}
