package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/luminahealth/LMH-SchedulingService/internal/api/handlers"
	getAvailableSlots "github.com/luminahealth/LMH-SchedulingService/internal/usecase/get_available_slots"
)

const (
	msgMissingDate     = "date query parameter is required"
	msgInvalidDate     = "invalid date, expected a real calendar date as YYYY-MM-DD"
	msgInvalidTimezone = "unknown timezone"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
// Query params: date (required, YYYY-MM-DD), type (optional), timezone (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	date := query.Get("date")
	if date == "" {
		h.logger.Warn("GET /availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	req := &getAvailableSlots.Request{
		Date:            date,
		AppointmentType: query.Get("type"),
		Timezone:        query.Get("timezone"),
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /availability - Invalid date: %q", date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailableSlots.ErrInvalidTimezone):
			h.logger.Warn("GET /availability - Invalid timezone: %q", req.Timezone)
			handlers.RespondBadRequest(w, msgInvalidTimezone)

		default:
			h.logger.Error("GET /availability - Failed to get slots: date=%s, error=%v", date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - Found %d available slots: date=%s, type=%s",
		len(result.Available), result.Date, result.AppointmentType)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
