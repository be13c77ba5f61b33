package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/luminahealth/LMH-SchedulingService/internal/domain"
)

// UseCase computes the available/booked slot partition for a day.
type UseCase struct {
	repo               AppointmentRepository
	registry           *domain.TypeRegistry
	hours              domain.BusinessHours
	granularityMinutes int
	defaultTimezone    string
	logger             Logger
}

// NewUseCase creates the availability use case.
func NewUseCase(
	repo AppointmentRepository,
	registry *domain.TypeRegistry,
	hours domain.BusinessHours,
	granularityMinutes int,
	defaultTimezone string,
	logger Logger,
) *UseCase {
	return &UseCase{
		repo:               repo,
		registry:           registry,
		hours:              hours,
		granularityMinutes: granularityMinutes,
		defaultTimezone:    defaultTimezone,
		logger:             logger,
	}
}

// Execute resolves the type, generates candidates, and partitions them
// against the day's existing non-cancelled bookings.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s, type=%q, timezone=%q",
		req.Date, req.AppointmentType, req.Timezone)

	day, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	timezone := req.Timezone
	if timezone == "" {
		timezone = uc.defaultTimezone
	}

	typeName := req.AppointmentType
	if typeName == "" {
		typeName = uc.registry.DefaultTypeName()
	}
	if !uc.registry.Known(typeName) {
		uc.logger.Warn("GetAvailableSlots: unknown type %q, using %q", typeName, uc.registry.DefaultTypeName())
	}
	apptType := uc.registry.Resolve(typeName)

	candidates := generateTimeSlots(
		uc.hours,
		apptType.DurationMinutes,
		apptType.BufferBeforeMinutes,
		apptType.BufferAfterMinutes,
		uc.granularityMinutes,
	)

	existing, err := uc.repo.GetByDate(ctx, day, false)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	available, booked, err := partitionSlots(day.Format(domain.DateFormat), timezone, candidates, apptType, existing)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTimezone) {
			uc.logger.Warn("GetAvailableSlots: invalid timezone %q", timezone)
			return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, timezone)
		}
		uc.logger.Error("GetAvailableSlots: failed to partition slots: %v", err)
		return nil, fmt.Errorf("%w: failed to partition slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: date=%s type=%q -> %d available, %d booked",
		req.Date, apptType.Name, len(available), len(booked))

	return &Response{
		Date:                day.Format(domain.DateFormat),
		AppointmentType:     apptType.Name,
		Timezone:            timezone,
		SlotDurationMinutes: apptType.DurationMinutes,
		BufferBeforeMinutes: apptType.BufferBeforeMinutes,
		BufferAfterMinutes:  apptType.BufferAfterMinutes,
		GranularityMinutes:  uc.granularityMinutes,
		Available:           available,
		Booked:              booked,
		Total:               len(candidates),
	}, nil
}
