package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/luminahealth/LMH-SchedulingService/internal/config"
	"github.com/luminahealth/LMH-SchedulingService/internal/domain"
	appointmentRepo "github.com/luminahealth/LMH-SchedulingService/internal/infra/storage/appointment"
	"github.com/luminahealth/LMH-SchedulingService/pkg/dbmetrics"
)

const (
	seedDays            = 10
	attemptsPerDay      = 12
	confirmedShare      = 0.4
	cancelledShare      = 0.1
	cancellationReasons = 3
)

var reasons = [cancellationReasons]string{
	"Patient request",
	"Provider unavailable",
	"Insurance issue",
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	cfg, err := config.Load("config.toml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("ping postgres: %v", err)
	}

	gofakeit.Seed(time.Now().UnixNano())

	repo := appointmentRepo.NewRepository(dbmetrics.Wrap(db, nil, "seed"))
	registry := cfg.Booking.TypeRegistry()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	total, err := seedAppointments(ctx, repo, registry, cfg.Booking)
	if err != nil {
		log.Fatalf("seed appointments: %v", err)
	}

	log.Printf("seed complete: %d appointments", total)
}

// seedAppointments fills the next seedDays weekdays with random
// bookings. Candidates that would conflict with an already-seeded
// appointment are skipped, so the seeded calendar is always valid.
func seedAppointments(ctx context.Context, repo *appointmentRepo.Repository, registry *domain.TypeRegistry, booking config.BookingConfig) (int, error) {
	typeNames := registry.Names()
	tz := booking.DefaultTimezone

	total := 0
	day := time.Now().AddDate(0, 0, 1)

	for seeded := 0; seeded < seedDays; day = day.AddDate(0, 0, 1) {
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		seeded++

		date := day.Format(domain.DateFormat)
		var existing []*domain.Appointment

		for attempt := 0; attempt < attemptsPerDay; attempt++ {
			typeName := typeNames[gofakeit.Number(0, len(typeNames)-1)]
			apptType := registry.Resolve(typeName)

			appt, ok := randomAppointment(date, tz, apptType, booking, existing)
			if !ok {
				continue
			}

			created, err := repo.Create(ctx, appt)
			if err != nil {
				return total, err
			}
			existing = append(existing, created)
			total++

			if err := applyRandomStatus(ctx, repo, created); err != nil {
				return total, err
			}
		}

		log.Printf("seeded %s: %d appointments", date, len(existing))
	}

	return total, nil
}

func randomAppointment(date, tz string, apptType domain.AppointmentType, booking config.BookingConfig, existing []*domain.Appointment) (*domain.Appointment, bool) {
	openMinutes := booking.OpenHour * 60
	closeMinutes := booking.CloseHour * 60
	span := closeMinutes - openMinutes - apptType.DurationMinutes - apptType.BufferAfterMinutes
	if span <= 0 {
		return nil, false
	}

	startMinutes := openMinutes + gofakeit.Number(0, span/booking.SlotGranularityMinutes)*booking.SlotGranularityMinutes
	clock := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC).
		Add(time.Duration(startMinutes) * time.Minute).Format(domain.TimeFormat)

	nt, err := domain.NormalizeLocalTime(date, clock, tz, apptType.DurationMinutes)
	if err != nil {
		return nil, false
	}

	candidate := domain.Interval{Start: nt.Start, End: nt.End}
	if domain.FindConflict(candidate, apptType.BufferBeforeMinutes, apptType.BufferAfterMinutes, existing, "") != nil {
		return nil, false
	}

	day, err := time.Parse(domain.DateFormat, nt.Date)
	if err != nil {
		return nil, false
	}

	phone := gofakeit.Phone()
	email := gofakeit.Email()

	return &domain.Appointment{
		ID:                  "apt-" + uuid.NewString(),
		PatientName:         gofakeit.Name(),
		PatientPhone:        &phone,
		PatientEmail:        &email,
		AppointmentType:     apptType.Name,
		Date:                day,
		Time:                nt.Time,
		StartTime:           nt.Start,
		EndTime:             nt.End,
		Timezone:            nt.Timezone,
		DurationMinutes:     apptType.DurationMinutes,
		BufferBeforeMinutes: apptType.BufferBeforeMinutes,
		BufferAfterMinutes:  apptType.BufferAfterMinutes,
		Status:              domain.StatusScheduled,
	}, true
}

// applyRandomStatus confirms or cancels a share of the seeded
// appointments so every lifecycle state shows up in the data.
func applyRandomStatus(ctx context.Context, repo *appointmentRepo.Repository, appt *domain.Appointment) error {
	roll := gofakeit.Float64Range(0, 1)
	switch {
	case roll < cancelledShare:
		reason := reasons[gofakeit.Number(0, cancellationReasons-1)]
		notes := domain.AppendNote(appt.Notes, "Cancelled: "+reason)
		if err := repo.Cancel(ctx, appt.ID, reason, notes); err != nil {
			return err
		}
		appt.Status = domain.StatusCancelled
	case roll < cancelledShare+confirmedShare:
		if err := repo.UpdateStatus(ctx, appt.ID, domain.StatusConfirmed); err != nil {
			return err
		}
		appt.Status = domain.StatusConfirmed
	}
	return nil
}
