package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelAppointmentHandler "github.com/luminahealth/LMH-SchedulingService/internal/api/handlers/cancel_appointment"
	confirmAppointmentHandler "github.com/luminahealth/LMH-SchedulingService/internal/api/handlers/confirm_appointment"
	getAppointmentHandler "github.com/luminahealth/LMH-SchedulingService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/luminahealth/LMH-SchedulingService/internal/api/handlers/get_available_slots"
	healthHandler "github.com/luminahealth/LMH-SchedulingService/internal/api/handlers/health"
	rescheduleAppointmentHandler "github.com/luminahealth/LMH-SchedulingService/internal/api/handlers/reschedule_appointment"
	scheduleAppointmentHandler "github.com/luminahealth/LMH-SchedulingService/internal/api/handlers/schedule_appointment"
	searchAppointmentsHandler "github.com/luminahealth/LMH-SchedulingService/internal/api/handlers/search_appointments"
	"github.com/luminahealth/LMH-SchedulingService/internal/api/middleware"
	"github.com/luminahealth/LMH-SchedulingService/internal/config"
	appointmentRepo "github.com/luminahealth/LMH-SchedulingService/internal/infra/storage/appointment"
	calendarClient "github.com/luminahealth/LMH-SchedulingService/internal/integrations/calendar"
	notifyClient "github.com/luminahealth/LMH-SchedulingService/internal/integrations/notify"
	patientdirClient "github.com/luminahealth/LMH-SchedulingService/internal/integrations/patientdir"
	"github.com/luminahealth/LMH-SchedulingService/internal/locker"
	appointmentsService "github.com/luminahealth/LMH-SchedulingService/internal/service/appointments"
	getAvailableSlotsUC "github.com/luminahealth/LMH-SchedulingService/internal/usecase/get_available_slots"
	rescheduleAppointmentUC "github.com/luminahealth/LMH-SchedulingService/internal/usecase/reschedule_appointment"
	scheduleAppointmentUC "github.com/luminahealth/LMH-SchedulingService/internal/usecase/schedule_appointment"
	"github.com/luminahealth/LMH-SchedulingService/pkg/dbmetrics"
	"github.com/luminahealth/LMH-SchedulingService/pkg/logger"
	"github.com/luminahealth/LMH-SchedulingService/pkg/metrics"
	"github.com/luminahealth/LMH-SchedulingService/pkg/txmanager"
)

// calendarAPI is the full calendar surface; the use cases each consume
// a narrower slice of it.
type calendarAPI interface {
	CreateEvent(ctx context.Context, event *calendarClient.Event) (*calendarClient.EventRef, error)
	UpdateEvent(ctx context.Context, eventID string, event *calendarClient.Event) error
	DeleteEvent(ctx context.Context, eventID string) error
}

type notifierAPI interface {
	SendConfirmation(ctx context.Context, confirmation *notifyClient.Confirmation) error
}

type patientDirectoryAPI interface {
	GetOrCreatePatient(ctx context.Context, name string, phone, email *string) (*patientdirClient.Patient, error)
}

func main() {
	// Secrets come from the environment; .env is a local convenience.
	_ = godotenv.Load()

	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting LMH-SchedulingService...")
	log.Info("Configuration loaded from config.toml")

	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// dbmetrics tolerates a nil collector, so the same wiring serves
	// both metric modes.
	wrappedDB := dbmetrics.Wrap(db, metricsCollector, cfg.Metrics.ServiceName)
	if cfg.Metrics.Enabled {
		wrappedDB.StartPoolStatsCollector(15*time.Second, stopMetricsCh)
		log.Info("Database metrics collection started")
	}

	txMgr := txmanager.NewTransactionManager(wrappedDB)
	repository := appointmentRepo.NewRepository(wrappedDB)

	// The date lock guards check-then-reserve across instances. Redis
	// makes it distributed; the local fallback covers single-instance
	// deployments.
	var dateLocker interface {
		WithDateLock(ctx context.Context, date string, fn func(ctx context.Context) error) error
	}
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		defer redisClient.Close()
		dateLocker = locker.NewRedisLocker(redisClient, time.Duration(cfg.Redis.LockTTLSecs)*time.Second)
		log.Info("Redis date locking enabled (addr=%s)", cfg.Redis.Addr)
	} else {
		dateLocker = locker.NewLocalLocker()
		log.Info("Local date locking enabled")
	}

	// Disabled integrations run in mock mode so the booking flow stays
	// identical with or without the external services.
	var calClient calendarAPI
	if cfg.Integrations.Calendar.Enabled {
		calClient = calendarClient.NewClient(
			cfg.Integrations.Calendar.URL,
			time.Duration(cfg.Integrations.Calendar.Timeout)*time.Second,
			log,
		)
	} else {
		calClient = calendarClient.NewMockClient(log)
	}

	var notifier notifierAPI
	if cfg.Integrations.Notifier.Enabled {
		notifier = notifyClient.NewClient(
			cfg.Integrations.Notifier.URL,
			time.Duration(cfg.Integrations.Notifier.Timeout)*time.Second,
			log,
		)
	} else {
		notifier = notifyClient.NewMockClient(log)
	}

	var patientDir patientDirectoryAPI
	if cfg.Integrations.PatientDirectory.Enabled {
		patientDir = patientdirClient.NewClient(
			cfg.Integrations.PatientDirectory.URL,
			time.Duration(cfg.Integrations.PatientDirectory.Timeout)*time.Second,
			log,
		)
	} else {
		patientDir = patientdirClient.NewMockClient(log)
	}
	log.Info("Integration clients initialized (calendar=%t, notifier=%t, patient_directory=%t)",
		cfg.Integrations.Calendar.Enabled, cfg.Integrations.Notifier.Enabled,
		cfg.Integrations.PatientDirectory.Enabled)

	registry := cfg.Booking.TypeRegistry()
	hours := cfg.Booking.BusinessHours()
	log.Info("Business hours %d:00-%d:00 (%s), %d appointment types registered",
		cfg.Booking.OpenHour, cfg.Booking.CloseHour, cfg.Booking.DefaultTimezone, len(registry.Names()))

	appointmentSvc := appointmentsService.NewService(repository, calClient, notifier, log)

	scheduleUseCase := scheduleAppointmentUC.NewUseCase(
		repository,
		registry,
		hours,
		cfg.Booking.DefaultTimezone,
		calClient,
		notifier,
		patientDir,
		dateLocker,
		txMgr,
		log,
	)
	rescheduleUseCase := rescheduleAppointmentUC.NewUseCase(
		repository,
		registry,
		hours,
		calClient,
		dateLocker,
		txMgr,
		log,
	)
	availableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		repository,
		registry,
		hours,
		cfg.Booking.SlotGranularityMinutes,
		cfg.Booking.DefaultTimezone,
		log,
	)

	scheduleAppointment := scheduleAppointmentHandler.NewHandler(scheduleUseCase, log)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(rescheduleUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(availableSlotsUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	confirmAppointment := confirmAppointmentHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	searchAppointments := searchAppointmentsHandler.NewHandler(appointmentSvc, log)
	health := healthHandler.NewHandler(db)

	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Availability
	api.HandleFunc("/availability", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Appointments. /search is registered before the {appointmentId}
	// routes so it is not captured as an id.
	api.HandleFunc("/appointments/search", searchAppointments.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments", scheduleAppointment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{appointmentId}/confirm", confirmAppointment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments/{appointmentId}/reschedule", rescheduleAppointment.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
