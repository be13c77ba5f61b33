package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/luminahealth/LMH-SchedulingService/internal/domain"
)

// Config is the full service configuration loaded from config.toml.
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Redis        RedisConfig        `toml:"redis"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	Booking      BookingConfig      `toml:"booking"`
	Integrations IntegrationsConfig `toml:"integrations"`
}

// ServerConfig configures the HTTP listener. Timeouts are seconds.
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig configures the PostgreSQL connection pool.
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // seconds
}

// DSN builds the lib/pq connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// RedisConfig configures the optional distributed booking lock.
// When disabled the service falls back to an in-process mutex, which is
// sufficient for a single instance.
type RedisConfig struct {
	Enabled     bool   `toml:"enabled"`
	Addr        string `toml:"addr"`
	Password    string `toml:"password"`
	DB          int    `toml:"db"`
	LockTTLSecs int    `toml:"lock_ttl"` // seconds
}

// LogsConfig configures pkg/logger.
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingConfig carries the practice-level scheduling defaults. These
// are deployment configuration, not engine constants; the US-Eastern
// 9-17 defaults below are only fallbacks for an empty file.
type BookingConfig struct {
	OpenHour               int                     `toml:"open_hour"`
	CloseHour              int                     `toml:"close_hour"`
	DefaultTimezone        string                  `toml:"default_timezone"`
	SlotGranularityMinutes int                     `toml:"slot_granularity_minutes"`
	Types                  []AppointmentTypeConfig `toml:"types"`
}

// AppointmentTypeConfig is one registry entry in config.toml.
type AppointmentTypeConfig struct {
	Name                string `toml:"name"`
	DurationMinutes     int    `toml:"duration_minutes"`
	BufferBeforeMinutes int    `toml:"buffer_before_minutes"`
	BufferAfterMinutes  int    `toml:"buffer_after_minutes"`
}

// BusinessHours converts the configured hours into the domain value.
func (b BookingConfig) BusinessHours() domain.BusinessHours {
	return domain.BusinessHours{OpenHour: b.OpenHour, CloseHour: b.CloseHour}
}

// TypeRegistry builds the appointment type registry from config.
func (b BookingConfig) TypeRegistry() *domain.TypeRegistry {
	types := make([]domain.AppointmentType, 0, len(b.Types))
	for _, t := range b.Types {
		types = append(types, domain.AppointmentType{
			Name:                t.Name,
			DurationMinutes:     t.DurationMinutes,
			BufferBeforeMinutes: t.BufferBeforeMinutes,
			BufferAfterMinutes:  t.BufferAfterMinutes,
		})
	}
	return domain.NewTypeRegistry(types)
}

// IntegrationsConfig configures the best-effort collaborators. Each one
// degrades to a mock implementation when disabled.
type IntegrationsConfig struct {
	Calendar         IntegrationConfig `toml:"calendar"`
	Notifier         IntegrationConfig `toml:"notifier"`
	PatientDirectory IntegrationConfig `toml:"patient_directory"`
}

// IntegrationConfig is one outbound HTTP collaborator.
type IntegrationConfig struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // seconds
}

// Load reads and validates the configuration file. Environment
// variables DB_PASSWORD and REDIS_PASSWORD override file values so
// secrets can stay out of the file.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "scheduling",
			DBName:          "scheduling",
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Redis: RedisConfig{
			Addr:        "localhost:6379",
			LockTTLSecs: 10,
		},
		Logs: LogsConfig{
			File:  "logs/scheduling.log",
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "scheduling-service",
		},
		Booking: BookingConfig{
			OpenHour:               9,
			CloseHour:              17,
			DefaultTimezone:        "America/New_York",
			SlotGranularityMinutes: 15,
		},
	}
}

func (c *Config) validate() error {
	if c.Booking.OpenHour < 0 || c.Booking.OpenHour > 23 {
		return fmt.Errorf("config: open_hour %d out of range", c.Booking.OpenHour)
	}
	if c.Booking.CloseHour < 1 || c.Booking.CloseHour > 24 {
		return fmt.Errorf("config: close_hour %d out of range", c.Booking.CloseHour)
	}
	if c.Booking.CloseHour <= c.Booking.OpenHour {
		return fmt.Errorf("config: close_hour must be after open_hour")
	}
	if c.Booking.SlotGranularityMinutes <= 0 {
		return fmt.Errorf("config: slot_granularity_minutes must be positive")
	}
	for _, t := range c.Booking.Types {
		if t.Name == "" {
			return fmt.Errorf("config: appointment type with empty name")
		}
		if t.DurationMinutes <= 0 {
			return fmt.Errorf("config: appointment type %q needs a positive duration", t.Name)
		}
		if t.BufferBeforeMinutes < 0 || t.BufferAfterMinutes < 0 {
			return fmt.Errorf("config: appointment type %q has a negative buffer", t.Name)
		}
	}
	return nil
}
