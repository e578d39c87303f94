package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the path checked for YAML configuration.
const DefaultConfigFile = "seatwise.yaml"

// Load returns a Config using the hierarchy: defaults < YAML < ENV.
// The YAML file is optional; a missing file is not an error.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigFile)
}

// LoadFrom returns a Config loaded from the given YAML path using the
// hierarchy: defaults < YAML < ENV. The YAML file is optional.
func LoadFrom(yamlPath string) (*Config, error) {
	cfg := Defaults()

	if err := loadYAML(&cfg, yamlPath); err != nil {
		return nil, fmt.Errorf("config yaml: %w", err)
	}

	loadEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validate: %w", err)
	}

	return &cfg, nil
}

// loadYAML reads the YAML file and unmarshals it over cfg.
// Returns nil if the file does not exist.
func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is validated by caller
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

// loadEnv overlays environment variables onto cfg.
// Only non-empty env values override the current config.
func loadEnv(cfg *Config) {
	setString(&cfg.Server.Port, "SEATWISE_PORT")
	setString(&cfg.Server.CORSOrigin, "SEATWISE_CORS_ORIGIN")
	setString(&cfg.Postgres.DSN, "DATABASE_URL")
	setInt32(&cfg.Postgres.MaxConns, "SEATWISE_PG_MAX_CONNS")
	setInt32(&cfg.Postgres.MinConns, "SEATWISE_PG_MIN_CONNS")
	setDuration(&cfg.Postgres.MaxConnLifetime, "SEATWISE_PG_MAX_CONN_LIFETIME")
	setDuration(&cfg.Postgres.MaxConnIdleTime, "SEATWISE_PG_MAX_CONN_IDLE_TIME")
	setDuration(&cfg.Postgres.HealthCheck, "SEATWISE_PG_HEALTH_CHECK")
	setString(&cfg.NATS.URL, "NATS_URL")
	setString(&cfg.SMTP.Host, "SEATWISE_SMTP_HOST")
	setInt(&cfg.SMTP.Port, "SEATWISE_SMTP_PORT")
	setString(&cfg.SMTP.From, "SEATWISE_SMTP_FROM")
	setString(&cfg.SMTP.Password, "SEATWISE_SMTP_PASSWORD")
	setInt64(&cfg.Cache.MaxSizeMB, "SEATWISE_CACHE_SIZE_MB")
	setDuration(&cfg.Cache.TTL, "SEATWISE_CACHE_TTL")
	setString(&cfg.OTel.Endpoint, "SEATWISE_OTEL_ENDPOINT")
	setString(&cfg.Logging.Level, "SEATWISE_LOG_LEVEL")
	setString(&cfg.Logging.Service, "SEATWISE_LOG_SERVICE")
	setDuration(&cfg.Booking.MinLead, "SEATWISE_BOOKING_MIN_LEAD")
	setInt(&cfg.Booking.FallbackCapacity, "SEATWISE_BOOKING_FALLBACK_CAPACITY")
	setString(&cfg.Booking.AppBaseURL, "SEATWISE_APP_BASE_URL")
}

// validate checks that required fields are set.
func validate(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if cfg.Postgres.DSN == "" {
		return errors.New("postgres.dsn is required")
	}
	if cfg.NATS.URL == "" {
		return errors.New("nats.url is required")
	}
	if cfg.Postgres.MaxConns < 1 {
		return errors.New("postgres.max_conns must be >= 1")
	}
	if cfg.Booking.MinLead < 0 {
		return errors.New("booking.min_lead must not be negative")
	}
	if cfg.Booking.FallbackCapacity < 1 {
		return errors.New("booking.fallback_capacity must be >= 1")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt32(dst *int32, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			*dst = int32(n)
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
