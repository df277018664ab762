package core

import (
	"fmt"
	"net/url"
	"time"
)

// Config holds all configuration values.
type Config struct {
	// HealthAPIBase is the device telemetry API root (API_BASE).
	// Required: the monitor has nothing to poll without it.
	HealthAPIBase string

	// PollInterval is how often the monitor fetches telemetry.
	PollInterval time.Duration

	// RequestTimeout bounds each upstream request.
	RequestTimeout time.Duration

	// Dashboard server configuration
	Port          int
	WebUIPassword string // empty disables dashboard auth

	// AllowSelfSignedCerts disables TLS verification for the upstream
	// telemetry API (self-hosted deployments).
	AllowSelfSignedCerts bool

	// DBPath is the SQLite database file location.
	DBPath string

	// RulesFile is an optional YAML file with extra classifier rules,
	// merged into the built-in table at startup.
	RulesFile string

	// Logging
	LogFilePath string
	DevMode     bool
}

// LoadConfig loads configuration from environment variables with sensible
// defaults. Only API_BASE is required.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		HealthAPIBase:        GetEnvOrDefault("API_BASE", ""),
		PollInterval:         ParseDurationEnv("POLL_INTERVAL_SECONDS", 10),
		RequestTimeout:       ParseDurationEnv("REQUEST_TIMEOUT_SECONDS", 5),
		Port:                 ParseIntEnv("PORT", 8080),
		WebUIPassword:        GetEnvOrDefault("WEBUI_PWD", ""),
		AllowSelfSignedCerts: ParseBoolEnv("ALLOW_SELF_SIGNED_CERTS", false),
		DBPath:               GetEnvOrDefault("DB_PATH", GetDataFilePath("status.db")),
		RulesFile:            GetEnvOrDefault("RULES_FILE", ""),
		LogFilePath:          GetEnvOrDefault("LOG_FILE", GetDataFilePath("status_backend.log")),
		DevMode:              ParseBoolEnv("DEV_MODE", false),
	}

	if cfg.HealthAPIBase == "" {
		return nil, ErrMissingConfig("API_BASE")
	}
	if err := validateBaseURL(cfg.HealthAPIBase); err != nil {
		return nil, err
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("PORT %d out of range", cfg.Port)
	}
	if cfg.PollInterval < time.Second {
		return nil, fmt.Errorf("POLL_INTERVAL_SECONDS must be at least 1, got %v", cfg.PollInterval)
	}

	return cfg, nil
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return ErrInvalidServerURL(raw, err.Error())
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ErrInvalidServerURL(raw, "scheme must be http or https")
	}
	if u.Host == "" {
		return ErrInvalidServerURL(raw, "missing host")
	}
	return nil
}
