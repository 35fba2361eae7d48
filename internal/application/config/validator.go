package config

import (
	"fmt"
	"strings"

	"github.com/doeshing/copywriter-go/internal/domain"
)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if v := cfg.ConfigFormatVersion; v != "" && v != "1" {
		return fmt.Errorf("config_format_version %q is not supported", v)
	}
	if err := validatePreferences(cfg); err != nil {
		return err
	}
	if err := validateStorage(cfg.Storage); err != nil {
		return err
	}
	if err := validateLogging(cfg.Logging); err != nil {
		return err
	}
	return validateTelemetry(cfg.Telemetry)
}

func validatePreferences(cfg domain.Config) error {
	if raw := cfg.Preferences.DefaultStyle; raw != "" {
		if _, err := domain.ParseStyleKey(raw); err != nil {
			return fmt.Errorf("preferences.default_style: %w", err)
		}
	}
	_, err := cfg.RevealIntervalDuration()
	return err
}

func validateStorage(storage domain.StorageSettings) error {
	switch strings.ToLower(storage.Backend) {
	case "", domain.StorageBackendSQLite:
		if storage.Path == "" {
			return fmt.Errorf("storage.path must be set for the sqlite backend")
		}
	case domain.StorageBackendFile:
		if storage.Dir == "" {
			return fmt.Errorf("storage.dir must be set for the file backend")
		}
	case domain.StorageBackendRedis:
		if storage.RedisAddr == "" {
			return fmt.Errorf("storage.redis_addr must be set for the redis backend")
		}
		if storage.RedisDB < 0 {
			return fmt.Errorf("storage.redis_db must be >= 0")
		}
	default:
		return fmt.Errorf("storage.backend must be sqlite|file|redis, got %s", storage.Backend)
	}
	return nil
}

func validateLogging(logging domain.LoggingSettings) error {
	switch strings.ToLower(logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be debug|info|warn|error, got %s", logging.Level)
	}
	switch strings.ToLower(logging.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format must be text|json, got %s", logging.Format)
	}
	return nil
}

func validateTelemetry(telemetry domain.TelemetrySettings) error {
	switch strings.ToLower(telemetry.Exporter) {
	case "", "none", "stdout":
		return nil
	default:
		return fmt.Errorf("telemetry.exporter must be none|stdout, got %s", telemetry.Exporter)
	}
}
