package domain

import (
	"fmt"
	"strings"
	"time"
)

// DefaultStyleKey resolves the configured default style, falling back to AIDA.
func (c *Config) DefaultStyleKey() StyleKey {
	if key, err := ParseStyleKey(c.Preferences.DefaultStyle); err == nil {
		return key
	}
	return DefaultStyle
}

// RevealIntervalDuration parses preferences.reveal_interval.
// An empty value yields DefaultRevealInterval.
func (c *Config) RevealIntervalDuration() (time.Duration, error) {
	raw := strings.TrimSpace(c.Preferences.RevealInterval)
	if raw == "" {
		return DefaultRevealInterval, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("preferences.reveal_interval invalid: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("preferences.reveal_interval must be > 0, got %s", raw)
	}
	return d, nil
}

// StorageBackend returns the normalized backend name.
func (c *Config) StorageBackend() string {
	backend := strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	if backend == "" {
		return StorageBackendSQLite
	}
	return backend
}

// ProviderCredentials merges environment credentials with config defaults.
// Environment values win over the file.
func (c *Config) ProviderCredentials() ProviderCredentials {
	return ProviderCredentials{
		PrimaryKey:     strings.TrimSpace(c.Credentials.PrimaryKey),
		PrimaryModel:   firstNonEmpty(c.Credentials.PrimaryModel, c.Providers.PrimaryModel, DefaultPrimaryModel),
		PrimaryBaseURL: firstNonEmpty(c.Credentials.PrimaryBaseURL, c.Providers.PrimaryBaseURL, DefaultPrimaryBaseURL),
		SecondaryKey:   strings.TrimSpace(c.Credentials.SecondaryKey),
		SecondaryModel: firstNonEmpty(c.Credentials.SecondaryModel, c.Providers.SecondaryModel, DefaultSecondaryModel),
	}
}

// LoginConfigured reports whether the entry gate has secrets to compare against.
func (c *Config) LoginConfigured() bool {
	return c.Credentials.LoginUser != "" && c.Credentials.LoginPassword != ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
