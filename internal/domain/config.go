package domain

// Config mirrors ~/.copywriter/config.yaml plus the credential overlay read from the environment.
type Config struct {
	ConfigFormatVersion string            `yaml:"config_format_version"`
	Preferences         Preferences       `yaml:"preferences"`
	Storage             StorageSettings   `yaml:"storage"`
	Providers           ProviderSettings  `yaml:"providers"`
	Logging             LoggingSettings   `yaml:"logging"`
	Telemetry           TelemetrySettings `yaml:"telemetry"`

	// Credentials never round-trip through the config file.
	Credentials Credentials `yaml:"-"`
}

// Preferences captures user level toggles.
type Preferences struct {
	DefaultStyle   string `yaml:"default_style"`
	RevealInterval string `yaml:"reveal_interval"`
}

// StorageSettings selects the key-value backend holding the history blob.
type StorageSettings struct {
	Backend   string `yaml:"backend"`
	Path      string `yaml:"path"`
	Dir       string `yaml:"dir"`
	RedisAddr string `yaml:"redis_addr"`
	RedisDB   int    `yaml:"redis_db"`
}

// ProviderSettings holds non-secret provider defaults.
type ProviderSettings struct {
	PrimaryModel   string `yaml:"primary_model"`
	PrimaryBaseURL string `yaml:"primary_base_url"`
	SecondaryModel string `yaml:"secondary_model"`
}

// LoggingSettings configures the slog handler.
type LoggingSettings struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// TelemetrySettings configures trace export.
type TelemetrySettings struct {
	Exporter string `yaml:"exporter"`
}

// Credentials are read from the environment on every load.
type Credentials struct {
	PrimaryKey     string
	PrimaryModel   string
	PrimaryBaseURL string
	SecondaryKey   string
	SecondaryModel string
	LoginUser      string
	LoginPassword  string
}
