package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/copywriter-go/assets"
	"github.com/doeshing/copywriter-go/internal/domain"
	"github.com/doeshing/copywriter-go/internal/pkg/filesystem"
	"github.com/doeshing/copywriter-go/internal/ports"
)

// Environment keys read on every load.
const (
	EnvPrimaryKey     = "DEEPSEEK_API_KEY"
	EnvPrimaryModel   = "DEEPSEEK_MODEL"
	EnvPrimaryBaseURL = "DEEPSEEK_BASE_URL"
	EnvSecondaryKey   = "GEMINI_API_KEY"
	EnvSecondaryModel = "GEMINI_MODEL"
	EnvLoginUser      = "COPYWRITER_LOGIN_USER"
	EnvLoginPassword  = "COPYWRITER_LOGIN_PASSWORD"
	EnvConfigPath     = "COPYWRITER_CONFIG"
	EnvDebug          = "COPYWRITER_DEBUG"
)

// FileLoader loads YAML configuration from ~/.copywriter/config.yaml (overridable via COPYWRITER_CONFIG)
// and overlays credentials from the environment.
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader. An empty path means the default location.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.Path()
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return domain.Config{}, err
		}
		if err := writeDefault(path); err != nil {
			return domain.Config{}, err
		}
		data = assets.DefaultConfigYAML
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg = hydrateDefaults(cfg)
	cfg.Credentials = credentialsFromEnv()
	if debugEnabled() {
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}

// Path is the config file this loader reads.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return filesystem.ExpandPath(l.overridePath)
	}
	if custom := os.Getenv(EnvConfigPath); custom != "" {
		return filesystem.ExpandPath(custom)
	}
	return filepath.Join(filesystem.AppDir(), "config.yaml")
}

func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return err
	}
	return os.WriteFile(path, assets.DefaultConfigYAML, domain.SecureFilePermissions)
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if cfg.Preferences.DefaultStyle == "" {
		cfg.Preferences.DefaultStyle = string(domain.DefaultStyle)
	}
	if cfg.Preferences.RevealInterval == "" {
		cfg.Preferences.RevealInterval = domain.DefaultRevealInterval.String()
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = domain.StorageBackendSQLite
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = filepath.Join(filesystem.AppDir(), "history.db")
	}
	if cfg.Storage.Dir == "" {
		cfg.Storage.Dir = filepath.Join(filesystem.AppDir(), "store")
	}
	cfg.Storage.Path = filesystem.ExpandPath(cfg.Storage.Path)
	cfg.Storage.Dir = filesystem.ExpandPath(cfg.Storage.Dir)
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "warn"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Telemetry.Exporter == "" {
		cfg.Telemetry.Exporter = "none"
	}
	return cfg
}

func credentialsFromEnv() domain.Credentials {
	return domain.Credentials{
		PrimaryKey:     env(EnvPrimaryKey),
		PrimaryModel:   env(EnvPrimaryModel),
		PrimaryBaseURL: env(EnvPrimaryBaseURL),
		SecondaryKey:   env(EnvSecondaryKey),
		SecondaryModel: env(EnvSecondaryModel),
		LoginUser:      env(EnvLoginUser),
		LoginPassword:  os.Getenv(EnvLoginPassword),
	}
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func debugEnabled() bool {
	enabled, err := strconv.ParseBool(env(EnvDebug))
	return err == nil && enabled
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
