// Package config loads glimmer settings from config.yaml, an optional .env
// file and GLIMMER_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/shenyaoyiivy/Glimmer-Mood/internal/constants"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/keyring"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/utils"
)

const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendDiskv    = "diskv"

	fileName = "config"
	fileType = "yaml"
)

var (
	// ErrInvalidBackend is returned for an unknown storage.backend
	ErrInvalidBackend = errors.New("invalid storage backend")
	// ErrNoAPIKey is returned when neither config nor keyring hold an API key
	ErrNoAPIKey = errors.New("no Gemini API key: set GLIMMER_AI_API_KEY or run 'glimmer config set-api-key'")
	// ErrNoDSN is returned when the postgres backend has no connection string
	ErrNoDSN = errors.New("no PostgreSQL connection string: set storage.dsn or store one in the keyring")
)

type StorageConfig struct {
	Backend    string
	Path       string
	DSN        string
	QuotaBytes int64
}

type AIConfig struct {
	APIKey      string
	TextModel   string
	ReportModel string
	ImageModel  string
	Timeout     time.Duration
}

type Config struct {
	Dir            string
	File           string
	Storage        StorageConfig
	AI             AIConfig
	Timezone       string
	Locale         constants.Locale
	CollectionDays int
	Debug          bool
}

// ExpandHome resolves a leading ~ to the user's home directory
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

func newViper(dir string) *viper.Viper {
	v := viper.New()
	v.SetConfigName(fileName)
	v.SetConfigType(fileType)
	v.AddConfigPath(dir)

	v.SetEnvPrefix(strings.ToUpper(constants.AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("ai.api_key", "GLIMMER_AI_API_KEY", "GEMINI_API_KEY")

	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.backend", BackendSQLite)
	v.SetDefault("storage.path", "")
	v.SetDefault("storage.dsn", "")
	v.SetDefault("storage.quota_bytes", constants.DefaultQuotaBytes)
	v.SetDefault("ai.text_model", constants.DefaultTextModel)
	v.SetDefault("ai.report_model", constants.DefaultReportModel)
	v.SetDefault("ai.image_model", constants.DefaultImageModel)
	v.SetDefault("ai.timeout", constants.DefaultAITimeout.String())
	v.SetDefault("timezone", "Local")
	v.SetDefault("locale", string(constants.LocaleZH))
	v.SetDefault("collection.days", constants.DefaultCollection)
	v.SetDefault("debug", false)
}

// Load reads the configuration rooted at dir
func Load(dir string) (*Config, error) {
	dir, err := ExpandHome(dir)
	if err != nil {
		return nil, err
	}

	// .env files never override variables already set in the environment
	for _, envFile := range []string{filepath.Join(dir, ".env"), ".env"} {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	v := newViper(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Dir:  dir,
		File: v.ConfigFileUsed(),
		Storage: StorageConfig{
			Backend:    strings.ToLower(strings.TrimSpace(v.GetString("storage.backend"))),
			Path:       v.GetString("storage.path"),
			DSN:        v.GetString("storage.dsn"),
			QuotaBytes: v.GetInt64("storage.quota_bytes"),
		},
		AI: AIConfig{
			APIKey:      strings.TrimSpace(v.GetString("ai.api_key")),
			TextModel:   v.GetString("ai.text_model"),
			ReportModel: v.GetString("ai.report_model"),
			ImageModel:  v.GetString("ai.image_model"),
			Timeout:     v.GetDuration("ai.timeout"),
		},
		Timezone:       v.GetString("timezone"),
		Locale:         constants.Locale(strings.ToLower(v.GetString("locale"))),
		CollectionDays: v.GetInt("collection.days"),
		Debug:          v.GetBool("debug"),
	}

	if cfg.Storage.Path != "" {
		if cfg.Storage.Path, err = ExpandHome(cfg.Storage.Path); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendSQLite, BackendPostgres, BackendDiskv:
	default:
		return fmt.Errorf("%w %q (want sqlite, postgres or diskv)", ErrInvalidBackend, c.Storage.Backend)
	}
	if !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("invalid timezone %q", c.Timezone)
	}
	if c.Locale != constants.LocaleZH && c.Locale != constants.LocaleEN {
		return fmt.Errorf("invalid locale %q (want zh or en)", c.Locale)
	}
	if c.CollectionDays < 1 {
		return fmt.Errorf("collection.days must be at least 1, got %d", c.CollectionDays)
	}
	if c.AI.Timeout <= 0 {
		return fmt.Errorf("ai.timeout must be positive, got %s", c.AI.Timeout)
	}
	return nil
}

// Location returns the timezone calendar days are computed in
func (c *Config) Location() (*time.Location, error) {
	return utils.LoadLocation(c.Timezone)
}

// StoragePath returns the file or directory used by file-backed backends
func (c *Config) StoragePath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	if c.Storage.Backend == BackendDiskv {
		return filepath.Join(c.Dir, constants.DefaultDiskvDir)
	}
	return filepath.Join(c.Dir, constants.DefaultDBFileName)
}

// ResolveAPIKey returns the configured API key, falling back to the keyring
func (c *Config) ResolveAPIKey() (string, error) {
	if c.AI.APIKey != "" {
		return c.AI.APIKey, nil
	}
	key, err := keyring.GetAPIKey()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) || errors.Is(err, keyring.ErrKeyringUnavailable) {
			return "", ErrNoAPIKey
		}
		return "", err
	}
	return key, nil
}

// ResolveDSN returns the PostgreSQL connection string, falling back to the keyring
func (c *Config) ResolveDSN() (string, error) {
	if c.Storage.DSN != "" {
		return c.Storage.DSN, nil
	}
	dsn, err := keyring.GetConnectionString()
	if err != nil {
		return "", ErrNoDSN
	}
	return dsn, nil
}

// WriteDefault writes a config.yaml with default values into dir unless one
// already exists. It returns the file path and whether it was created.
func WriteDefault(dir string) (string, bool, error) {
	dir, err := ExpandHome(dir)
	if err != nil {
		return "", false, err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", false, fmt.Errorf("failed to create config directory: %w", err)
	}

	path := filepath.Join(dir, fileName+"."+fileType)

	// No env binding here so secrets from the environment never reach the file
	v := viper.New()
	v.SetConfigType(fileType)
	setDefaults(v)
	if err := v.SafeWriteConfigAs(path); err != nil {
		var exists viper.ConfigFileAlreadyExistsError
		if errors.As(err, &exists) {
			return path, false, nil
		}
		return "", false, fmt.Errorf("failed to write config: %w", err)
	}
	return path, true, nil
}
