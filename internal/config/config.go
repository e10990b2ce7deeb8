// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/samdwyer/mazecrawl/internal/telemetry"
)

// Storage drivers.
const (
	DriverSQLite = "sqlite"
	DriverFile   = "file"
	DriverMemory = "memory"
)

var (
	drivers    = []string{DriverSQLite, DriverFile, DriverMemory}
	logFormats = []string{"text", "json"}
)

// Config holds every setting the game reads at startup.
type Config struct {
	LogLevel  string `env:"MAZECRAWL_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"MAZECRAWL_LOG_FORMAT" envDefault:"text"`
	// LogFile receives the log; the terminal belongs to the game.
	LogFile string `env:"MAZECRAWL_LOG_FILE" envDefault:"mazecrawl.log"`

	StorageDriver string `env:"MAZECRAWL_STORAGE_DRIVER" envDefault:"sqlite"`
	// StoragePath is the database file for sqlite and the directory for file.
	StoragePath string `env:"MAZECRAWL_STORAGE_PATH" envDefault:"mazecrawl.db"`
	SaveSlot    string `env:"MAZECRAWL_SAVE_SLOT" envDefault:"mazecrawl-save"`

	OTelEnabled      bool   `env:"MAZECRAWL_OTEL_ENABLED" envDefault:"false"`
	OTelEndpoint     string `env:"MAZECRAWL_OTEL_ENDPOINT" envDefault:"https://api.honeycomb.io"`
	HoneycombAPIKey  string `env:"MAZECRAWL_HONEYCOMB_API_KEY"`
	HoneycombDataset string `env:"MAZECRAWL_HONEYCOMB_DATASET" envDefault:"mazecrawl"`
}

// Load reads the given .env files (".env" when none are named) into the
// environment, then parses the environment. Missing .env files are not an
// error; variables already set take precedence over the files.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated and required settings.
func (c Config) Validate() error {
	if !slices.Contains(drivers, c.StorageDriver) {
		return fmt.Errorf("invalid storage driver %q (want one of %v)", c.StorageDriver, drivers)
	}
	if c.StorageDriver != DriverMemory && c.StoragePath == "" {
		return errors.New("storage path is required")
	}
	if c.SaveSlot == "" {
		return errors.New("save slot is required")
	}
	if !slices.Contains(logFormats, c.LogFormat) {
		return fmt.Errorf("invalid log format %q (want one of %v)", c.LogFormat, logFormats)
	}
	return nil
}

// Telemetry returns the trace export settings. A Honeycomb API key becomes
// the export headers.
func (c Config) Telemetry() telemetry.Config {
	cfg := telemetry.Config{
		Enabled:  c.OTelEnabled,
		Endpoint: c.OTelEndpoint,
	}
	if c.HoneycombAPIKey != "" {
		cfg.Headers = map[string]string{
			"x-honeycomb-team":    c.HoneycombAPIKey,
			"x-honeycomb-dataset": c.HoneycombDataset,
		}
	}
	return cfg
}
