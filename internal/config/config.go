// Package config loads runtime settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the runtime configuration of the terrasim command.
type Config struct {
	Database  DatabaseConfig
	Sim       SimConfig
	Logging   LoggingConfig
	Telemetry TelemetryConfig
}

// DatabaseConfig selects the world store.
type DatabaseConfig struct {
	Driver string `env:"TERRASIM_DB_DRIVER" envDefault:"sqlite"`

	// Path is the SQLite file, or the connection string for postgres.
	Path string `env:"TERRASIM_DB_PATH" envDefault:"data/terrasim.db"`
}

// SimConfig controls the run.
type SimConfig struct {
	Seed     int64         `env:"TERRASIM_SEED" envDefault:"42"`
	Days     int           `env:"TERRASIM_DAYS" envDefault:"0"` // 0 runs until stopped
	Workers  int           `env:"TERRASIM_WORKERS" envDefault:"4"`
	Interval time.Duration `env:"TERRASIM_INTERVAL" envDefault:"0s"`

	// SaveEvery is the number of days between world saves.
	SaveEvery int `env:"TERRASIM_SAVE_EVERY" envDefault:"1"`

	// PlateHistoryLimit overrides the plate history bound when positive.
	PlateHistoryLimit int `env:"TERRASIM_PLATE_HISTORY" envDefault:"0"`
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level string `env:"TERRASIM_LOG_LEVEL" envDefault:"info"`

	// Format is "json", "text" or "auto" (text on a terminal).
	Format string `env:"TERRASIM_LOG_FORMAT" envDefault:"auto"`
}

// TelemetryConfig enables OTLP trace export when Endpoint is set.
type TelemetryConfig struct {
	Endpoint    string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"terrasim"`
}

// Load reads an optional .env file, then parses the environment.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil {
		slog.Debug("no .env file loaded, using process environment", "error", err)
	}
	return Parse()
}

// Parse builds a Config from the process environment alone.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		errs = append(errs, fmt.Errorf("TERRASIM_DB_DRIVER %q: want sqlite or postgres", c.Database.Driver))
	}
	if c.Database.Path == "" {
		errs = append(errs, errors.New("TERRASIM_DB_PATH is empty"))
	}
	if c.Sim.Days < 0 {
		errs = append(errs, fmt.Errorf("TERRASIM_DAYS %d: must not be negative", c.Sim.Days))
	}
	if c.Sim.Workers < 1 {
		errs = append(errs, fmt.Errorf("TERRASIM_WORKERS %d: must be at least 1", c.Sim.Workers))
	}
	if c.Sim.SaveEvery < 1 {
		errs = append(errs, fmt.Errorf("TERRASIM_SAVE_EVERY %d: must be at least 1", c.Sim.SaveEvery))
	}
	switch c.Logging.Format {
	case "json", "text", "auto":
	default:
		errs = append(errs, fmt.Errorf("TERRASIM_LOG_FORMAT %q: want json, text or auto", c.Logging.Format))
	}
	return errors.Join(errs...)
}
