package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"

	"github.com/preston-bernstein/permit-availability/internal/output"
)

// Config holds runtime configuration for one collection run.
type Config struct {
	Source     string         `toml:"source"`
	Format     string         `toml:"format"`
	Timezone   string         `toml:"timezone"`
	WindowDays int            `toml:"window_days"`
	Upstream   UpstreamConfig `toml:"upstream"`
	Log        LogConfig      `toml:"log"`
	Metrics    MetricsConfig  `toml:"metrics"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Source:     defaultSource,
		Format:     defaultFormat,
		Timezone:   defaultTimezone,
		WindowDays: defaultWindowDays,
		Upstream:   defaultUpstream(),
		Log: LogConfig{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Metrics: defaultMetrics(),
	}
}

// Load layers the optional TOML file at path and then environment variables
// over the defaults. A missing file is ignored; a malformed one is an error.
// The result is not validated so callers can apply flag overrides first.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Source = strings.ToLower(envOrDefault(envSource, c.Source))
	c.Format = strings.ToLower(envOrDefault(envFormat, c.Format))
	c.Timezone = envOrDefault(envTimezone, c.Timezone)
	c.WindowDays = intEnvOrDefault(envWindowDays, c.WindowDays)
	c.Log.Level = envOrDefault(envLogLevel, c.Log.Level)
	c.Log.Format = envOrDefault(envLogFormat, c.Log.Format)
	c.Upstream.applyEnv()
	c.Metrics.applyEnv()
}

// Validate reports the first setting that cannot drive a run.
func (c Config) Validate() error {
	switch c.Source {
	case SourceWildtrails, SourceFixture:
	default:
		return fmt.Errorf("config: unknown source %q", c.Source)
	}
	switch c.Format {
	case output.FormatCSV, output.FormatJSON:
	default:
		return fmt.Errorf("config: unknown output format %q", c.Format)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.WindowDays <= 0 {
		return fmt.Errorf("config: window_days must be positive, got %d", c.WindowDays)
	}
	return c.Upstream.validate()
}

// Location resolves Timezone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
