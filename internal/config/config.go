// Package config loads nodescope settings from defaults, an optional YAML
// file, .env.local and the environment. Command line flags are applied on
// top by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/kpumuk/nodescope/internal/pipeline"
	"github.com/kpumuk/nodescope/internal/series"
	"github.com/kpumuk/nodescope/internal/store"
)

// Environment variables read by Load.
const (
	EnvRedisURL = "NODESCOPE_REDIS_URL"
	EnvLogLevel = "NODESCOPE_LOG_LEVEL"
	EnvData     = "NODESCOPE_DATA"
	EnvLookback = "NODESCOPE_LOOKBACK"
)

// EnvFile is loaded from the working directory when present.
const EnvFile = ".env.local"

// ErrInvalidWindow reports a negative window, bucket or layout setting.
var ErrInvalidWindow = errors.New("invalid window")

// Window is the charting window.
type Window struct {
	Lookback  Duration `yaml:"lookback"`
	MaxPoints int      `yaml:"max_points"`
}

// Log configures logging.
type Log struct {
	Level   string `yaml:"level"`
	File    string `yaml:"file"`
	NoColor bool   `yaml:"no_color"`
}

// Config holds every setting.
type Config struct {
	Redis       string          `yaml:"redis"`
	Data        string          `yaml:"data"`
	Window      Window          `yaml:"window"`
	Bucket      Duration        `yaml:"bucket"`
	Layout      pipeline.Layout `yaml:"layout"`
	Concurrency int             `yaml:"concurrency"`
	Refresh     Duration        `yaml:"refresh"`
	Log         Log             `yaml:"log"`
}

// Default returns the built-in settings.
func Default() Config {
	policy := pipeline.DefaultPolicy()
	return Config{
		Redis: store.DefaultRedisURL,
		Window: Window{
			Lookback:  Duration(policy.Window.Lookback),
			MaxPoints: policy.Window.MaxPoints,
		},
		Layout:      policy.Layout,
		Concurrency: pipeline.DefaultConcurrency,
		Refresh:     Duration(30 * time.Second),
		Log:         Log{Level: "info"},
	}
}

// Load builds the configuration. A missing path skips the file; a path that
// does not exist is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if err := godotenv.Load(EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load %s: %w", EnvFile, err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvRedisURL); ok && v != "" {
		c.Redis = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvData); ok && v != "" {
		c.Data = v
	}
	if v, ok := lookup(EnvLookback); ok && v != "" {
		if err := c.Window.Lookback.Set(v); err != nil {
			return fmt.Errorf("%s: %w", EnvLookback, err)
		}
	}
	return nil
}

// Validate checks the window, bucket and layout settings.
func (c Config) Validate() error {
	switch {
	case c.Window.Lookback < 0:
		return fmt.Errorf("lookback %s: %w", c.Window.Lookback, ErrInvalidWindow)
	case c.Window.MaxPoints < 0:
		return fmt.Errorf("max points %d: %w", c.Window.MaxPoints, ErrInvalidWindow)
	case c.Bucket < 0:
		return fmt.Errorf("bucket %s: %w", c.Bucket, ErrInvalidWindow)
	case c.Layout.Width <= 0 || c.Layout.Height <= 0:
		return fmt.Errorf("layout %dx%d: %w", c.Layout.Width, c.Layout.Height, ErrInvalidWindow)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// Policy returns the chart policy described by the configuration.
func (c Config) Policy() pipeline.Policy {
	return pipeline.Policy{
		Window: series.Window{
			Lookback:  time.Duration(c.Window.Lookback),
			MaxPoints: c.Window.MaxPoints,
		},
		Bucket: time.Duration(c.Bucket),
		Layout: c.Layout,
	}
}

// ParseLevel parses debug, info, warn or error.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("parse log level %q: %w", s, err)
	}
	return level, nil
}
