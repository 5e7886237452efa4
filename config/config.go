// Package config loads the runtime settings of a relm application from
// YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the settings of an application.
type Config struct {
	// Debug lowers the slow update threshold to one frame and enables
	// debug logging unless a level is set.
	Debug bool `yaml:"debug"`
	// SlowUpdate overrides the slow update threshold. Negative disables
	// the warning.
	SlowUpdate time.Duration `yaml:"slow_update"`
	Log        Log           `yaml:"log"`
	Metrics    Metrics       `yaml:"metrics"`
}

type Log struct {
	Level  string `yaml:"level"`  // debug, info, warn or error
	Format string `yaml:"format"` // text or json
}

type Metrics struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
}

const (
	slowUpdateDefault = 200 * time.Millisecond
	slowUpdateDebug   = 16 * time.Millisecond
)

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{
		Log:     Log{Format: "text"},
		Metrics: Metrics{Namespace: "relm"},
	}
}

// Load reads the YAML file at path over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with the RELM_* variables found by lookup,
// usually os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("RELM_DEBUG"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: RELM_DEBUG: %w", err)
		}
		c.Debug = b
	}
	if v, ok := lookup("RELM_LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := lookup("RELM_LOG_FORMAT"); ok {
		c.Log.Format = v
	}
	if v, ok := lookup("RELM_SLOW_UPDATE"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: RELM_SLOW_UPDATE: %w", err)
		}
		c.SlowUpdate = d
	}
	return nil
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("config: unknown log level %q", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("config: unknown log format %q", c.Log.Format))
	}
	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		errs = append(errs, errors.New("config: metrics enabled without a namespace"))
	}
	return errors.Join(errs...)
}

// SlowUpdateThreshold returns the duration above which an update is
// reported as slow. Zero means disabled.
func (c *Config) SlowUpdateThreshold() time.Duration {
	switch {
	case c.SlowUpdate < 0:
		return 0
	case c.SlowUpdate > 0:
		return c.SlowUpdate
	case c.Debug:
		return slowUpdateDebug
	}
	return slowUpdateDefault
}

// LogLevel returns the configured level. Without one it is debug in
// debug mode and info otherwise.
func (c *Config) LogLevel() string {
	switch {
	case c.Log.Level != "":
		return c.Log.Level
	case c.Debug:
		return "debug"
	}
	return "info"
}
