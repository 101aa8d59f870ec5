// Package config loads the tplfuncs command configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/unijord/tplfuncs/pkg/temporal"
)

const (
	EngineCEL = "cel"
	EngineHCL = "hcl"
)

var (
	// ErrInvalidConfig is returned by Validate.
	ErrInvalidConfig = errors.New("invalid config")
)

// Config is the command configuration. Every field may be overridden by a
// flag of the same name.
type Config struct {
	// Now is the reference time for date builtins (empty = wall clock).
	Now string `yaml:"now"`
	// DateLayout is the default output layout of iso_to_utc and date
	// custom fields. Patterns containing % are strftime patterns.
	DateLayout string `yaml:"date_layout"`
	// Engine selects the expression language: cel or hcl.
	Engine string `yaml:"engine"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// Vars are exposed to expressions as top-level variables.
	Vars map[string]any `yaml:"vars"`
}

func DefaultConfig() *Config {
	return &Config{
		DateLayout: temporal.Layout,
		Engine:     EngineCEL,
		LogLevel:   "info",
	}
}

func (c *Config) Validate() error {
	switch c.Engine {
	case EngineCEL, EngineHCL:
	default:
		return fmt.Errorf("%w: engine must be %s or %s, got %q", ErrInvalidConfig, EngineCEL, EngineHCL, c.Engine)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Now != "" {
		if _, err := temporal.Parse(c.Now); err != nil {
			return fmt.Errorf("%w: now: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

// LoadFromFile reads a YAML file on top of DefaultConfig.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// LoadVars reads a YAML or JSON document of top-level variables.
func LoadVars(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vars file: %w", err)
	}

	var vars map[string]any
	if err := yaml.Unmarshal(data, &vars); err != nil {
		return nil, fmt.Errorf("failed to parse vars file: %w", err)
	}
	if vars == nil {
		vars = map[string]any{}
	}
	return vars, nil
}

// MergeVars adds vars to c.Vars; vars take precedence.
func (c *Config) MergeVars(vars map[string]any) {
	if len(vars) == 0 {
		return
	}
	if c.Vars == nil {
		c.Vars = make(map[string]any, len(vars))
	}
	for k, v := range vars {
		c.Vars[k] = v
	}
}

func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, s)
}
