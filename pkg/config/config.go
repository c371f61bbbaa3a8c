// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/opd-ai/go-skyrunner/pkg/camera"
	"github.com/opd-ai/go-skyrunner/pkg/control"
	"github.com/opd-ai/go-skyrunner/pkg/physics"
	"github.com/opd-ai/go-skyrunner/pkg/validation"
)

// Config contains everything needed to run a flight simulation
type Config struct {
	Flight     physics.FlightConfig `json:"flight" yaml:"flight"`
	Camera     camera.Config        `json:"camera" yaml:"camera"`
	Simulation SimulationConfig     `json:"simulation" yaml:"simulation"`
	// Keys maps raw key names to control names. File entries are merged
	// over the default layout.
	Keys   map[string]string `json:"keys" yaml:"keys"`
	Script []ScriptEntry     `json:"script,omitempty" yaml:"script,omitempty"`
	Log    LogConfig         `json:"log" yaml:"log"`
}

// SimulationConfig contains loop settings
type SimulationConfig struct {
	FPS int `json:"fps" yaml:"fps"`
	// Duration in seconds for headless runs; 0 runs until interrupted.
	Duration float64 `json:"duration" yaml:"duration"`
	// TelemetryEvery prints one telemetry line per this many ticks.
	TelemetryEvery int `json:"telemetryEvery" yaml:"telemetryEvery"`
}

// ScriptEntry is one timed autopilot action
type ScriptEntry struct {
	At      float64 `json:"at" yaml:"at"`
	Action  string  `json:"action" yaml:"action"`
	Control string  `json:"control" yaml:"control"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level string `json:"level" yaml:"level"`
	File  string `json:"file,omitempty" yaml:"file,omitempty"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	keys := make(map[string]string)
	for key, code := range control.DefaultKeyMap() {
		keys[key] = code.String()
	}

	return &Config{
		Flight: physics.DefaultFlightConfig(),
		Camera: camera.DefaultConfig(),
		Simulation: SimulationConfig{
			FPS:            60,
			Duration:       0,
			TelemetryEvery: 30,
		},
		Keys: keys,
		Log: LogConfig{
			Level: "INFO",
		},
	}
}

// KeyMap resolves the configured key bindings.
func (c *Config) KeyMap() (control.KeyMap, error) {
	return control.ParseKeyMap(c.Keys)
}

// Validate checks every section and reports all problems together
func (c *Config) Validate() error {
	var errs []error
	if err := validation.ValidateFlightConfig(c.Flight); err != nil {
		errs = append(errs, fmt.Errorf("flight: %w", err))
	}
	if err := validation.ValidateCameraConfig(c.Camera); err != nil {
		errs = append(errs, fmt.Errorf("camera: %w", err))
	}
	if err := validation.ValidateFrameRate(c.Simulation.FPS); err != nil {
		errs = append(errs, fmt.Errorf("simulation: %w", err))
	}
	if c.Simulation.Duration < 0 {
		errs = append(errs, fmt.Errorf("simulation: duration cannot be negative: %g", c.Simulation.Duration))
	}
	if err := validation.ValidateKeyBindings(c.Keys); err != nil {
		errs = append(errs, fmt.Errorf("keys: %w", err))
	}
	for i, e := range c.Script {
		if err := validation.ValidateScriptEntry(e.At, e.Action, e.Control); err != nil {
			errs = append(errs, fmt.Errorf("script[%d]: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

type format int

const (
	formatJSON format = iota
	formatYAML
)

func formatFor(path string) format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML
	default:
		return formatJSON
	}
}

// LoadConfig loads a configuration from a JSON or YAML file, chosen by
// extension. Fields missing from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	switch formatFor(path) {
	case formatYAML:
		err = yaml.Unmarshal(data, config)
	default:
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves a configuration to a JSON or YAML file, chosen by extension
func SaveConfig(config *Config, path string) error {
	if config == nil {
		return errors.New("cannot save nil config")
	}

	var (
		data []byte
		err  error
	)
	switch formatFor(path) {
	case formatYAML:
		data, err = yaml.Marshal(config)
	default:
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load builds the effective configuration: defaults, then the file at path
// if it exists, then .env files, then SKYRUNNER_* environment variables.
// The result is validated.
func Load(path string, envFiles ...string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			config, err = LoadConfig(path)
			if err != nil {
				return nil, err
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat config file: %w", err)
		}
	}

	if err := LoadDotEnv(envFiles...); err != nil {
		return nil, err
	}
	if err := ApplyEnv(config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}
