// Package validation checks flight tuning, camera placement and autopilot
// scripts before they reach the simulator.
package validation

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/opd-ai/go-skyrunner/pkg/camera"
	"github.com/opd-ai/go-skyrunner/pkg/control"
	"github.com/opd-ai/go-skyrunner/pkg/physics"
)

// Limits for simulation settings
const (
	MinFrameRate = 1
	MaxFrameRate = 1000
)

// ValidateFlightConfig reports every out-of-range tuning constant at once.
func ValidateFlightConfig(cfg physics.FlightConfig) error {
	var errs []error

	positive := []struct {
		name  string
		value float64
	}{
		{"maxSpeed", cfg.MaxSpeed},
		{"acceleration", cfg.Acceleration},
		{"deceleration", cfg.Deceleration},
		{"turnRate", cfg.TurnRate},
		{"bankingSmoothness", cfg.BankingSmoothness},
		{"pitchSmoothness", cfg.PitchSmoothness},
		{"verticalSpeed", cfg.VerticalSpeed},
		{"hoverSpeed", cfg.HoverSpeed},
	}
	for _, p := range positive {
		if err := requirePositive(p.name, p.value); err != nil {
			errs = append(errs, err)
		}
	}

	nonNegative := []struct {
		name  string
		value float64
	}{
		{"maxBankAngle", cfg.MaxBankAngle},
		{"maxPitchAngle", cfg.MaxPitchAngle},
		{"minHeight", cfg.MinHeight},
		{"minSpeedForVertical", cfg.MinSpeedForVertical},
		{"turnPitchMultiplier", cfg.TurnPitchMultiplier},
		{"moveDeadZone", cfg.MoveDeadZone},
		{"hoverThreshold", cfg.HoverThreshold},
		{"hoverHeight", cfg.HoverHeight},
	}
	for _, n := range nonNegative {
		if err := requireNonNegative(n.name, n.value); err != nil {
			errs = append(errs, err)
		}
	}

	if !finite(cfg.MaxHeight) || cfg.MaxHeight <= cfg.MinHeight {
		errs = append(errs, fmt.Errorf("maxHeight (%g) must be greater than minHeight (%g)", cfg.MaxHeight, cfg.MinHeight))
	}
	if cfg.MaxBankAngle >= math.Pi/2 {
		errs = append(errs, fmt.Errorf("maxBankAngle too large: %g (must be below π/2)", cfg.MaxBankAngle))
	}
	if cfg.MaxPitchAngle >= math.Pi/2 {
		errs = append(errs, fmt.Errorf("maxPitchAngle too large: %g (must be below π/2)", cfg.MaxPitchAngle))
	}
	if cfg.MinSpeedForVertical >= cfg.MaxSpeed && cfg.MaxSpeed > 0 {
		errs = append(errs, fmt.Errorf("minSpeedForVertical (%g) must be below maxSpeed (%g) or the craft can never climb", cfg.MinSpeedForVertical, cfg.MaxSpeed))
	}

	return errors.Join(errs...)
}

// ValidateCameraConfig checks that the camera sits somewhere other than on the craft.
func ValidateCameraConfig(cfg camera.Config) error {
	for i, v := range cfg.Offset {
		if !finite(v) {
			return fmt.Errorf("camera offset component %d is not finite: %g", i, v)
		}
	}
	if cfg.Offset.Len() == 0 {
		return errors.New("camera offset cannot be zero")
	}
	return nil
}

// ValidateFrameRate checks a simulation tick rate in frames per second.
func ValidateFrameRate(fps int) error {
	if fps < MinFrameRate || fps > MaxFrameRate {
		return fmt.Errorf("invalid frame rate: %d (must be %d-%d)", fps, MinFrameRate, MaxFrameRate)
	}
	return nil
}

// ValidateKeyBindings checks that every binding names a known control.
func ValidateKeyBindings(bindings map[string]string) error {
	var errs []error
	for key, name := range bindings {
		if strings.TrimSpace(key) == "" {
			errs = append(errs, fmt.Errorf("empty key bound to %q", name))
			continue
		}
		if _, ok := control.ParseCode(name); !ok {
			errs = append(errs, fmt.Errorf("unknown control %q bound to key %q", name, key))
		}
	}
	return errors.Join(errs...)
}

// ValidateScriptEntry checks one autopilot step.
func ValidateScriptEntry(at float64, action, controlName string) error {
	if !finite(at) || at < 0 {
		return fmt.Errorf("script time must be a non-negative number of seconds, got %g", at)
	}
	switch strings.ToLower(action) {
	case "press", "release":
	default:
		return fmt.Errorf("unknown script action %q (must be press or release)", action)
	}
	if _, ok := control.ParseCode(controlName); !ok {
		return fmt.Errorf("unknown control %q", controlName)
	}
	return nil
}

func requirePositive(name string, v float64) error {
	if !finite(v) || v <= 0 {
		return fmt.Errorf("%s must be positive, got %g", name, v)
	}
	return nil
}

func requireNonNegative(name string, v float64) error {
	if !finite(v) || v < 0 {
		return fmt.Errorf("%s cannot be negative, got %g", name, v)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
