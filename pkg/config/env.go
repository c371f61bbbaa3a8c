package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// EnvPrefix starts every environment variable the simulator reads.
const EnvPrefix = "SKYRUNNER_"

// LoadDotEnv loads variables from .env files into the process environment.
// Missing files are skipped and variables already set are never overwritten.
// With no arguments it looks for ".env" in the working directory.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides config fields from SKYRUNNER_* environment variables.
func ApplyEnv(config *Config) error {
	floats := map[string]*float64{
		"MAX_SPEED":              &config.Flight.MaxSpeed,
		"ACCELERATION":           &config.Flight.Acceleration,
		"DECELERATION":           &config.Flight.Deceleration,
		"TURN_RATE":              &config.Flight.TurnRate,
		"MAX_BANK_ANGLE":         &config.Flight.MaxBankAngle,
		"BANKING_SMOOTHNESS":     &config.Flight.BankingSmoothness,
		"MIN_HEIGHT":             &config.Flight.MinHeight,
		"MAX_HEIGHT":             &config.Flight.MaxHeight,
		"VERTICAL_SPEED":         &config.Flight.VerticalSpeed,
		"MAX_PITCH_ANGLE":        &config.Flight.MaxPitchAngle,
		"PITCH_SMOOTHNESS":       &config.Flight.PitchSmoothness,
		"MIN_SPEED_FOR_VERTICAL": &config.Flight.MinSpeedForVertical,
		"HOVER_THRESHOLD":        &config.Flight.HoverThreshold,
		"HOVER_SPEED":            &config.Flight.HoverSpeed,
		"HOVER_HEIGHT":           &config.Flight.HoverHeight,
		"DURATION":               &config.Simulation.Duration,
	}

	var errs []error
	for name, field := range floats {
		value, ok := lookupEnv(name)
		if !ok {
			continue
		}
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid %s%s: %w", EnvPrefix, name, err))
			continue
		}
		*field = f
	}

	if value, ok := lookupEnv("FPS"); ok {
		fps, err := strconv.Atoi(value)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid %sFPS: %w", EnvPrefix, err))
		} else {
			config.Simulation.FPS = fps
		}
	}
	if value, ok := lookupEnv("CAMERA_LEVEL_HEIGHT"); ok {
		b, err := strconv.ParseBool(value)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid %sCAMERA_LEVEL_HEIGHT: %w", EnvPrefix, err))
		} else {
			config.Camera.LevelHeight = b
		}
	}
	if value, ok := lookupEnv("LOG_LEVEL"); ok {
		config.Log.Level = value
	}
	if value, ok := lookupEnv("LOG_FILE"); ok {
		config.Log.File = value
	}

	return errors.Join(errs...)
}

func lookupEnv(name string) (string, bool) {
	value, ok := os.LookupEnv(EnvPrefix + name)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}
