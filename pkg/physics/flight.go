// Package physics advances a hovering craft through one simulation tick:
// speed easing, turning, altitude, attitude smoothing and idle hover.
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-skyrunner/pkg/control"
)

// FlightConfig holds the tuning constants of the flight model.
// Rates are per second and angles are in radians.
type FlightConfig struct {
	MaxSpeed            float64 `json:"maxSpeed" yaml:"maxSpeed"`
	Acceleration        float64 `json:"acceleration" yaml:"acceleration"`
	Deceleration        float64 `json:"deceleration" yaml:"deceleration"`
	TurnRate            float64 `json:"turnRate" yaml:"turnRate"`
	MaxBankAngle        float64 `json:"maxBankAngle" yaml:"maxBankAngle"`
	BankingSmoothness   float64 `json:"bankingSmoothness" yaml:"bankingSmoothness"`
	MinHeight           float64 `json:"minHeight" yaml:"minHeight"`
	MaxHeight           float64 `json:"maxHeight" yaml:"maxHeight"`
	VerticalSpeed       float64 `json:"verticalSpeed" yaml:"verticalSpeed"`
	MaxPitchAngle       float64 `json:"maxPitchAngle" yaml:"maxPitchAngle"`
	PitchSmoothness     float64 `json:"pitchSmoothness" yaml:"pitchSmoothness"`
	MinSpeedForVertical float64 `json:"minSpeedForVertical" yaml:"minSpeedForVertical"`
	TurnPitchMultiplier float64 `json:"turnPitchMultiplier" yaml:"turnPitchMultiplier"`
	MoveDeadZone        float64 `json:"moveDeadZone" yaml:"moveDeadZone"`
	HoverThreshold      float64 `json:"hoverThreshold" yaml:"hoverThreshold"`
	HoverSpeed          float64 `json:"hoverSpeed" yaml:"hoverSpeed"`
	HoverHeight         float64 `json:"hoverHeight" yaml:"hoverHeight"`
}

// DefaultFlightConfig returns the stock flight model.
func DefaultFlightConfig() FlightConfig {
	return FlightConfig{
		MaxSpeed:            200,
		Acceleration:        30,
		Deceleration:        25,
		TurnRate:            1,
		MaxBankAngle:        0.5,
		BankingSmoothness:   3,
		MinHeight:           2,
		MaxHeight:           500,
		VerticalSpeed:       15,
		MaxPitchAngle:       0.6,
		PitchSmoothness:     3,
		MinSpeedForVertical: 25,
		TurnPitchMultiplier: 0.5,
		MoveDeadZone:        0.1,
		HoverThreshold:      5,
		HoverSpeed:          1.5,
		HoverHeight:         0.2,
	}
}

// Hovering reports whether a craft moving at speed is slow enough to idle-hover.
func (c FlightConfig) Hovering(speed float64) bool {
	return math.Abs(speed) < c.HoverThreshold
}

// CraftState is the full kinematic state of one craft.
type CraftState struct {
	Position mgl64.Vec3 `json:"position"`
	Heading  float64    `json:"heading"` // radians, [0, 2π)
	Pitch    float64    `json:"pitch"`
	Bank     float64    `json:"bank"`
	Speed    float64    `json:"speed"` // negative when reversing
	Height   float64    `json:"height"`
}

// InitialState places a craft at rest on the runway at minimum height.
func InitialState(cfg FlightConfig) CraftState {
	return CraftState{
		Position: mgl64.Vec3{0, cfg.MinHeight, 200},
		Height:   cfg.MinHeight,
	}
}

// Transform is the pose handed to renderers.
type Transform struct {
	Position    mgl64.Vec3 `json:"position"`
	Orientation mgl64.Quat `json:"orientation"`
}

// SanitizeDelta maps a negative or non-finite frame delta to zero.
func SanitizeDelta(delta float64) float64 {
	if math.IsNaN(delta) || math.IsInf(delta, 0) || delta < 0 {
		return 0
	}
	return delta
}

// WrapAngle maps an angle in radians into [0, 2π).
func WrapAngle(angle float64) float64 {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return 0
	}
	angle = math.Mod(angle, 2*math.Pi)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	// Adding 2π to a tiny negative remainder can round up to 2π itself.
	if angle >= 2*math.Pi {
		angle = 0
	}
	return angle
}

// Tick advances state by delta seconds under intent and returns the new
// state with the pose to render. elapsed is process-wide time in seconds
// and only drives the hover overlay.
func Tick(cfg FlightConfig, state CraftState, intent control.Intent, delta, elapsed float64) (CraftState, Transform) {
	dt := SanitizeDelta(delta)

	state = Integrate(cfg, state, intent, dt)
	orientation := ComposeOrientation(state.Heading, state.Pitch, state.Bank)
	state.Position = AdvancePosition(cfg, state, dt)

	y, tilt := ApplyHover(cfg, state.Height, state.Speed, elapsed)
	state.Position[1] = y
	orientation = orientation.Mul(tilt)

	return state, Transform{Position: state.Position, Orientation: orientation}
}
