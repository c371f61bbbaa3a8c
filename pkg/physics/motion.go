package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-skyrunner/pkg/control"
)

// Integrate advances speed, heading, height, bank and pitch by one tick.
// Position is left untouched; see AdvancePosition.
func Integrate(cfg FlightConfig, state CraftState, intent control.Intent, delta float64) CraftState {
	dt := SanitizeDelta(delta)

	// Speed eases toward the throttle target. Braking and powering up use
	// different rates.
	targetSpeed := throttleTarget(cfg, intent)
	if state.Speed < targetSpeed {
		state.Speed = math.Min(targetSpeed, state.Speed+cfg.Acceleration*dt)
	} else if state.Speed > targetSpeed {
		state.Speed = math.Max(targetSpeed, state.Speed-cfg.Deceleration*dt)
	}

	// Turning
	left, right := intent.Has(control.TurnLeft), intent.Has(control.TurnRight)
	turning := left != right
	targetBank := 0.0
	if turning {
		if left {
			state.Heading += cfg.TurnRate * dt
			targetBank = cfg.MaxBankAngle
		} else {
			state.Heading -= cfg.TurnRate * dt
			targetBank = -cfg.MaxBankAngle
		}
	}
	state.Heading = WrapAngle(state.Heading)

	// Climbing needs forward momentum; descending only needs room below.
	pitchMultiplier := 1.0
	if turning {
		pitchMultiplier = cfg.TurnPitchMultiplier
	}
	canAscend := math.Abs(state.Speed) > cfg.MinSpeedForVertical
	canDescend := state.Height > cfg.MinHeight

	targetPitch := 0.0
	heightChange := 0.0
	if intent.Has(control.Ascend) && canAscend {
		heightChange = cfg.VerticalSpeed * dt
		targetPitch = cfg.MaxPitchAngle * pitchMultiplier
	}
	if intent.Has(control.Descend) && canDescend {
		heightChange = -cfg.VerticalSpeed * dt
		targetPitch = -cfg.MaxPitchAngle * pitchMultiplier
	}

	state.Height += heightChange
	if state.Height < cfg.MinHeight {
		state.Height = cfg.MinHeight
		targetPitch = 0
	} else if state.Height > cfg.MaxHeight {
		state.Height = cfg.MaxHeight
	}

	// First-order approach toward the target attitude, not a clamp: with
	// smoothness*dt > 1 the angle overshoots before settling.
	state.Bank += (targetBank - state.Bank) * cfg.BankingSmoothness * dt
	state.Pitch += (targetPitch - state.Pitch) * cfg.PitchSmoothness * dt

	return state
}

func throttleTarget(cfg FlightConfig, intent control.Intent) float64 {
	forward, backward := intent.Has(control.Forward), intent.Has(control.Backward)
	switch {
	case forward && !backward:
		return cfg.MaxSpeed
	case backward && !forward:
		return -cfg.MaxSpeed
	default:
		return 0
	}
}

// AdvancePosition moves the craft across the ground plane along its heading.
// Pitch and bank never affect travel; the vertical coordinate is left as is.
func AdvancePosition(cfg FlightConfig, state CraftState, delta float64) mgl64.Vec3 {
	dt := SanitizeDelta(delta)
	pos := state.Position
	if math.Abs(state.Speed) <= cfg.MoveDeadZone {
		return pos
	}

	step := -state.Speed * dt
	pos[0] += math.Sin(state.Heading) * step
	pos[2] += math.Cos(state.Heading) * step
	return pos
}

// Forward returns the unit travel direction for a heading at positive speed.
func Forward(heading float64) mgl64.Vec3 {
	return mgl64.Vec3{-math.Sin(heading), 0, -math.Cos(heading)}
}
