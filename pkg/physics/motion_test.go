package physics

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-skyrunner/pkg/control"
)

const eps = 1e-9

// hold integrates intent for total seconds in equal steps.
func hold(cfg FlightConfig, state CraftState, intent control.Intent, total float64, steps int) CraftState {
	dt := total / float64(steps)
	for i := 0; i < steps; i++ {
		state = Integrate(cfg, state, intent, dt)
	}
	return state
}

func TestIntegrate_ThrottleTarget(t *testing.T) {
	cfg := DefaultFlightConfig()
	tests := []struct {
		name   string
		intent control.Intent
		want   float64
	}{
		{"Forward", control.IntentOf(control.Forward), 200},
		{"Backward", control.IntentOf(control.Backward), -200},
		{"Both cancel", control.IntentOf(control.Forward, control.Backward), 0},
		{"Neither", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, throttleTarget(cfg, tt.intent))
		})
	}
}

func TestIntegrate_Acceleration(t *testing.T) {
	cfg := DefaultFlightConfig()

	// S1: one second of forward throttle from rest.
	state := hold(cfg, CraftState{Height: cfg.MinHeight}, control.IntentOf(control.Forward), 1.0, 60)
	assert.InDelta(t, 30.0, state.Speed, eps)

	// Reverse uses the deceleration rate while speed is above target.
	state = Integrate(cfg, CraftState{Height: cfg.MinHeight}, control.IntentOf(control.Backward), 1.0)
	assert.InDelta(t, -25.0, state.Speed, eps)
}

func TestIntegrate_SpeedEasesToTarget(t *testing.T) {
	cfg := DefaultFlightConfig()

	t.Run("BrakeStopsAtZero", func(t *testing.T) {
		state := Integrate(cfg, CraftState{Speed: 10, Height: cfg.MinHeight}, 0, 1.0)
		assert.Equal(t, 0.0, state.Speed)
	})

	t.Run("ReverseRecoversToZero", func(t *testing.T) {
		state := Integrate(cfg, CraftState{Speed: -10, Height: cfg.MinHeight}, 0, 1.0)
		assert.Equal(t, 0.0, state.Speed)
	})

	t.Run("CapsAtMaxSpeed", func(t *testing.T) {
		state := Integrate(cfg, CraftState{Speed: 195, Height: cfg.MinHeight}, control.IntentOf(control.Forward), 1.0)
		assert.Equal(t, cfg.MaxSpeed, state.Speed)
	})

	t.Run("CancelledThrottleBrakes", func(t *testing.T) {
		both := control.IntentOf(control.Forward, control.Backward)
		state := Integrate(cfg, CraftState{Speed: 50, Height: cfg.MinHeight}, both, 1.0)
		assert.InDelta(t, 25.0, state.Speed, eps)
	})
}

func TestIntegrate_Turning(t *testing.T) {
	cfg := DefaultFlightConfig()

	t.Run("LeftIncreasesHeading", func(t *testing.T) {
		state := Integrate(cfg, CraftState{Height: cfg.MinHeight}, control.IntentOf(control.TurnLeft), 0.1)
		assert.InDelta(t, 0.1, state.Heading, eps)
		assert.Greater(t, state.Bank, 0.0)
	})

	t.Run("RightWrapsBelowZero", func(t *testing.T) {
		state := Integrate(cfg, CraftState{Height: cfg.MinHeight}, control.IntentOf(control.TurnRight), 0.1)
		assert.InDelta(t, 2*math.Pi-0.1, state.Heading, eps)
		assert.Less(t, state.Bank, 0.0)
	})

	t.Run("BothLevelOut", func(t *testing.T) {
		start := CraftState{Heading: 1, Bank: 0.4, Height: cfg.MinHeight}
		state := Integrate(cfg, start, control.IntentOf(control.TurnLeft, control.TurnRight), 0.1)
		assert.Equal(t, 1.0, state.Heading)
		assert.InDelta(t, 0.4-0.4*3*0.1, state.Bank, eps)
	})
}

func TestIntegrate_TurnLeftHalfCircle(t *testing.T) {
	cfg := DefaultFlightConfig()

	// S4: π seconds of left turn at 1 rad/s.
	state := hold(cfg, CraftState{Height: cfg.MinHeight}, control.IntentOf(control.TurnLeft), math.Pi, 1000)

	assert.InDelta(t, math.Pi, state.Heading, 1e-9)
	assert.Less(t, state.Bank, cfg.MaxBankAngle)
	assert.Greater(t, state.Bank, 0.49)
}

func TestIntegrate_VerticalGating(t *testing.T) {
	cfg := DefaultFlightConfig()

	t.Run("AscendTooSlow", func(t *testing.T) {
		for _, speed := range []float64{0, 25, -20} {
			start := CraftState{Speed: speed, Height: 100}
			state := Integrate(cfg, start, control.IntentOf(control.Ascend), 0.1)
			assert.Equal(t, 100.0, state.Height, "speed %v", speed)
			assert.Equal(t, 0.0, state.Pitch, "speed %v", speed)
		}
	})

	t.Run("DescendAtFloor", func(t *testing.T) {
		start := CraftState{Height: cfg.MinHeight}
		state := Integrate(cfg, start, control.IntentOf(control.Descend), 0.1)
		assert.Equal(t, cfg.MinHeight, state.Height)
	})

	t.Run("ClimbWithMomentum", func(t *testing.T) {
		// S2: already above the climb gate and keeping throttle on.
		intent := control.IntentOf(control.Forward, control.Ascend)
		state := hold(cfg, CraftState{Speed: 30, Height: cfg.MinHeight}, intent, 1.0, 100)
		assert.InDelta(t, 17.0, state.Height, 1e-9)
		assert.Greater(t, state.Pitch, 0.0)
	})

	t.Run("DescendAtRestStaysOnFloor", func(t *testing.T) {
		// S3
		state := hold(cfg, CraftState{Height: cfg.MinHeight}, control.IntentOf(control.Descend), 1.0, 60)
		assert.Equal(t, cfg.MinHeight, state.Height)
		assert.Equal(t, 0.0, state.Pitch)
	})

	t.Run("DescendWithoutMomentum", func(t *testing.T) {
		state := Integrate(cfg, CraftState{Height: 50}, control.IntentOf(control.Descend), 1.0)
		assert.InDelta(t, 35.0, state.Height, eps)
		assert.InDelta(t, -cfg.MaxPitchAngle*cfg.PitchSmoothness, state.Pitch, eps)
	})

	t.Run("DescendWinsOverAscend", func(t *testing.T) {
		intent := control.IntentOf(control.Forward, control.Ascend, control.Descend)
		state := Integrate(cfg, CraftState{Speed: 100, Height: 50}, intent, 0.1)
		assert.InDelta(t, 48.5, state.Height, eps)
		assert.Less(t, state.Pitch, 0.0)
	})

	t.Run("FloorLevelsPitch", func(t *testing.T) {
		start := CraftState{Height: cfg.MinHeight + 0.5, Pitch: -0.3}
		state := Integrate(cfg, start, control.IntentOf(control.Descend), 0.1)
		assert.Equal(t, cfg.MinHeight, state.Height)
		// Target pitch is forced to 0 so the nose comes back up.
		assert.InDelta(t, -0.3+0.3*3*0.1, state.Pitch, eps)
	})

	t.Run("CeilingClamp", func(t *testing.T) {
		intent := control.IntentOf(control.Forward, control.Ascend)
		state := Integrate(cfg, CraftState{Speed: 100, Height: cfg.MaxHeight - 0.5}, intent, 0.1)
		assert.Equal(t, cfg.MaxHeight, state.Height)
	})
}

func TestIntegrate_TurningHalvesPitch(t *testing.T) {
	cfg := DefaultFlightConfig()
	start := CraftState{Speed: 100, Height: 50}

	straight := Integrate(cfg, start, control.IntentOf(control.Forward, control.Ascend), 0.1)
	turning := Integrate(cfg, start, control.IntentOf(control.Forward, control.Ascend, control.TurnLeft), 0.1)

	assert.InDelta(t, straight.Pitch/2, turning.Pitch, eps)
	assert.Equal(t, straight.Height, turning.Height)
}

func TestIntegrate_SmoothingOvershoots(t *testing.T) {
	cfg := DefaultFlightConfig()

	// smoothness*dt = 1.5 steps past the target.
	state := Integrate(cfg, CraftState{Height: cfg.MinHeight}, control.IntentOf(control.TurnLeft), 0.5)
	assert.InDelta(t, 0.75, state.Bank, eps)
}

func TestIntegrate_BadDelta(t *testing.T) {
	cfg := DefaultFlightConfig()
	start := CraftState{Heading: 1, Speed: 50, Height: 40, Bank: 0.1, Pitch: 0.1}
	all := control.IntentOf(control.Codes()...)

	for _, delta := range []float64{-1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		state := Integrate(cfg, start, all, delta)
		assert.Equal(t, start, state, "delta %v", delta)
	}
}

func TestIntegrate_Invariants(t *testing.T) {
	cfg := DefaultFlightConfig()
	rng := rand.New(rand.NewPCG(1, 2))
	state := InitialState(cfg)

	for i := 0; i < 20000; i++ {
		intent := control.Intent(rng.IntN(64))
		delta := rng.Float64() * 0.1
		state = Integrate(cfg, state, intent, delta)

		require.GreaterOrEqual(t, state.Heading, 0.0)
		require.Less(t, state.Heading, 2*math.Pi)
		require.GreaterOrEqual(t, state.Height, cfg.MinHeight)
		require.LessOrEqual(t, state.Height, cfg.MaxHeight)
		require.LessOrEqual(t, math.Abs(state.Speed), cfg.MaxSpeed)
		require.LessOrEqual(t, math.Abs(state.Bank), cfg.MaxBankAngle+eps)
	}
}

func TestAdvancePosition(t *testing.T) {
	cfg := DefaultFlightConfig()

	tests := []struct {
		name  string
		state CraftState
		want  [3]float64
	}{
		{"ForwardAtHeadingZero", CraftState{Speed: 10}, [3]float64{0, 0, -10}},
		{"ForwardAtQuarterTurn", CraftState{Speed: 10, Heading: math.Pi / 2}, [3]float64{-10, 0, 0}},
		{"Reverse", CraftState{Speed: -10}, [3]float64{0, 0, 10}},
		{"DeadZone", CraftState{Speed: 0.1}, [3]float64{0, 0, 0}},
		{"PitchIgnored", CraftState{Speed: 10, Pitch: 0.6, Bank: 0.5}, [3]float64{0, 0, -10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := AdvancePosition(cfg, tt.state, 1.0)
			for i := range pos {
				assert.InDelta(t, tt.want[i], pos[i], eps, "component %d", i)
			}
		})
	}
}

func TestForward_MatchesAdvance(t *testing.T) {
	cfg := DefaultFlightConfig()
	for _, h := range []float64{0, 0.7, 2, 4.5} {
		pos := AdvancePosition(cfg, CraftState{Speed: 1, Heading: h}, 1)
		dir := Forward(h)
		assert.InDelta(t, dir.X(), pos.X(), eps)
		assert.InDelta(t, dir.Z(), pos.Z(), eps)
	}
}

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{2 * math.Pi, 0},
		{-0.5, 2*math.Pi - 0.5},
		{5 * math.Pi, math.Pi},
		{-1e-18, 0},
		{math.NaN(), 0},
	}

	for _, tt := range tests {
		got := WrapAngle(tt.in)
		assert.InDelta(t, tt.want, got, eps, "WrapAngle(%v)", tt.in)
		assert.Less(t, got, 2*math.Pi)
	}
}
