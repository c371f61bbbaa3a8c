package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestApplyHover_Bound(t *testing.T) {
	cfg := DefaultFlightConfig()
	bound := cfg.HoverHeight * 1.2

	// S5: several seconds at rest.
	sawAbove, sawBelow := false, false
	for elapsed := 0.0; elapsed < 10; elapsed += 0.005 {
		y, _ := ApplyHover(cfg, cfg.MinHeight, 0, elapsed)
		offset := y - cfg.MinHeight
		if math.Abs(offset) > bound+eps {
			t.Fatalf("Hover offset %f exceeds %f at t=%f", offset, bound, elapsed)
		}
		sawAbove = sawAbove || offset > 0.1
		sawBelow = sawBelow || offset < -0.1
	}

	assert.True(t, sawAbove, "expected upward drift")
	assert.True(t, sawBelow, "expected downward drift")
}

func TestApplyHover_NotHovering(t *testing.T) {
	cfg := DefaultFlightConfig()

	for _, speed := range []float64{5, -5, 30, -200} {
		y, tilt := ApplyHover(cfg, 42, speed, 3.3)
		assert.Equal(t, 42.0, y, "speed %v", speed)
		assert.Equal(t, mgl64.QuatIdent(), tilt, "speed %v", speed)
	}
}

func TestApplyHover_Values(t *testing.T) {
	cfg := DefaultFlightConfig()
	elapsed := 1.7

	y, tilt := ApplyHover(cfg, 10, 4.9, elapsed)

	primary := math.Sin(elapsed*1.5) * 0.2
	secondary := math.Sin(elapsed*1.5*2.5) * 0.04
	assert.InDelta(t, 10+primary+secondary, y, eps)

	tiltX := math.Sin(elapsed*1.5*0.3) * 0.01
	tiltZ := math.Sin(elapsed*1.5*0.5) * 0.03
	assertQuat(t, EulerXYZ(tiltX, 0, tiltZ), tilt)
}

func TestApplyHover_FrameRateIndependent(t *testing.T) {
	cfg := DefaultFlightConfig()

	// The same wall time reached through different frame rates lands on
	// the same phase.
	a := InitialState(cfg)
	b := InitialState(cfg)
	var ta, tb Transform
	elapsed := 0.0
	for i := 0; i < 30; i++ {
		elapsed += 1.0 / 30
		a, ta = Tick(cfg, a, 0, 1.0/30, elapsed)
	}
	for i := 0; i < 144; i++ {
		b, tb = Tick(cfg, b, 0, 1.0/144, elapsed)
	}

	assert.InDelta(t, ta.Position.Y(), tb.Position.Y(), eps)
	assertQuat(t, ta.Orientation, tb.Orientation)
}

func TestApplyHover_NonFiniteClock(t *testing.T) {
	cfg := DefaultFlightConfig()
	y, tilt := ApplyHover(cfg, 5, 0, math.NaN())
	assert.Equal(t, 5.0, y)
	assertQuat(t, mgl64.QuatIdent(), tilt)
}
