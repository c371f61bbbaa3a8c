package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Secondary hover wave relative to the primary one.
const (
	secondaryHoverRate      = 2.5
	secondaryHoverAmplitude = 0.2
)

// HoverOffset returns the vertical idle drift at elapsed seconds. Its
// magnitude never exceeds HoverHeight*(1+secondaryHoverAmplitude).
func HoverOffset(cfg FlightConfig, elapsed float64) float64 {
	primary := math.Sin(elapsed*cfg.HoverSpeed) * cfg.HoverHeight
	secondary := math.Sin(elapsed*cfg.HoverSpeed*secondaryHoverRate) * (cfg.HoverHeight * secondaryHoverAmplitude)
	return primary + secondary
}

// ApplyHover returns the rendered vertical coordinate and an extra tilt for
// a craft at height moving at speed. Outside the hover regime it returns
// height unchanged and the identity rotation.
//
// elapsed is wall time, not accumulated frame deltas.
func ApplyHover(cfg FlightConfig, height, speed, elapsed float64) (float64, mgl64.Quat) {
	if !cfg.Hovering(speed) {
		return height, mgl64.QuatIdent()
	}
	if math.IsNaN(elapsed) || math.IsInf(elapsed, 0) {
		elapsed = 0
	}
	return height + HoverOffset(cfg, elapsed), HoverTilt(cfg, elapsed)
}
