package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// World axes. Y is up; a craft at heading 0 faces -Z.
var (
	axisX = mgl64.Vec3{1, 0, 0}
	axisY = mgl64.Vec3{0, 1, 0}
	axisZ = mgl64.Vec3{0, 0, 1}
)

// ComposeOrientation builds the craft attitude from scratch as
// yaw(heading about Y) * pitch(about local X) * roll(bank about local Z).
// The order is fixed; changing it changes how bank and pitch interact.
func ComposeOrientation(heading, pitch, bank float64) mgl64.Quat {
	yaw := mgl64.QuatRotate(heading, axisY)
	pitchQ := mgl64.QuatRotate(pitch, axisX)
	roll := mgl64.QuatRotate(bank, axisZ)
	return yaw.Mul(pitchQ).Mul(roll)
}

// EulerXYZ returns the rotation for intrinsic X, then Y, then Z angles.
func EulerXYZ(x, y, z float64) mgl64.Quat {
	return mgl64.QuatRotate(x, axisX).
		Mul(mgl64.QuatRotate(y, axisY)).
		Mul(mgl64.QuatRotate(z, axisZ))
}

// HoverTilt returns the small idle wobble applied on top of the attitude at
// elapsed seconds.
func HoverTilt(cfg FlightConfig, elapsed float64) mgl64.Quat {
	tiltX := math.Sin(elapsed*cfg.HoverSpeed*0.3) * 0.01
	tiltZ := math.Sin(elapsed*cfg.HoverSpeed*0.5) * 0.03
	return EulerXYZ(tiltX, 0, tiltZ)
}
