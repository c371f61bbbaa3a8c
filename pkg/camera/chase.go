// Package camera derives a chase camera from a craft pose.
package camera

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-skyrunner/pkg/physics"
)

// Config places the camera relative to the craft.
type Config struct {
	// Offset is in craft-local axes: X lateral, Y up, +Z behind the craft.
	Offset mgl64.Vec3 `json:"offset" yaml:"offset,flow"`

	// LevelHeight rotates only the lateral and trailing components and keeps
	// the vertical offset in world space, so camera height ignores pitch
	// and bank.
	LevelHeight bool `json:"levelHeight" yaml:"levelHeight"`
}

// DefaultConfig trails 15 units behind and 2 above the craft.
func DefaultConfig() Config {
	return Config{
		Offset: mgl64.Vec3{0, 2, 15},
	}
}

// State is the camera pose for one frame.
type State struct {
	Position mgl64.Vec3 `json:"position"`
	Target   mgl64.Vec3 `json:"target"`
	Up       mgl64.Vec3 `json:"up"`
}

// View returns the world-to-camera matrix.
func (s State) View() mgl64.Mat4 {
	return mgl64.LookAtV(s.Position, s.Target, s.Up)
}

// Forward returns the unit direction the camera looks along. A camera
// sitting on its target looks down -Z.
func (s State) Forward() mgl64.Vec3 {
	dir := s.Target.Sub(s.Position)
	if dir.Len() == 0 {
		return mgl64.Vec3{0, 0, -1}
	}
	return dir.Normalize()
}

// Follow places the camera behind craft and aims it at the craft position.
// It keeps no state between frames.
func Follow(cfg Config, craft physics.Transform) State {
	orientation := craft.Orientation
	if orientation.Len() == 0 {
		orientation = mgl64.QuatIdent()
	}

	var offset mgl64.Vec3
	if cfg.LevelHeight {
		offset = orientation.Rotate(mgl64.Vec3{cfg.Offset.X(), 0, cfg.Offset.Z()})
		offset[1] = cfg.Offset.Y()
	} else {
		offset = orientation.Rotate(cfg.Offset)
	}

	return State{
		Position: craft.Position.Add(offset),
		Target:   craft.Position,
		Up:       mgl64.Vec3{0, 1, 0},
	}
}
