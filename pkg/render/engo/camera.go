// pkg/render/engo/camera.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-skyrunner/pkg/engine"
)

// CameraSystem centers the 2D engo camera on the ground projection of the
// chase camera, so the view trails behind the craft as it turns.
type CameraSystem struct {
	// Ground-plane point to follow, in world units
	target    mgl64.Vec2
	targetSet bool

	// Pixels per world unit
	scale float32

	// Camera properties
	zoom    float32
	minZoom float32
	maxZoom float32

	// Smooth following
	followSpeed float32
	smoothing   bool

	// Current camera state
	currentPos mgl64.Vec2
}

// NewCameraSystem creates a new camera system
func NewCameraSystem(scale float32) *CameraSystem {
	if scale <= 0 {
		scale = 1
	}
	return &CameraSystem{
		scale:       scale,
		zoom:        1.0,
		minZoom:     0.1,
		maxZoom:     3.0,
		followSpeed: 4.0,
		smoothing:   true,
	}
}

// Add satisfies the ecs.System interface
func (cs *CameraSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	// Not used for camera system
}

// Remove satisfies the ecs.System interface
func (cs *CameraSystem) Remove(basic ecs.BasicEntity) {
	// Not used for camera system
}

// RenderFrame implements engine.Renderer by following the frame's chase
// camera.
func (cs *CameraSystem) RenderFrame(frame engine.Frame) {
	cs.SetTarget(groundProjection(frame.Camera.Position))
}

// Update updates the camera position and zoom
func (cs *CameraSystem) Update(dt float32) {
	cs.handleZoomInput()

	if cs.targetSet {
		cs.updateCameraPosition(dt)
	}

	cs.applyCameraTransform()
}

// handleZoomInput processes zoom-related input
func (cs *CameraSystem) handleZoomInput() {
	if engo.Input == nil {
		return
	}
	if scrollY := engo.Input.Mouse.ScrollY; scrollY != 0 {
		cs.SetZoom(cs.zoom * (1.0 + scrollY*0.1))
	}
	if engo.Input.Button("resetZoom").JustPressed() {
		cs.SetZoom(1.0)
	}
}

// updateCameraPosition moves the camera toward the target
func (cs *CameraSystem) updateCameraPosition(dt float32) {
	if !cs.smoothing {
		cs.currentPos = cs.target
		return
	}

	step := float64(cs.followSpeed) * float64(dt)
	if step > 1 {
		step = 1
	}
	cs.currentPos = cs.currentPos.Add(cs.target.Sub(cs.currentPos).Mul(step))
}

// applyCameraTransform moves the engo camera to the current position
func (cs *CameraSystem) applyCameraTransform() {
	if engo.Mailbox == nil {
		return
	}
	center := cs.toPixels(cs.currentPos)
	engo.Mailbox.Dispatch(common.CameraMessage{Axis: common.XAxis, Value: center.X})
	engo.Mailbox.Dispatch(common.CameraMessage{Axis: common.YAxis, Value: center.Y})
	engo.Mailbox.Dispatch(common.CameraMessage{Axis: common.ZAxis, Value: 1 / cs.zoom})
}

// SetTarget sets the ground point for the camera to follow
func (cs *CameraSystem) SetTarget(target mgl64.Vec2) {
	first := !cs.targetSet
	cs.target = target
	cs.targetSet = true

	if !cs.smoothing || first {
		cs.currentPos = target
	}
}

// ClearTarget clears the camera target
func (cs *CameraSystem) ClearTarget() {
	cs.targetSet = false
}

// SetZoom sets the camera zoom level
func (cs *CameraSystem) SetZoom(zoom float32) {
	cs.zoom = cs.clampZoom(zoom)
}

// GetZoom returns the current zoom level
func (cs *CameraSystem) GetZoom() float32 {
	return cs.zoom
}

func (cs *CameraSystem) clampZoom(zoom float32) float32 {
	if zoom < cs.minZoom {
		return cs.minZoom
	}
	if zoom > cs.maxZoom {
		return cs.maxZoom
	}
	return zoom
}

// EnableSmoothing enables or disables camera smoothing
func (cs *CameraSystem) EnableSmoothing(enabled bool) {
	cs.smoothing = enabled
}

// GetCurrentPosition returns the current camera ground position
func (cs *CameraSystem) GetCurrentPosition() mgl64.Vec2 {
	return cs.currentPos
}

func (cs *CameraSystem) toPixels(p mgl64.Vec2) engo.Point {
	return engo.Point{X: float32(p.X()) * cs.scale, Y: float32(p.Y()) * cs.scale}
}

// WorldToScreen converts a world position to screen coordinates
func (cs *CameraSystem) WorldToScreen(world mgl64.Vec3) engo.Point {
	rel := groundProjection(world).Sub(cs.currentPos)
	return engo.Point{
		X: float32(rel.X())*cs.scale*cs.zoom + engo.GameWidth()/2,
		Y: float32(rel.Y())*cs.scale*cs.zoom + engo.GameHeight()/2,
	}
}

// groundProjection drops the vertical axis. Screen Y follows world Z, so
// travel at heading zero (toward -Z) moves up the screen.
func groundProjection(p mgl64.Vec3) mgl64.Vec2 {
	return mgl64.Vec2{p.X(), p.Z()}
}

// SetupCameraControls sets up camera control key bindings
func SetupCameraControls() {
	engo.Input.RegisterButton("resetZoom", engo.KeyZ)
}
