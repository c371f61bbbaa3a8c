package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-skyrunner/pkg/engine"
)

// FlightSystem steps the simulator once per engo frame and hands the
// result to the view.
type FlightSystem struct {
	sim  *engine.Simulator
	view engine.Renderer
}

// NewFlightSystem creates a flight system. view may be nil.
func NewFlightSystem(sim *engine.Simulator, view engine.Renderer) *FlightSystem {
	return &FlightSystem{sim: sim, view: view}
}

// Add satisfies the ecs.System interface
func (fs *FlightSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
}

// Remove satisfies the ecs.System interface
func (fs *FlightSystem) Remove(basic ecs.BasicEntity) {
}

// Update advances the simulation by the frame time
func (fs *FlightSystem) Update(dt float32) {
	frame := fs.sim.Step(float64(dt))
	if fs.view != nil {
		fs.view.RenderFrame(frame)
	}
}
