// pkg/render/engo/scene_test.go
package engo

import (
	"testing"

	"github.com/opd-ai/go-skyrunner/pkg/config"
	"github.com/opd-ai/go-skyrunner/pkg/control"
	"github.com/opd-ai/go-skyrunner/pkg/engine"
)

func newSimulator(t *testing.T) *engine.Simulator {
	t.Helper()
	sim, err := engine.NewSimulator(config.DefaultConfig(), engine.WithClock(&engine.ManualClock{}))
	if err != nil {
		t.Fatalf("NewSimulator failed: %v", err)
	}
	return sim
}

func TestNewFlightScene(t *testing.T) {
	sim := newSimulator(t)
	scene := NewFlightScene(sim, nil, nil, 3)

	if scene.sim != sim {
		t.Error("Expected simulator to be set")
	}
	if len(scene.keys) != len(control.DefaultKeyMap()) {
		t.Errorf("Expected default key map, got %v", scene.keys)
	}
	if scene.logger == nil {
		t.Error("Expected a logger")
	}
	if scene.world == nil {
		t.Error("Expected world to be initialized")
	}
	if scene.scale != 3 {
		t.Errorf("Expected scale 3, got %f", scene.scale)
	}
}

func TestFlightScene_Type(t *testing.T) {
	scene := NewFlightScene(newSimulator(t), nil, nil, 1)
	if got := scene.Type(); got != "FlightScene" {
		t.Errorf("Expected Type() to return %q, got %q", "FlightScene", got)
	}
}

func TestFlightScene_PreloadExit(t *testing.T) {
	sim := newSimulator(t)
	scene := NewFlightScene(sim, nil, nil, 1)
	sim.Input().Press(control.Forward)

	scene.Preload()
	scene.Exit()

	if got := sim.Input().Snapshot(); got != 0 {
		t.Errorf("Expected controls released on exit, got %v", got)
	}
}

func TestDefaultWindowOptions(t *testing.T) {
	opts := DefaultWindowOptions()
	if opts.Width != 1280 || opts.Height != 720 || opts.Title == "" || opts.Scale <= 0 {
		t.Errorf("Unexpected defaults %+v", opts)
	}
}

type recordingView struct {
	frames []engine.Frame
}

func (v *recordingView) RenderFrame(frame engine.Frame) {
	v.frames = append(v.frames, frame)
}

func TestFlightSystem_Update(t *testing.T) {
	sim := newSimulator(t)
	view := &recordingView{}
	fs := NewFlightSystem(sim, view)
	sim.Input().Press(control.Forward)

	fs.Update(0.5)
	fs.Update(0.5)

	if len(view.frames) != 2 {
		t.Fatalf("Expected 2 frames, got %d", len(view.frames))
	}
	if got := view.frames[1].Craft.Speed; got != 30 {
		t.Errorf("Expected speed 30 after one second, got %f", got)
	}

	// Must not panic without a view
	NewFlightSystem(sim, nil).Update(0.1)
}
