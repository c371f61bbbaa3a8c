// pkg/render/engo/scene.go
package engo

import (
	"context"
	"fmt"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/opd-ai/go-skyrunner/pkg/control"
	"github.com/opd-ai/go-skyrunner/pkg/engine"
	"github.com/opd-ai/go-skyrunner/pkg/logging"
	"github.com/opd-ai/go-skyrunner/pkg/render"
)

// WindowOptions configures the engo window
type WindowOptions struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	// Pixels per world unit
	Scale float32
}

// DefaultWindowOptions returns a 1280x720 window
func DefaultWindowOptions() WindowOptions {
	return WindowOptions{
		Title:  "skyrunner",
		Width:  1280,
		Height: 720,
		Scale:  2,
	}
}

// FlightScene is the engo scene flying one simulator
type FlightScene struct {
	world *ecs.World

	sim    *engine.Simulator
	keys   control.KeyMap
	logger *logging.Logger
	scale  float32

	renderer *EngoRenderer
	camera   *CameraSystem
	input    *InputSystem
	hud      *HUDSystem
	flight   *FlightSystem
}

// NewFlightScene creates a scene driving sim with the given key bindings
func NewFlightScene(sim *engine.Simulator, keys control.KeyMap, logger *logging.Logger, scale float32) *FlightScene {
	if keys == nil {
		keys = control.DefaultKeyMap()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &FlightScene{
		world:  &ecs.World{},
		sim:    sim,
		keys:   keys,
		logger: logger,
		scale:  scale,
	}
}

// Type returns the scene type (required by Engo)
func (scene *FlightScene) Type() string {
	return "FlightScene"
}

// Preload is called before the scene starts (required by Engo)
func (scene *FlightScene) Preload() {}

// Setup is called when the scene starts (required by Engo)
func (scene *FlightScene) Setup(u engo.Updater) {
	ctx := context.Background()
	world, ok := u.(*ecs.World)
	if !ok {
		scene.logger.Error(ctx, "unexpected updater", fmt.Errorf("got %T", u))
		return
	}
	scene.world = world
	common.SetBackground(color.RGBA{12, 16, 28, 255})

	renderSystem := &common.RenderSystem{}
	scene.world.AddSystem(renderSystem)

	scene.renderer = NewEngoRenderer(scene.scale)
	if err := scene.renderer.Initialize(scene.world); err != nil {
		scene.logger.Error(ctx, "failed to initialize renderer", err)
	}

	scene.camera = NewCameraSystem(scene.scale)
	SetupCameraControls()

	keyNames, err := BindKeys(scene.keys)
	if err != nil {
		scene.logger.Error(ctx, "failed to bind keys", err)
	}
	scene.input = NewInputSystem(scene.sim.Input(), keyNames)
	scene.input.OnReset(scene.sim.Reset)

	scene.hud = NewHUDSystem()
	scene.hud.SetRenderSystem(renderSystem)
	if font, err := hudFont(); err != nil {
		scene.logger.Warn(ctx, "HUD text disabled", "error", err.Error())
	} else {
		scene.hud.SetFont(font)
	}
	scene.hud.Subscribe(scene.sim.EventBus())

	scene.flight = NewFlightSystem(scene.sim, render.Multi{scene.renderer, scene.camera, scene.hud})

	// Input first so presses land in this frame's step
	scene.world.AddSystem(scene.input)
	scene.world.AddSystem(scene.flight)
	scene.world.AddSystem(scene.camera)
	scene.world.AddSystem(scene.hud)

	scene.logger.Info(ctx, "window scene ready", "keys", len(keyNames))
}

// hudFont loads the built-in monospace font
func hudFont() (*common.Font, error) {
	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HUD font: %w", err)
	}
	font := &common.Font{
		TTF:  ttf,
		Size: 14,
		FG:   color.White,
	}
	if err := font.CreatePreloaded(); err != nil {
		return nil, fmt.Errorf("failed to load HUD font: %w", err)
	}
	return font, nil
}

// Exit is called when the scene is exiting (required by Engo)
func (scene *FlightScene) Exit() {
	if scene.renderer != nil {
		scene.renderer.Remove()
	}
	scene.sim.Input().Reset()
}

// Run opens a window and flies sim until it is closed. It blocks and must
// be called from the main goroutine.
func Run(sim *engine.Simulator, keys control.KeyMap, logger *logging.Logger, opts WindowOptions) {
	engo.Run(engo.RunOptions{
		Title:      opts.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Fullscreen: opts.Fullscreen,
	}, NewFlightScene(sim, keys, logger, opts.Scale))
}
