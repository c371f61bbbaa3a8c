// pkg/engine/simulator.go
package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/opd-ai/go-skyrunner/pkg/camera"
	"github.com/opd-ai/go-skyrunner/pkg/config"
	"github.com/opd-ai/go-skyrunner/pkg/control"
	"github.com/opd-ai/go-skyrunner/pkg/event"
	"github.com/opd-ai/go-skyrunner/pkg/logging"
	"github.com/opd-ai/go-skyrunner/pkg/physics"
	"github.com/opd-ai/go-skyrunner/pkg/validation"
)

// Frame is everything a renderer needs after one tick
type Frame struct {
	Tick      uint64
	Delta     float64 // sanitized seconds integrated this tick
	Elapsed   float64 // clock reading used for the hover overlay
	Intent    control.Intent
	Craft     physics.CraftState
	Transform physics.Transform
	Camera    camera.State
	Hovering  bool
}

// Renderer consumes frames. RenderFrame runs on the simulation goroutine
// and should return quickly.
type Renderer interface {
	RenderFrame(frame Frame)
}

// Option configures a Simulator
type Option func(*Simulator)

// WithClock sets the clock read for the hover overlay.
func WithClock(clock Clock) Option {
	return func(s *Simulator) { s.clock = clock }
}

// WithSimulatedTime drives the hover overlay from accumulated step time
// instead of the wall clock, which makes headless runs reproducible.
func WithSimulatedTime() Option {
	return func(s *Simulator) { s.clock = simClock{sim: s} }
}

// WithEventBus publishes control and flight events on bus.
func WithEventBus(bus *event.Bus) Option {
	return func(s *Simulator) { s.bus = bus }
}

// WithLogger sets the logger.
func WithLogger(logger *logging.Logger) Option {
	return func(s *Simulator) { s.logger = logger }
}

// WithRenderer hands every frame to r.
func WithRenderer(r Renderer) Option {
	return func(s *Simulator) { s.renderer = r }
}

// Simulator owns one craft, its input state and its chase camera, and
// advances them one tick at a time.
type Simulator struct {
	flight  physics.FlightConfig
	camera  camera.Config
	input   *control.InputState
	script  *Script
	clock   Clock
	bus     *event.Bus
	logger  *logging.Logger
	limiter *validation.RateLimiter

	renderer Renderer
	ctx      context.Context

	// stepMu serializes Step and Reset, which own the script cursor
	stepMu sync.Mutex

	mu        sync.RWMutex
	craft     *physics.CraftState // nil while detached
	frame     Frame
	tick      uint64
	simTime   float64
	hovering  bool
	atFloor   bool
	atCeiling bool
}

// NewSimulator creates a simulator from a validated configuration with the
// craft at its spawn point.
func NewSimulator(cfg *config.Config, opts ...Option) (*Simulator, error) {
	if cfg == nil {
		return nil, errors.New("simulator requires a configuration")
	}
	if err := validation.ValidateFlightConfig(cfg.Flight); err != nil {
		return nil, fmt.Errorf("invalid flight configuration: %w", err)
	}
	keys, err := cfg.KeyMap()
	if err != nil {
		return nil, fmt.Errorf("invalid key bindings: %w", err)
	}
	script, err := NewScript(cfg.Script)
	if err != nil {
		return nil, err
	}

	s := &Simulator{
		flight:  cfg.Flight,
		camera:  cfg.Camera,
		input:   control.NewInputState(keys),
		script:  script,
		clock:   NewWallClock(),
		bus:     event.NewEventBus(),
		logger:  logging.Discard(),
		limiter: validation.NewRateLimiter(1, 5*time.Second),
		ctx:     logging.WithCorrelationID(context.Background(), logging.GenerateCorrelationID()),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.input.SetListener(s.onControl)
	s.place(physics.InitialState(s.flight))
	return s, nil
}

// place puts the craft at state and resets the frame and regime tracking.
// The frame is posed by a zero-length tick so it carries the hover overlay.
// Callers hold no lock.
func (s *Simulator) place(state physics.CraftState) {
	elapsed := s.clock.Elapsed()
	posed, transform := physics.Tick(s.flight, state, 0, 0, elapsed)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.craft = &state
	s.hovering = s.flight.Hovering(state.Speed)
	s.atFloor = state.Height <= s.flight.MinHeight
	s.atCeiling = state.Height >= s.flight.MaxHeight
	s.frame = Frame{
		Tick:      s.tick,
		Elapsed:   elapsed,
		Craft:     posed,
		Transform: transform,
		Camera:    camera.Follow(s.camera, transform),
		Hovering:  s.hovering,
	}
}

func (s *Simulator) onControl(code control.Code, pressed bool) {
	s.logger.Debug(s.ctx, "control changed", "control", code.String(), "pressed", pressed)
	s.bus.Publish(event.NewControlEvent(s, code, pressed))
}

// Input returns the input state drivers press and release controls on.
// It is safe to use from any goroutine.
func (s *Simulator) Input() *control.InputState {
	return s.input
}

// EventBus returns the bus events are published on.
func (s *Simulator) EventBus() *event.Bus {
	return s.bus
}

// Script returns the autopilot timeline.
func (s *Simulator) Script() *Script {
	return s.script
}

// SimTime returns the sum of all integrated deltas.
func (s *Simulator) SimTime() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.simTime
}

// Step advances the simulation by delta seconds and returns the new frame.
// A negative or non-finite delta integrates nothing. With no craft attached
// the previous frame is returned unchanged, including a craft detached by
// another goroutine while the tick is in progress.
func (s *Simulator) Step(delta float64) Frame {
	dt := physics.SanitizeDelta(delta)
	if dt != delta && s.limiter.Allow("delta") {
		s.logger.Warn(s.ctx, "ignoring invalid frame delta", "delta", strconv.FormatFloat(delta, 'g', -1, 64))
	}

	frame, events, ok := s.advance(dt)
	if !ok {
		s.logger.Debug(s.ctx, "no craft attached, skipping tick", "tick", frame.Tick)
		s.bus.Publish(event.NewFlightEvent(event.TickSkipped, s, frame.Tick, frame.Elapsed, 0, 0))
		return frame
	}

	for _, e := range events {
		s.logger.Debug(s.ctx, "flight regime changed", "event", string(e.GetType()), "tick", frame.Tick)
		s.bus.Publish(e)
	}
	if s.renderer != nil {
		s.renderer.RenderFrame(frame)
	}
	return frame
}

// advance runs one tick under stepMu. It reports false, with the previous
// frame, when no craft is attached at either end of the tick.
func (s *Simulator) advance(dt float64) (Frame, []event.Event, bool) {
	s.stepMu.Lock()
	defer s.stepMu.Unlock()

	s.mu.RLock()
	attached := s.craft != nil
	simTime := s.simTime
	prev := s.frame
	s.mu.RUnlock()
	if !attached {
		return prev, nil, false
	}

	s.script.Apply(simTime, s.input)
	intent := s.input.Snapshot()
	elapsed := s.clock.Elapsed()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.craft == nil {
		return s.frame, nil, false
	}
	state, transform := physics.Tick(s.flight, *s.craft, intent, dt, elapsed)
	*s.craft = state
	s.tick++
	s.simTime += dt

	frame := Frame{
		Tick:      s.tick,
		Delta:     dt,
		Elapsed:   elapsed,
		Intent:    intent,
		Craft:     state,
		Transform: transform,
		Camera:    camera.Follow(s.camera, transform),
		Hovering:  s.flight.Hovering(state.Speed),
	}
	events := s.transitions(frame)
	s.frame = frame
	return frame, events, true
}

// transitions compares frame with the last tick's regime flags. Called with
// mu held.
func (s *Simulator) transitions(frame Frame) []event.Event {
	var events []event.Event
	emit := func(t event.Type) {
		events = append(events, event.NewFlightEvent(t, s, frame.Tick, frame.Elapsed, frame.Craft.Speed, frame.Craft.Height))
	}

	if frame.Hovering != s.hovering {
		if frame.Hovering {
			emit(event.HoverStarted)
		} else {
			emit(event.HoverEnded)
		}
		s.hovering = frame.Hovering
	}

	atFloor := frame.Craft.Height <= s.flight.MinHeight
	if atFloor && !s.atFloor {
		emit(event.FloorReached)
	}
	s.atFloor = atFloor

	atCeiling := frame.Craft.Height >= s.flight.MaxHeight
	if atCeiling && !s.atCeiling {
		emit(event.CeilingReached)
	}
	s.atCeiling = atCeiling

	return events
}

// Run steps the simulation at fps using the wall time between ticks as the
// delta, until ctx is done.
func (s *Simulator) Run(ctx context.Context, fps int) error {
	if err := validation.ValidateFrameRate(fps); err != nil {
		return err
	}

	s.logger.Info(s.ctx, "simulation started", "fps", fps)
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			s.logger.Info(s.ctx, "simulation stopped", "ticks", s.Frame().Tick)
			return ctx.Err()
		case now := <-ticker.C:
			s.Step(now.Sub(last).Seconds())
			last = now
		}
	}
}

// Simulate steps a fixed 1/fps delta until duration seconds of simulation
// time have passed, without waiting between ticks. It returns the last frame.
func (s *Simulator) Simulate(ctx context.Context, duration float64, fps int) (Frame, error) {
	if err := validation.ValidateFrameRate(fps); err != nil {
		return s.Frame(), err
	}
	if duration < 0 || math.IsNaN(duration) || math.IsInf(duration, 0) {
		return s.Frame(), fmt.Errorf("invalid duration: %g", duration)
	}

	delta := 1 / float64(fps)
	steps := int(math.Ceil(duration*float64(fps) - 1e-9))
	frame := s.Frame()
	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			return frame, err
		}
		frame = s.Step(delta)
	}
	return frame, nil
}

// Frame returns the most recent frame.
func (s *Simulator) Frame() Frame {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frame
}

// State returns the craft state and whether a craft is attached.
func (s *Simulator) State() (physics.CraftState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.craft == nil {
		return physics.CraftState{}, false
	}
	return *s.craft, true
}

// Detach removes the craft. Later ticks are skipped until Attach.
func (s *Simulator) Detach() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.craft = nil
}

// Attach places a craft in state. The tick counter keeps running.
func (s *Simulator) Attach(state physics.CraftState) {
	s.place(state)
}

// Reset returns the craft to its spawn point, releases every control and
// rewinds the script. It is safe to call while another goroutine steps, but
// not from a control event handler, which runs inside Step.
func (s *Simulator) Reset() {
	s.stepMu.Lock()
	s.input.Reset()
	s.script.Rewind()

	s.mu.Lock()
	s.tick = 0
	s.simTime = 0
	s.mu.Unlock()
	s.limiter.Reset()

	s.place(physics.InitialState(s.flight))
	s.stepMu.Unlock()

	s.logger.Info(s.ctx, "simulation reset")
	s.bus.Publish(event.NewFlightEvent(event.SimulationReset, s, 0, 0, 0, 0))
}
