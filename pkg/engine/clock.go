package engine

import (
	"sync"
	"time"
)

// Clock reports process-wide elapsed time in seconds. The hover overlay
// reads it instead of summing frame deltas so its phase does not depend on
// frame rate.
type Clock interface {
	Elapsed() float64
}

// WallClock measures real time since it was created.
type WallClock struct {
	start time.Time
}

// NewWallClock starts a clock at zero now.
func NewWallClock() *WallClock {
	return &WallClock{start: time.Now()}
}

// Elapsed implements Clock.
func (c *WallClock) Elapsed() float64 {
	return time.Since(c.start).Seconds()
}

// ManualClock only moves when told to. Handy for tests and replays.
type ManualClock struct {
	mu sync.Mutex
	t  float64
}

// Elapsed implements Clock.
func (c *ManualClock) Elapsed() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

// Advance moves the clock forward by seconds.
func (c *ManualClock) Advance(seconds float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t += seconds
}

// Set moves the clock to seconds.
func (c *ManualClock) Set(seconds float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = seconds
}

// simClock follows the simulator's accumulated step time.
type simClock struct {
	sim *Simulator
}

func (c simClock) Elapsed() float64 {
	return c.sim.SimTime()
}
