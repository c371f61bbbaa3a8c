// pkg/event/event.go
package event

import (
	"sync"

	"github.com/opd-ai/go-skyrunner/pkg/control"
)

// Type represents the type of event
type Type string

// Flight event types
const (
	ControlPressed  Type = "control_pressed"
	ControlReleased Type = "control_released"
	HoverStarted    Type = "hover_started"
	HoverEnded      Type = "hover_ended"
	FloorReached    Type = "floor_reached"
	CeilingReached  Type = "ceiling_reached"
	TickSkipped     Type = "tick_skipped"
	SimulationReset Type = "simulation_reset"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// SubscriptionID identifies a registered handler
type SubscriptionID uint64

type subscription struct {
	id      SubscriptionID
	handler Handler
}

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]subscription
	nextID   SubscriptionID
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]subscription),
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) SubscriptionID {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: b.nextID, handler: handler})
	return b.nextID
}

// Unsubscribe removes a handler for a specific event type
func (b *Bus) Unsubscribe(eventType Type, id SubscriptionID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[eventType]
	for i, s := range subs {
		if s.id == id {
			// Copy so in-flight Publish calls keep their slice intact
			kept := make([]subscription, 0, len(subs)-1)
			kept = append(kept, subs[:i]...)
			b.handlers[eventType] = append(kept, subs[i+1:]...)
			return
		}
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	subs := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, s := range subs {
		s.handler(event)
	}
}

// Specific event implementations

// ControlEvent reports a control being pressed or released
type ControlEvent struct {
	BaseEvent
	Control control.Code
}

// NewControlEvent creates a new control event
func NewControlEvent(source interface{}, code control.Code, pressed bool) *ControlEvent {
	eventType := ControlReleased
	if pressed {
		eventType = ControlPressed
	}
	return &ControlEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		Control: code,
	}
}

// FlightEvent reports a change of flight regime
type FlightEvent struct {
	BaseEvent
	Tick    uint64
	Elapsed float64
	Speed   float64
	Height  float64
}

// NewFlightEvent creates a new flight event
func NewFlightEvent(eventType Type, source interface{}, tick uint64, elapsed, speed, height float64) *FlightEvent {
	return &FlightEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		Tick:    tick,
		Elapsed: elapsed,
		Speed:   speed,
		Height:  height,
	}
}
