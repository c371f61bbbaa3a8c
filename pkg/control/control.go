// Package control tracks which flight controls are held down.
package control

import (
	"strings"
	"sync"
)

// Code identifies a single flight control.
type Code uint8

// Flight controls
const (
	Forward Code = iota
	Backward
	TurnLeft
	TurnRight
	Ascend
	Descend

	numCodes
)

var codeNames = [numCodes]string{
	Forward:   "forward",
	Backward:  "backward",
	TurnLeft:  "turn_left",
	TurnRight: "turn_right",
	Ascend:    "ascend",
	Descend:   "descend",
}

// Codes returns every recognized control code in declaration order.
func Codes() []Code {
	codes := make([]Code, 0, numCodes)
	for c := Code(0); c < numCodes; c++ {
		codes = append(codes, c)
	}
	return codes
}

// Valid reports whether c is a recognized control code.
func (c Code) Valid() bool {
	return c < numCodes
}

// String returns the stable lowercase name of the control.
func (c Code) String() string {
	if !c.Valid() {
		return "unknown"
	}
	return codeNames[c]
}

// ParseCode looks up a control by name. Matching is case-insensitive and
// accepts hyphens in place of underscores.
func ParseCode(name string) (Code, bool) {
	name = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for c := Code(0); c < numCodes; c++ {
		if codeNames[c] == name {
			return c, true
		}
	}
	return 0, false
}

// Intent is the set of controls held during one tick.
type Intent uint8

// Has reports whether code is in the set.
func (i Intent) Has(code Code) bool {
	if !code.Valid() {
		return false
	}
	return i&(1<<code) != 0
}

// With returns the set with code added.
func (i Intent) With(code Code) Intent {
	if !code.Valid() {
		return i
	}
	return i | 1<<code
}

// Without returns the set with code removed.
func (i Intent) Without(code Code) Intent {
	if !code.Valid() {
		return i
	}
	return i &^ (1 << code)
}

// Len returns the number of held controls.
func (i Intent) Len() int {
	n := 0
	for c := Code(0); c < numCodes; c++ {
		if i.Has(c) {
			n++
		}
	}
	return n
}

// Codes lists the held controls in declaration order.
func (i Intent) Codes() []Code {
	var codes []Code
	for c := Code(0); c < numCodes; c++ {
		if i.Has(c) {
			codes = append(codes, c)
		}
	}
	return codes
}

// String renders the set as a comma separated list of control names.
func (i Intent) String() string {
	names := make([]string, 0, numCodes)
	for _, c := range i.Codes() {
		names = append(names, c.String())
	}
	return "{" + strings.Join(names, ",") + "}"
}

// IntentOf builds a set from the given codes. Unrecognized codes are dropped.
func IntentOf(codes ...Code) Intent {
	var i Intent
	for _, c := range codes {
		i = i.With(c)
	}
	return i
}

// Listener is notified after a control changes state.
type Listener func(code Code, pressed bool)

// InputState holds the controls currently pressed. Writes may come from
// input callbacks on any goroutine; the simulation reads one Snapshot per tick.
type InputState struct {
	mu       sync.RWMutex
	intent   Intent
	held     map[string]struct{}
	keys     KeyMap
	listener Listener
}

// NewInputState creates an empty input state that resolves key names with keys.
// A nil keys uses DefaultKeyMap.
func NewInputState(keys KeyMap) *InputState {
	if keys == nil {
		keys = DefaultKeyMap()
	}
	return &InputState{
		held: make(map[string]struct{}),
		keys: keys,
	}
}

// SetListener registers fn to be called on every effective press or release.
func (s *InputState) SetListener(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listener = fn
}

// Press adds code to the intent set. Pressing a held or unrecognized code is a no-op.
func (s *InputState) Press(code Code) {
	s.set(code, true)
}

// Release removes code from the intent set. Releasing an absent or
// unrecognized code is a no-op.
func (s *InputState) Release(code Code) {
	s.set(code, false)
}

func (s *InputState) set(code Code, pressed bool) {
	if !code.Valid() {
		return
	}

	s.mu.Lock()
	before := s.intent
	if pressed {
		s.intent = s.intent.With(code)
	} else {
		s.intent = s.intent.Without(code)
	}
	changed := before != s.intent
	listener := s.listener
	s.mu.Unlock()

	if changed && listener != nil {
		listener(code, pressed)
	}
}

// KeyDown presses the control bound to key. Unbound keys are ignored.
func (s *InputState) KeyDown(key string) {
	code, ok := s.keys.Lookup(key)
	if !ok {
		return
	}
	s.mu.Lock()
	s.held[normalizeKey(key)] = struct{}{}
	s.mu.Unlock()
	s.Press(code)
}

// KeyUp releases the control bound to key once no other key bound to the
// same control is still held. Unbound keys are ignored.
func (s *InputState) KeyUp(key string) {
	code, ok := s.keys.Lookup(key)
	if !ok {
		return
	}

	s.mu.Lock()
	delete(s.held, normalizeKey(key))
	for other := range s.held {
		if c, ok := s.keys.Lookup(other); ok && c == code {
			s.mu.Unlock()
			return
		}
	}
	s.mu.Unlock()
	s.Release(code)
}

// Reset releases every control.
func (s *InputState) Reset() {
	for _, c := range s.Snapshot().Codes() {
		s.Release(c)
	}
	s.mu.Lock()
	s.held = make(map[string]struct{})
	s.mu.Unlock()
}

// Snapshot returns the controls held right now.
func (s *InputState) Snapshot() Intent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.intent
}
