package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/opd-ai/go-skyrunner/pkg/config"
	"github.com/opd-ai/go-skyrunner/pkg/control"
	"github.com/opd-ai/go-skyrunner/pkg/validation"
)

// ScriptAction is what an autopilot step does to its control
type ScriptAction int

const (
	ActionPress ScriptAction = iota
	ActionRelease
)

func (a ScriptAction) String() string {
	if a == ActionRelease {
		return "release"
	}
	return "press"
}

// ScriptStep presses or releases one control at a point in simulation time
type ScriptStep struct {
	At      float64
	Action  ScriptAction
	Control control.Code
}

// Script is a timeline of control changes that drives the craft without a
// keyboard. Steps with equal times run in file order.
type Script struct {
	steps []ScriptStep
	next  int
}

// NewScript parses and orders configuration entries.
func NewScript(entries []config.ScriptEntry) (*Script, error) {
	steps := make([]ScriptStep, 0, len(entries))
	for i, e := range entries {
		if err := validation.ValidateScriptEntry(e.At, e.Action, e.Control); err != nil {
			return nil, fmt.Errorf("script step %d: %w", i, err)
		}
		code, _ := control.ParseCode(e.Control)
		action := ActionPress
		if strings.EqualFold(e.Action, "release") {
			action = ActionRelease
		}
		steps = append(steps, ScriptStep{At: e.At, Action: action, Control: code})
	}

	sort.SliceStable(steps, func(i, j int) bool {
		return steps[i].At < steps[j].At
	})
	return &Script{steps: steps}, nil
}

// Apply performs every step due at or before now and returns how many ran.
func (s *Script) Apply(now float64, input *control.InputState) int {
	applied := 0
	for s.next < len(s.steps) && s.steps[s.next].At <= now {
		step := s.steps[s.next]
		if step.Action == ActionRelease {
			input.Release(step.Control)
		} else {
			input.Press(step.Control)
		}
		s.next++
		applied++
	}
	return applied
}

// Rewind starts the timeline over.
func (s *Script) Rewind() {
	s.next = 0
}

// Done reports whether every step has run.
func (s *Script) Done() bool {
	return s.next >= len(s.steps)
}

// Len returns the number of steps.
func (s *Script) Len() int {
	return len(s.steps)
}

// End returns the time of the last step.
func (s *Script) End() float64 {
	if len(s.steps) == 0 {
		return 0
	}
	return s.steps[len(s.steps)-1].At
}
