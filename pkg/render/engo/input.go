// pkg/render/engo/input.go
package engo

import (
	"fmt"
	"sort"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-skyrunner/pkg/control"
)

// engoKeys maps configuration key names to engo keys.
var engoKeys = map[string]engo.Key{
	"arrowup":    engo.KeyArrowUp,
	"arrowdown":  engo.KeyArrowDown,
	"arrowleft":  engo.KeyArrowLeft,
	"arrowright": engo.KeyArrowRight,
	"space":      engo.KeySpace,
	"shift":      engo.KeyLeftShift,
	"enter":      engo.KeyEnter,
	"a":          engo.KeyA,
	"b":          engo.KeyB,
	"c":          engo.KeyC,
	"d":          engo.KeyD,
	"e":          engo.KeyE,
	"f":          engo.KeyF,
	"g":          engo.KeyG,
	"h":          engo.KeyH,
	"i":          engo.KeyI,
	"j":          engo.KeyJ,
	"k":          engo.KeyK,
	"l":          engo.KeyL,
	"m":          engo.KeyM,
	"n":          engo.KeyN,
	"o":          engo.KeyO,
	"p":          engo.KeyP,
	"q":          engo.KeyQ,
	"r":          engo.KeyR,
	"s":          engo.KeyS,
	"t":          engo.KeyT,
	"u":          engo.KeyU,
	"v":          engo.KeyV,
	"w":          engo.KeyW,
	"x":          engo.KeyX,
	"y":          engo.KeyY,
	"z":          engo.KeyZ,
}

// resetButton restarts the flight from the spawn point.
const resetButton = "reset"

// buttonState is the part of engo.Button the input system reads
type buttonState interface {
	JustPressed() bool
	JustReleased() bool
}

// InputSystem turns engo key events into control presses and releases
type InputSystem struct {
	input   *control.InputState
	keys    []string
	buttons func(name string) buttonState
	onReset func()
}

// NewInputSystem creates an input system feeding input. The keys are the
// bound key names, as returned by BindKeys.
func NewInputSystem(input *control.InputState, keys []string) *InputSystem {
	return &InputSystem{
		input: input,
		keys:  keys,
		buttons: func(name string) buttonState {
			return engo.Input.Button(name)
		},
	}
}

// OnReset sets the function run when the reset key is pressed.
func (is *InputSystem) OnReset(fn func()) {
	is.onReset = fn
}

// Add satisfies the ecs.System interface
func (is *InputSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	// Not used for input system
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {
	// Not used for input system
}

// Update forwards key transitions since the last frame
func (is *InputSystem) Update(dt float32) {
	for _, key := range is.keys {
		button := is.buttons(buttonName(key))
		if button.JustPressed() {
			is.input.KeyDown(key)
		}
		if button.JustReleased() {
			is.input.KeyUp(key)
		}
	}

	if is.onReset != nil && is.buttons(resetButton).JustPressed() {
		is.onReset()
	}
}

func buttonName(key string) string {
	return "key:" + key
}

// resolveKeys returns the bound key names, sorted, after checking each one
// has an engo key.
func resolveKeys(keys control.KeyMap) ([]string, error) {
	names := make([]string, 0, len(keys))
	for name := range keys {
		if _, ok := engoKeys[name]; !ok {
			return nil, fmt.Errorf("key %q has no window binding", name)
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// BindKeys registers one engo button per bound key plus the reset button,
// and returns the key names for NewInputSystem.
func BindKeys(keys control.KeyMap) ([]string, error) {
	names, err := resolveKeys(keys)
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		engo.Input.RegisterButton(buttonName(name), engoKeys[name])
	}
	engo.Input.RegisterButton(resetButton, engo.KeyBackspace)
	return names, nil
}
