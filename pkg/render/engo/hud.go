// pkg/render/engo/hud.go
package engo

import (
	"fmt"
	"image/color"
	"sync"
	"time"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-skyrunner/pkg/engine"
	"github.com/opd-ai/go-skyrunner/pkg/event"
)

// HUDSystem draws flight telemetry and a short log of regime changes
type HUDSystem struct {
	mu sync.Mutex

	// HUD entities drawn last frame
	hudEntities []*hudEntity
	renderer    *common.RenderSystem

	frame    engine.Frame
	hasFrame bool

	messages    []Message
	maxMessages int

	// Font for text rendering; nothing is drawn without one
	font *common.Font

	hudColor   color.Color
	alertColor color.Color
}

// Message is one line in the HUD event log
type Message struct {
	Text      string
	Timestamp time.Time
	Color     color.Color
}

type hudEntity struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
}

// NewHUDSystem creates a new HUD system
func NewHUDSystem() *HUDSystem {
	return &HUDSystem{
		maxMessages: 6,
		hudColor:    color.RGBA{255, 255, 255, 255},
		alertColor:  color.RGBA{255, 160, 0, 255},
	}
}

// Add satisfies the ecs.System interface
func (hud *HUDSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	// Not used for HUD system
}

// Remove satisfies the ecs.System interface
func (hud *HUDSystem) Remove(basic ecs.BasicEntity) {
	// Not used for HUD system
}

// SetRenderSystem sets where HUD text is drawn
func (hud *HUDSystem) SetRenderSystem(rs *common.RenderSystem) {
	hud.renderer = rs
}

// SetFont sets the font used for HUD text
func (hud *HUDSystem) SetFont(font *common.Font) {
	hud.font = font
}

// RenderFrame implements engine.Renderer
func (hud *HUDSystem) RenderFrame(frame engine.Frame) {
	hud.mu.Lock()
	defer hud.mu.Unlock()
	hud.frame = frame
	hud.hasFrame = true
}

// Update redraws the HUD
func (hud *HUDSystem) Update(dt float32) {
	hud.clearHUDEntities()
	if hud.font == nil || hud.renderer == nil {
		return
	}

	y := float32(10)
	for _, line := range hud.StatusLines() {
		hud.renderText(line, 10, y, hud.hudColor)
		y += 18
	}

	y = engo.GameHeight() - float32(hud.maxMessages*16) - 10
	for _, msg := range hud.Messages() {
		hud.renderText(msg.Text, 10, y, msg.Color)
		y += 16
	}
}

// StatusLines formats the telemetry panel for the latest frame
func (hud *HUDSystem) StatusLines() []string {
	hud.mu.Lock()
	defer hud.mu.Unlock()
	if !hud.hasFrame {
		return nil
	}
	return statusLines(hud.frame)
}

func statusLines(frame engine.Frame) []string {
	c := frame.Craft
	mode := "CRUISE"
	if frame.Hovering {
		mode = "HOVER"
	}
	return []string{
		fmt.Sprintf("SPD %6.1f", c.Speed),
		fmt.Sprintf("ALT %6.1f", c.Height),
		fmt.Sprintf("HDG %5.1f", mgl64.RadToDeg(c.Heading)),
		fmt.Sprintf("PIT %+5.1f  BNK %+5.1f", mgl64.RadToDeg(c.Pitch), mgl64.RadToDeg(c.Bank)),
		mode,
	}
}

// clearHUDEntities removes last frame's text
func (hud *HUDSystem) clearHUDEntities() {
	if hud.renderer != nil {
		for _, e := range hud.hudEntities {
			hud.renderer.Remove(e.BasicEntity)
		}
	}
	hud.hudEntities = hud.hudEntities[:0]
}

// renderText renders text at the specified position
func (hud *HUDSystem) renderText(text string, x, y float32, textColor color.Color) {
	e := &hudEntity{
		BasicEntity: ecs.NewBasic(),
		RenderComponent: common.RenderComponent{
			Drawable: common.Text{
				Font: hud.font,
				Text: text,
			},
			Color: textColor,
		},
		SpaceComponent: common.SpaceComponent{
			Position: engo.Point{X: x, Y: y},
		},
	}
	e.RenderComponent.SetZIndex(100)
	e.RenderComponent.SetShader(common.HUDShader)

	hud.renderer.Add(&e.BasicEntity, &e.RenderComponent, &e.SpaceComponent)
	hud.hudEntities = append(hud.hudEntities, e)
}

// AddMessage appends a line to the event log, dropping the oldest once
// the log is full
func (hud *HUDSystem) AddMessage(text string, c color.Color) {
	hud.mu.Lock()
	defer hud.mu.Unlock()

	hud.messages = append(hud.messages, Message{Text: text, Timestamp: time.Now(), Color: c})
	if len(hud.messages) > hud.maxMessages {
		hud.messages = hud.messages[len(hud.messages)-hud.maxMessages:]
	}
}

// Messages returns a copy of the event log
func (hud *HUDSystem) Messages() []Message {
	hud.mu.Lock()
	defer hud.mu.Unlock()
	out := make([]Message, len(hud.messages))
	copy(out, hud.messages)
	return out
}

// Subscribe logs flight regime changes published on bus
func (hud *HUDSystem) Subscribe(bus *event.Bus) {
	labels := map[event.Type]string{
		event.HoverStarted:    "hovering",
		event.HoverEnded:      "cruising",
		event.FloorReached:    "minimum altitude",
		event.CeilingReached:  "maximum altitude",
		event.SimulationReset: "reset",
	}
	for typ, label := range labels {
		bus.Subscribe(typ, func(e event.Event) {
			c := hud.hudColor
			if e.GetType() == event.FloorReached || e.GetType() == event.CeilingReached {
				c = hud.alertColor
			}
			hud.AddMessage(label, c)
		})
	}
}
