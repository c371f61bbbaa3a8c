package render

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-skyrunner/pkg/engine"
	"github.com/opd-ai/go-skyrunner/pkg/physics"
)

// craftGlyphs point along the craft's travel direction, indexed by quarter
// turns of heading.
var craftGlyphs = [4]rune{'^', '<', 'v', '>'}

// TerminalRenderer draws a top-down ASCII map of the ground plane around
// the craft with a telemetry line underneath.
type TerminalRenderer struct {
	out       io.Writer
	width     int
	height    int
	buffer    [][]rune
	scale     float64 // world units per character
	centerPos mgl64.Vec3
	every     uint64
	ansi      bool
}

// NewTerminalRenderer creates a new terminal renderer with the specified
// dimensions writing to out. It draws one frame in every `every` ticks.
func NewTerminalRenderer(out io.Writer, width, height int, scale float64, every int) *TerminalRenderer {
	buffer := make([][]rune, height)
	for i := range buffer {
		buffer[i] = make([]rune, width)
	}
	if every < 1 {
		every = 1
	}
	if scale <= 0 {
		scale = 1
	}

	return &TerminalRenderer{
		out:    out,
		width:  width,
		height: height,
		buffer: buffer,
		scale:  scale,
		every:  uint64(every),
	}
}

// SetANSI enables clearing the screen before each frame.
func (r *TerminalRenderer) SetANSI(enabled bool) {
	r.ansi = enabled
}

// worldToScreen projects a world position onto the map. Rows grow toward +z.
func (r *TerminalRenderer) worldToScreen(pos mgl64.Vec3) (int, int) {
	screenX := int(math.Floor((pos.X()-r.centerPos.X())/r.scale + float64(r.width)/2))
	screenY := int(math.Floor((pos.Z()-r.centerPos.Z())/r.scale + float64(r.height)/2))
	return screenX, screenY
}

func (r *TerminalRenderer) plot(pos mgl64.Vec3, glyph rune) {
	x, y := r.worldToScreen(pos)
	if x >= 0 && x < r.width && y >= 0 && y < r.height {
		r.buffer[y][x] = glyph
	}
}

// Clear blanks the map buffer.
func (r *TerminalRenderer) Clear() {
	for y := range r.buffer {
		for x := range r.buffer[y] {
			r.buffer[y][x] = ' '
		}
	}
}

// RenderFrame implements engine.Renderer.
func (r *TerminalRenderer) RenderFrame(frame engine.Frame) {
	if frame.Tick%r.every != 0 {
		return
	}

	r.centerPos = frame.Transform.Position
	r.Clear()
	r.plot(mgl64.Vec3{}, 'O')
	r.plot(frame.Camera.Position, '+')
	r.plot(frame.Transform.Position, craftGlyph(frame.Craft.Heading))
	r.Present(frame)
}

// Present writes the map and telemetry line.
func (r *TerminalRenderer) Present(frame engine.Frame) {
	w := bufio.NewWriter(r.out)
	defer w.Flush()

	if r.ansi {
		fmt.Fprint(w, "\033[H\033[2J")
	}
	if r.width > 0 && r.height > 0 {
		fmt.Fprintln(w, "+"+strings.Repeat("-", r.width)+"+")
		for y := range r.buffer {
			fmt.Fprintln(w, "|"+string(r.buffer[y])+"|")
		}
		fmt.Fprintln(w, "+"+strings.Repeat("-", r.width)+"+")
	}
	fmt.Fprintln(w, Telemetry(frame))
}

// Telemetry formats one line summarizing the frame.
func Telemetry(frame engine.Frame) string {
	c := frame.Craft
	mode := "cruise"
	if frame.Hovering {
		mode = "hover"
	}
	return fmt.Sprintf("tick=%d t=%.2f speed=%.1f height=%.1f heading=%.1f pitch=%.3f bank=%.3f pos=(%.1f, %.1f, %.1f) mode=%s controls=%s",
		frame.Tick, frame.Elapsed, c.Speed, c.Height,
		mgl64.RadToDeg(c.Heading), c.Pitch, c.Bank,
		frame.Transform.Position.X(), frame.Transform.Position.Y(), frame.Transform.Position.Z(),
		mode, frame.Intent)
}

func craftGlyph(heading float64) rune {
	quarter := int(math.Round(physics.WrapAngle(heading)/(math.Pi/2))) % 4
	return craftGlyphs[quarter]
}
