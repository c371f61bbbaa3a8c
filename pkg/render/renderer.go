// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-skyrunner/pkg/engine"
	"github.com/opd-ai/go-skyrunner/pkg/logging"
)

// NullRenderer is a simple implementation of engine.Renderer that draws
// nothing and logs each frame at debug level.
type NullRenderer struct {
	logger *logging.Logger
}

// NewNullRenderer creates a new NullRenderer with structured logging.
// A nil logger discards output.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &NullRenderer{logger: logger}
}

// RenderFrame implements engine.Renderer.
func (d *NullRenderer) RenderFrame(frame engine.Frame) {
	ctx := context.Background()
	d.logger.Debug(ctx, "RenderFrame called",
		"tick", frame.Tick,
		"speed", frame.Craft.Speed,
		"height", frame.Craft.Height,
		"heading", frame.Craft.Heading,
		"hovering", frame.Hovering,
	)
}

// Multi fans frames out to several renderers in order.
type Multi []engine.Renderer

// RenderFrame implements engine.Renderer.
func (m Multi) RenderFrame(frame engine.Frame) {
	for _, r := range m {
		if r != nil {
			r.RenderFrame(frame)
		}
	}
}
