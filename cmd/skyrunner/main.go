// cmd/skyrunner/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/opd-ai/go-skyrunner/pkg/config"
	"github.com/opd-ai/go-skyrunner/pkg/engine"
	"github.com/opd-ai/go-skyrunner/pkg/event"
	"github.com/opd-ai/go-skyrunner/pkg/logging"
	"github.com/opd-ai/go-skyrunner/pkg/render"
	engorender "github.com/opd-ai/go-skyrunner/pkg/render/engo"
)

// options holds the parsed command line
type options struct {
	configPath    string
	envFile       string
	createDefault bool
	renderer      string
	duration      float64
	fast          bool
	ansi          bool
	mapWidth      int
	mapHeight     int
	mapScale      float64
	width         int
	height        int
	fullscreen    bool
}

func parseFlags(args []string, errOut io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("skyrunner", flag.ContinueOnError)
	fs.SetOutput(errOut)

	fs.StringVar(&o.configPath, "config", "skyrunner.yaml", "Path to configuration file (.yaml, .yml or .json)")
	fs.StringVar(&o.envFile, "env", ".env", "Path to .env file")
	fs.BoolVar(&o.createDefault, "default", false, "Write the default configuration to -config and exit")
	fs.StringVar(&o.renderer, "renderer", "terminal", "Renderer type: 'terminal', 'engo' or 'none'")
	fs.Float64Var(&o.duration, "duration", -1, "Seconds to fly in headless mode (overrides config; 0 runs until interrupted)")
	fs.BoolVar(&o.fast, "fast", false, "Step headless runs back to back with a fixed delta instead of in real time")
	fs.BoolVar(&o.ansi, "ansi", false, "Clear the terminal before each map (terminal only)")
	fs.IntVar(&o.mapWidth, "map-width", 60, "Map width in characters (terminal only)")
	fs.IntVar(&o.mapHeight, "map-height", 20, "Map height in characters (terminal only)")
	fs.Float64Var(&o.mapScale, "map-scale", 10, "World units per map character (terminal only)")
	fs.IntVar(&o.width, "width", 1280, "Window width (engo only)")
	fs.IntVar(&o.height, "height", 720, "Window height (engo only)")
	fs.BoolVar(&o.fullscreen, "fullscreen", false, "Run in fullscreen mode (engo only)")

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	switch o.renderer {
	case "terminal", "engo", "none":
	default:
		return o, fmt.Errorf("unknown renderer %q", o.renderer)
	}
	if o.fast && o.renderer == "engo" {
		return o, errors.New("-fast only applies to headless renderers")
	}
	return o, nil
}

func main() {
	logger := logging.NewLoggerWithOptions(logging.Options{Level: os.Getenv(logging.LevelEnv), Output: os.Stderr})
	ctx := logging.WithCorrelationID(context.Background(), logging.GenerateCorrelationID())

	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		logger.Error(ctx, "Invalid command line", err)
		os.Exit(2)
	}

	if opts.createDefault {
		if err := config.SaveConfig(config.DefaultConfig(), opts.configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err, "config_path", opts.configPath)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file", "config_path", opts.configPath)
		return
	}

	cfg, err := config.Load(opts.configPath, opts.envFile)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err, "config_path", opts.configPath)
		os.Exit(1)
	}
	if opts.duration >= 0 {
		cfg.Simulation.Duration = opts.duration
	}

	logger = logging.NewLoggerWithOptions(logging.Options{Level: cfg.Log.Level, File: cfg.Log.File, Output: os.Stderr})

	if err := run(ctx, cfg, opts, logger); err != nil {
		logger.Error(ctx, "Simulation failed", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, opts options, logger *logging.Logger) error {
	bus := event.NewEventBus()
	logRegimeChanges(ctx, bus, logger)

	simOpts := []engine.Option{engine.WithEventBus(bus), engine.WithLogger(logger)}
	if opts.fast {
		simOpts = append(simOpts, engine.WithSimulatedTime())
	}
	switch opts.renderer {
	case "terminal":
		term := render.NewTerminalRenderer(os.Stdout, opts.mapWidth, opts.mapHeight, opts.mapScale, cfg.Simulation.TelemetryEvery)
		term.SetANSI(opts.ansi)
		simOpts = append(simOpts, engine.WithRenderer(term))
	case "none":
		simOpts = append(simOpts, engine.WithRenderer(render.NewNullRenderer(logger)))
	}

	sim, err := engine.NewSimulator(cfg, simOpts...)
	if err != nil {
		return logging.WrapError(err, "failed to create simulator")
	}

	if opts.renderer == "engo" {
		keys, err := cfg.KeyMap()
		if err != nil {
			return err
		}
		window := engorender.DefaultWindowOptions()
		window.Width, window.Height, window.Fullscreen = opts.width, opts.height, opts.fullscreen
		logger.Info(ctx, "Opening window", "width", window.Width, "height", window.Height)
		engorender.Run(sim, keys, logger, window)
		return nil
	}

	return runHeadless(ctx, sim, cfg, opts, logger)
}

// runHeadless flies the autopilot script until the configured duration
// passes or the process is interrupted.
func runHeadless(ctx context.Context, sim *engine.Simulator, cfg *config.Config, opts options, logger *logging.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	duration := cfg.Simulation.Duration
	logger.Info(ctx, "Starting headless flight",
		"fps", cfg.Simulation.FPS,
		"duration", duration,
		"script_steps", sim.Script().Len(),
		"fast", opts.fast,
	)

	var err error
	if opts.fast {
		if duration == 0 {
			duration = sim.Script().End() + 1
		}
		_, err = sim.Simulate(ctx, duration, cfg.Simulation.FPS)
	} else {
		if duration > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, time.Duration(duration*float64(time.Second)))
			defer cancel()
		}
		err = sim.Run(ctx, cfg.Simulation.FPS)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}

	frame := sim.Frame()
	logger.Info(ctx, "Flight finished",
		"ticks", frame.Tick,
		"speed", frame.Craft.Speed,
		"height", frame.Craft.Height,
		"x", frame.Craft.Position.X(),
		"z", frame.Craft.Position.Z(),
	)
	return err
}

func logRegimeChanges(ctx context.Context, bus *event.Bus, logger *logging.Logger) {
	for _, typ := range []event.Type{event.HoverStarted, event.HoverEnded, event.FloorReached, event.CeilingReached} {
		bus.Subscribe(typ, func(e event.Event) {
			if fe, ok := e.(*event.FlightEvent); ok {
				logger.Info(ctx, "Flight regime changed",
					"event", string(fe.GetType()),
					"tick", fe.Tick,
					"speed", fe.Speed,
					"height", fe.Height,
				)
			}
		})
	}
}
