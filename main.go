package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/olivier-w/springcurve/internal/bezier"
	"github.com/olivier-w/springcurve/internal/canvas"
	"github.com/olivier-w/springcurve/internal/config"
	"github.com/olivier-w/springcurve/internal/geom"
	"github.com/olivier-w/springcurve/internal/logging"
	"github.com/olivier-w/springcurve/internal/render"
	"github.com/olivier-w/springcurve/internal/snapshot"
	"github.com/olivier-w/springcurve/internal/ui"
)

var (
	configPath   = flag.String("config", "", "YAML config file (defaults are used when empty)")
	logPath      = flag.String("log", "", "write JSON logs to this file")
	logLevel     = flag.String("level", "info", "log level: debug, info, warn, error")
	colorMode    = flag.String("color", "auto", "color mode: auto, none, 16, 256, truecolor")
	snapshotPath = flag.String("snapshot", "", "run headless and write a PNG of the curve to this path")
	frames       = flag.Int("frames", 120, "frames to simulate before a headless snapshot")
	pointerFlag  = flag.String("pointer", "", "pointer position x,y for a headless snapshot (default: surface centre)")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			return err
		}
	}

	style, err := render.StyleFrom(cfg)
	if err != nil {
		return err
	}

	log, err := logging.New(*logPath, *logLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	log.Info("start",
		zap.String("integrator", cfg.Spring.Integrator),
		zap.Float64("stiffness", cfg.Spring.Stiffness),
		zap.Float64("damping", cfg.Spring.Damping),
		zap.Int("samples", cfg.Curve.Samples),
		zap.Int("fps", cfg.FPS))

	if *snapshotPath != "" {
		if err := runHeadless(cfg, style, log); err != nil {
			log.Error("headless snapshot", zap.Error(err))
			return err
		}
		return nil
	}

	profile, err := canvas.ParseProfile(*colorMode)
	if err != nil {
		log.Error("color mode", zap.Error(err))
		return err
	}

	model := ui.New(cfg, style, profile, log)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := program.Run(); err != nil {
		log.Error("program exited", zap.Error(err))
		return err
	}
	return nil
}

// runHeadless advances the curve toward a fixed pointer and writes the
// resulting frame as a PNG.
func runHeadless(cfg config.Config, style render.Style, log *zap.Logger) error {
	ptr := geom.Pointer{X: cfg.Surface.Width / 2, Y: cfg.Surface.Height / 2}
	if *pointerFlag != "" {
		var err error
		ptr, err = parsePointer(*pointerFlag)
		if err != nil {
			return err
		}
	}

	curve := bezier.ForSurface(cfg)
	for _i, n := 0, max(*frames, 0); _i < n; _i++ {
		curve.Advance(ptr)
	}

	frame := render.Capture(curve, render.LayerAll)
	if err := snapshot.Save(*snapshotPath, frame, style, int(cfg.Surface.Width), int(cfg.Surface.Height)); err != nil {
		return err
	}
	log.Info("snapshot saved", zap.String("path", *snapshotPath), zap.Int("frames", *frames))
	fmt.Printf("Saved %s\n", *snapshotPath)
	return nil
}

// parsePointer parses "x,y" in logical surface units.
func parsePointer(s string) (geom.Pointer, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return geom.Pointer{}, fmt.Errorf("pointer %q: want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return geom.Pointer{}, fmt.Errorf("pointer x: %w", err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return geom.Pointer{}, fmt.Errorf("pointer y: %w", err)
	}
	if !finite(x) || !finite(y) {
		return geom.Pointer{}, fmt.Errorf("pointer %q: coordinates must be finite", s)
	}
	return geom.Pointer{X: x, Y: y}, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
