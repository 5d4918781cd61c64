package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"syscall"

	"github.com/Carmen-Shannon/oxy-pano/engine"
	"github.com/Carmen-Shannon/oxy-pano/engine/camera"
	"github.com/Carmen-Shannon/oxy-pano/engine/config"
	"github.com/Carmen-Shannon/oxy-pano/engine/control"
	"github.com/Carmen-Shannon/oxy-pano/engine/debug"
	"github.com/Carmen-Shannon/oxy-pano/engine/window"
)

func main() {
	// CLI flags
	cfgPath := flag.String("config", "", "path to config file (built-in defaults when empty)")
	backend := flag.String("backend", "", fmt.Sprintf("override window backend %v", window.Backends()))
	mode := flag.String("mode", "", "override orientation mode (lookat or quaternion)")
	level := flag.String("debug", "", "override debug level (off, info, event, verbose, trace)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Load configuration
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	// Apply CLI overrides to config
	if *backend != "" {
		cfg.Window.Backend = *backend
	}
	if *mode != "" {
		cfg.Control.Mode = *mode
	}
	if *level != "" {
		cfg.Debug.Level = *level
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if cfg.Window.Backend == config.BackendDefault {
		cfg.Window.Backend = window.DefaultBackend()
	}

	// Initialize debug system
	debug.Init(cfg.DebugLevel())
	debug.Section("Initialization")
	debug.Value("Config path", *cfgPath)
	debug.Value("Backend", cfg.Window.Backend)
	debug.Value("Mode", cfg.Mode())
	debug.Value("Radius", cfg.View.Radius)

	w, err := window.TryNewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithWidth(cfg.Window.Width),
		window.WithHeight(cfg.Window.Height),
		window.WithBackend(cfg.Window.Backend),
	)
	if err != nil {
		log.Fatalf("open window failed: %v", err)
	}

	cam := camera.NewCamera(
		camera.WithFov(cfg.View.Fov),
		camera.WithViewport(w.Width(), w.Height()),
		camera.WithNear(cfg.View.Near),
		camera.WithFar(cfg.View.Far),
	)

	ctrl := control.NewController(
		control.WithMode(cfg.Mode()),
		control.WithFovBounds(cfg.View.MinFov, cfg.View.MaxFov),
		control.WithFov(cfg.View.Fov),
		control.WithAngle(cfg.LngRad(), cfg.LatRad()),
		control.WithMouseScale(cfg.Control.MouseScale),
		control.WithWheelScale(cfg.Control.WheelScale),
		control.WithSensor(cfg.SensorEnabled()),
	)

	hud := newHUD(w, cfg.Window.Title, ctrl)
	eng := engine.NewEngine(
		engine.WithWindow(w),
		engine.WithCamera(cam),
		engine.WithController(ctrl),
		engine.WithRadius(cfg.View.Radius),
		engine.WithTickRate(cfg.Control.TickRate),
		engine.WithProfiling(cfg.Debug.Profiling),
		engine.WithTickCallback(hud.tick),
	)
	eng.SetResizeCallback(func(width, height int) {
		debug.Info("viewport %dx%d", width, height)
	})

	go func() {
		<-ctx.Done()
		eng.Quit()
	}()

	debug.Section("Viewing")
	// Run returns once the window has been released, whichever side ended the loop.
	if err := eng.Run(); err != nil {
		log.Fatalf("run failed: %v", err)
	}
}

// hud mirrors the viewing state into the window title.
type hud struct {
	window window.Window
	base   string
	ctrl   control.Controller
	last   string
}

func newHUD(w window.Window, base string, ctrl control.Controller) *hud {
	return &hud{window: w, base: base, ctrl: ctrl}
}

func (h *hud) tick(_ float64, pose camera.Pose) {
	angle := h.ctrl.Angle()
	title := fmt.Sprintf("%s | %s lng %.1f° lat %.1f° fov %.1f°",
		h.base, pose.Mode, degrees(angle.Lng), degrees(angle.Lat), pose.Fov)
	if h.ctrl.SensorPaused() {
		title += " [sensor paused]"
	}
	if title == h.last {
		return
	}
	h.last = title
	h.window.SetTitle(title)
	debug.Verbose("forward %v", pose.Forward())
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
