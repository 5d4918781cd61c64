package engine

import (
	"errors"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-pano/engine/camera"
	"github.com/Carmen-Shannon/oxy-pano/engine/control"
	"github.com/Carmen-Shannon/oxy-pano/engine/debug"
	"github.com/Carmen-Shannon/oxy-pano/engine/profiler"
	"github.com/Carmen-Shannon/oxy-pano/engine/window"
)

// DefaultRadius is the panorama sphere radius used when none is configured.
const DefaultRadius = 500.0

// ErrNoWindow is returned by Run when the engine was built without a window.
var ErrNoWindow = errors.New("engine has no window")

// engine implements the Engine interface.
// Everything except Quit and SetTickRate runs on the window goroutine.
type engine struct {
	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window     window.Window
	camera     camera.Camera
	controller control.Controller
	radius     float64

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float64, pose camera.Pose)

	lastTick time.Time
}

// Engine drives the panorama view: once per window frame it asks the controller for a pose,
// applies it to the camera and hands it to the tick callback.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Camera returns the camera the pose is applied to.
	Camera() camera.Camera

	// Controller returns the input controller.
	Controller() control.Controller

	// Radius returns the panorama sphere radius passed to the controller each frame.
	Radius() float64

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the frame rate cap in frames per second.
	// Safe to call from any goroutine; the new rate applies from the next frame.
	//
	// Parameters:
	//   - fps: target frames per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called each frame after the camera is updated.
	// This is where a renderer draws the panorama for the pose.
	//
	// Parameters:
	//   - callback: receives the delta time in seconds and the pose of this frame
	SetTickCallback(callback func(deltaTime float64, pose camera.Pose))

	// SetResizeCallback registers the function notified when the viewport changes size.
	//
	// Parameters:
	//   - callback: receives the new width and height
	SetResizeCallback(callback func(width, height int))

	// Run attaches the controller to the window and runs the message loop.
	// Blocks until the window closes or Quit is called. The attachment is released on return.
	//
	// Returns:
	//   - error: ErrNoWindow if the engine has no window
	Run() error

	// Quit stops the frame loop and closes the window at the end of the current frame.
	// Safe to call multiple times and from any goroutine; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// A camera and controller with default settings are created when none is supplied.
// The camera aspect follows the window size.
//
// Parameters:
//   - options: functional options for engine configuration (window, radius, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		radius:          DefaultRadius,
		engineTickRate:  time.Second / 60,
		profiler:        profiler.NewProfiler(time.Second),
	}

	for _, opt := range options {
		opt(e)
	}

	if e.controller == nil {
		e.controller = control.NewController()
	}
	if e.camera == nil {
		e.camera = camera.NewCamera()
	}

	if e.window != nil {
		if w, h := e.window.Width(), e.window.Height(); w > 0 && h > 0 {
			e.camera.SetAspect(float64(w) / float64(h))
		}
		e.window.SetResizeCallback(func(width, height int) {
			if height > 0 {
				e.camera.SetAspect(float64(width) / float64(height))
			}
		})
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Camera() camera.Camera {
	return e.camera
}

func (e *engine) Controller() control.Controller {
	return e.controller
}

func (e *engine) Radius() float64 {
	return e.radius
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60.0
	}
	rate := time.Duration(float64(time.Second) / fps)
	// Drop a rate that has not been picked up yet so the latest one wins.
	select {
	case <-e.tickRateChannel:
	default:
	}
	e.tickRateChannel <- rate
}

func (e *engine) SetTickCallback(callback func(deltaTime float64, pose camera.Pose)) {
	e.tickCallback = callback
}

func (e *engine) SetResizeCallback(callback func(width, height int)) {
	e.controller.SetResizeCallback(callback)
}

func (e *engine) Run() error {
	if e.window == nil {
		return ErrNoWindow
	}

	sub := e.controller.Attach(e.window)
	defer sub.Close()

	e.lastTick = time.Now()
	e.window.SetUpdateCallback(e.frame)
	defer e.window.SetUpdateCallback(nil)

	debug.Info("engine running: backend=%s mode=%s radius=%.1f", e.window.Backend(), e.controller.Mode(), e.radius)
	e.window.ProcessMessages()
	debug.Info("engine stopped")
	return nil
}

// Quit signals the frame loop to stop.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

// frame runs one engine frame on the window goroutine.
func (e *engine) frame() {
	select {
	case <-e.quitChannel:
		if e.window.IsRunning() {
			debug.Error(e.window.Close())
		}
		return
	case rate := <-e.tickRateChannel:
		e.engineTickRate = rate
	default:
	}

	start := time.Now()
	dt := start.Sub(e.lastTick).Seconds()
	e.lastTick = start

	pose := e.controller.Update(e.radius)
	e.camera.Apply(pose)

	if e.tickCallback != nil {
		e.tickCallback(dt, pose)
	}

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}

	// Frame rate limiting
	if e.engineTickRate > 0 {
		if remaining := e.engineTickRate - time.Since(start); remaining > 0 {
			time.Sleep(remaining)
		}
	}
}
