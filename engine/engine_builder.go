package engine

import (
	"math"
	"time"

	"github.com/Carmen-Shannon/oxy-pano/engine/camera"
	"github.com/Carmen-Shannon/oxy-pano/engine/control"
	"github.com/Carmen-Shannon/oxy-pano/engine/window"
)

// EngineBuilderOption is a functional option for configuring an engine.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithTickRate sets the frame rate cap in frames per second.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target frames per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			fps = 60.0
		}
		e.engineTickRate = time.Duration(float64(time.Second) / fps)
	}
}

// WithWindow sets the window that provides input events and drives the frame loop.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithCamera sets the camera the pose is applied to.
//
// Parameters:
//   - c: a pre-configured Camera instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCamera(c camera.Camera) EngineBuilderOption {
	return func(e *engine) {
		e.camera = c
	}
}

// WithController sets the controller that interprets input.
//
// Parameters:
//   - c: a pre-configured Controller instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithController(c control.Controller) EngineBuilderOption {
	return func(e *engine) {
		e.controller = c
	}
}

// WithRadius sets the panorama sphere radius. Non-finite or non-positive values are ignored.
func WithRadius(radius float64) EngineBuilderOption {
	return func(e *engine) {
		if radius > 0 && !math.IsInf(radius, 1) {
			e.radius = radius
		}
	}
}

// WithTickCallback registers the per-frame callback during engine construction.
func WithTickCallback(callback func(deltaTime float64, pose camera.Pose)) EngineBuilderOption {
	return func(e *engine) {
		e.tickCallback = callback
	}
}
