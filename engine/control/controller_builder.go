package control

import (
	"github.com/Carmen-Shannon/oxy-pano/common"
	"github.com/Carmen-Shannon/oxy-pano/engine/camera"
)

// ControllerBuilderOption is a functional option for configuring a Controller.
type ControllerBuilderOption func(*controllerImpl)

// WithMode selects the orientation model.
//
// Parameters:
//   - mode: camera.ModeLookAt for incremental sensor integration, camera.ModeQuaternion for full composition
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithMode(mode camera.Mode) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.model = NewOrientationModel(mode)
	}
}

// WithOrientationModel installs a custom orientation model. Nil is ignored.
func WithOrientationModel(m OrientationModel) ControllerBuilderOption {
	return func(c *controllerImpl) {
		if m != nil {
			c.model = m
		}
	}
}

// WithFov sets the initial field of view in degrees. It is clamped once all options are applied.
//
// Parameters:
//   - fov: field of view in degrees
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithFov(fov float64) ControllerBuilderOption {
	return func(c *controllerImpl) {
		if common.Finite(fov) {
			c.angle.Fov = fov
		}
	}
}

// WithFovBounds overrides the [10, 160] field of view range. Invalid ranges are ignored.
//
// Parameters:
//   - minFov: lower bound in degrees, > 0
//   - maxFov: upper bound in degrees, >= minFov
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithFovBounds(minFov, maxFov float64) ControllerBuilderOption {
	return func(c *controllerImpl) {
		b := FovBounds{Min: minFov, Max: maxFov}
		if b.valid() {
			c.fovBounds = b
		}
	}
}

// WithAngle sets the initial viewing angle in radians.
func WithAngle(lng, lat float64) ControllerBuilderOption {
	return func(c *controllerImpl) {
		if common.Finite(lng, lat) {
			c.angle.Lng = lng
			c.angle.Lat = lat
		}
	}
}

// WithMouseScale sets the factor applied to raw mouse movement before the radius division.
func WithMouseScale(scale float64) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.pointer.SetMouseScale(scale)
	}
}

// WithWheelScale sets degrees of field of view per unit of wheel deltaY.
// Non-finite values are ignored.
func WithWheelScale(scale float64) ControllerBuilderOption {
	return func(c *controllerImpl) {
		if common.Finite(scale) {
			c.wheelScale = scale
		}
	}
}

// WithSensor enables or disables device orientation input.
func WithSensor(enabled bool) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.sensorEnabled = enabled
	}
}

// WithResizeCallback registers the function that receives Resize events.
//
// Parameters:
//   - callback: called with the new viewport size in pixels
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithResizeCallback(callback func(width, height int)) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.resizeCallback = callback
	}
}
