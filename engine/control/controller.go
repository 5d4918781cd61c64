package control

import (
	"github.com/Carmen-Shannon/oxy-pano/common"
	"github.com/Carmen-Shannon/oxy-pano/engine/camera"
	"github.com/Carmen-Shannon/oxy-pano/engine/debug"
	"github.com/Carmen-Shannon/oxy-pano/engine/input"
)

type controllerImpl struct {
	angle     AngleState
	fovBounds FovBounds

	pointer *input.PointerTracker
	keys    *input.KeyTracker
	model   OrientationModel

	wheelScale    float64
	sensorEnabled bool

	resizeCallback func(width, height int)

	subscriptions map[*Subscription]struct{}
}

// Controller turns raw input events into the viewing angle and camera pose.
//
// Events mutate tracker state as they arrive; Update runs once per frame, arbitrates
// between the trackers and produces the pose. The controller is not safe for concurrent
// use: HandleEvent and Update must run on the same goroutine.
type Controller interface {
	// HandleEvent validates and dispatches one input event. Invalid events are dropped.
	//
	// Parameters:
	//   - e: the event to handle
	HandleEvent(e input.Event)

	// Update advances the viewing angle by one frame and returns the camera pose.
	// Pinch takes precedence over keys, keys over pointer drag; sensor motion is added on top.
	//
	// Parameters:
	//   - radius: the panorama sphere radius
	//
	// Returns:
	//   - camera.Pose: the pose for this frame
	Update(radius float64) camera.Pose

	// Angle returns the current viewing angle.
	Angle() AngleState

	// SetAngle replaces the viewing angle. Fov is clamped; non-finite fields are ignored.
	SetAngle(angle AngleState)

	// SetFov sets the field of view in degrees, clamped to the controller's bounds.
	SetFov(fov float64)

	// SetResizeCallback registers the function that receives Resize events.
	SetResizeCallback(callback func(width, height int))

	// FovBounds returns the field of view range.
	FovBounds() FovBounds

	// Mode returns the projection mode of the orientation model.
	Mode() camera.Mode

	// SetSensorEnabled turns device orientation input on or off. Disabling drops sensor history.
	SetSensorEnabled(enabled bool)

	// SensorEnabled reports whether device orientation input is applied.
	SensorEnabled() bool

	// SensorPaused reports whether sensor input is enabled but held back by an
	// uncompensated screen rotation.
	SensorPaused() bool

	// Pointer returns the last pointer position in window coordinates, for hit-testing.
	Pointer() common.Point

	// Attach subscribes the controller to an event source.
	//
	// Parameters:
	//   - src: the event source
	//
	// Returns:
	//   - *Subscription: closes the subscription; safe to close more than once
	Attach(src input.Source) *Subscription

	// Attached returns the number of open subscriptions.
	Attached() int

	// DetachAll closes every open subscription.
	DetachAll()

	// Reset releases all held input and drops sensor history. The viewing angle is kept.
	Reset()
}

var _ Controller = &controllerImpl{}

// NewController creates a Controller in look-at mode with sensor input enabled.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - Controller: the newly created controller
func NewController(options ...ControllerBuilderOption) Controller {
	c := &controllerImpl{
		angle:         AngleState{Fov: DefaultFov},
		fovBounds:     DefaultFovBounds(),
		pointer:       input.NewPointerTracker(),
		keys:          input.NewKeyTracker(),
		model:         NewOrientationModel(camera.ModeLookAt),
		wheelScale:    DefaultWheelScale,
		sensorEnabled: true,
		subscriptions: make(map[*Subscription]struct{}),
	}
	for _, option := range options {
		option(c)
	}
	c.angle.Fov = c.fovBounds.Clamp(c.angle.Fov)
	return c
}

func (c *controllerImpl) HandleEvent(e input.Event) {
	if e == nil {
		return
	}
	if err := e.Validate(); err != nil {
		debug.Event("dropped event: %v", err)
		return
	}

	switch ev := e.(type) {
	case input.PointerDown:
		c.pointer.PointerDown(ev)
	case input.PointerMove:
		c.pointer.PointerMove(ev)
	case input.PointerUp:
		c.pointer.PointerUp()
	case input.TouchStart:
		c.pointer.TouchStart(ev.Touches)
	case input.TouchMove:
		c.pointer.TouchMove(ev.Touches)
	case input.TouchEnd:
		c.pointer.TouchEnd(ev.Touches)
	case input.Wheel:
		c.SetFov(c.angle.Fov + ev.DeltaY*c.wheelScale)
	case input.KeyDown:
		c.keys.KeyDown(ev.Code)
	case input.KeyUp:
		c.keys.KeyUp(ev.Code)
	case input.DeviceOrientation:
		if c.sensorEnabled {
			c.model.Sample(ev)
		}
	case input.ScreenOrientation:
		wasPaused := c.model.Paused()
		if err := c.model.Rotate(ev.Degrees); err != nil {
			debug.Event("sensor paused: %v", err)
		} else if wasPaused {
			debug.Event("sensor resumed at %g degrees", ev.Degrees)
		}
	case input.Resize:
		debug.Event("resize %dx%d", ev.Width, ev.Height)
		if c.resizeCallback != nil {
			c.resizeCallback(ev.Width, ev.Height)
		}
	default:
		debug.Event("dropped event: unhandled kind %s", e.Kind())
	}
}

func (c *controllerImpl) Update(radius float64) camera.Pose {
	movement := c.pointer.ConsumeMovement()
	pinch := c.pointer.ConsumePinch()

	switch {
	case c.pointer.Pinching() || pinch != 0:
		if pinch != 0 {
			c.SetFov(c.angle.Fov + pinch)
		}
	case c.keys.Active():
		dlng, dlat := c.keys.Delta()
		c.angle.Lng += dlng * AngleStep
		c.angle.Lat += dlat * AngleStep
	case c.pointer.Dragging():
		if common.Finite(radius) && radius > 0 {
			c.angle.Lng -= movement.DX / radius * AngleStep
			c.angle.Lat += movement.DY / radius * AngleStep
		}
	}

	if c.sensorEnabled {
		d := c.model.ConsumeDelta()
		c.angle.Lng -= d.Lng * AngleStep
		c.angle.Lat += d.Lat * AngleStep
	}

	pose := c.model.CurrentPose(c.angle, radius)
	if debug.IsEnabled(debug.LevelVerbose) {
		debug.Verbose("angle lng=%.4f lat=%.4f fov=%.2f", c.angle.Lng, c.angle.Lat, c.angle.Fov)
	}
	return pose
}

func (c *controllerImpl) Angle() AngleState {
	return c.angle
}

func (c *controllerImpl) SetAngle(angle AngleState) {
	if common.Finite(angle.Lng) {
		c.angle.Lng = angle.Lng
	}
	if common.Finite(angle.Lat) {
		c.angle.Lat = angle.Lat
	}
	c.SetFov(angle.Fov)
}

func (c *controllerImpl) SetFov(fov float64) {
	if !common.Finite(fov) {
		return
	}
	c.angle.Fov = c.fovBounds.Clamp(fov)
}

func (c *controllerImpl) SetResizeCallback(callback func(width, height int)) {
	c.resizeCallback = callback
}

func (c *controllerImpl) FovBounds() FovBounds {
	return c.fovBounds
}

func (c *controllerImpl) Mode() camera.Mode {
	return c.model.Mode()
}

func (c *controllerImpl) SetSensorEnabled(enabled bool) {
	if !enabled {
		c.model.Reset()
	}
	c.sensorEnabled = enabled
}

func (c *controllerImpl) SensorEnabled() bool {
	return c.sensorEnabled
}

func (c *controllerImpl) SensorPaused() bool {
	return c.sensorEnabled && c.model.Paused()
}

func (c *controllerImpl) Pointer() common.Point {
	return c.pointer.Pointer()
}

func (c *controllerImpl) Attach(src input.Source) *Subscription {
	s := &Subscription{}
	if src == nil {
		s.closed = true
		return s
	}
	s.owner = c
	s.unsubscribe = src.Subscribe(c.HandleEvent)
	c.subscriptions[s] = struct{}{}
	return s
}

func (c *controllerImpl) Attached() int {
	return len(c.subscriptions)
}

func (c *controllerImpl) DetachAll() {
	for s := range c.subscriptions {
		s.Close()
	}
}

func (c *controllerImpl) Reset() {
	c.pointer.Reset()
	c.keys.Reset()
	c.model.Reset()
}

func (c *controllerImpl) release(s *Subscription) {
	delete(c.subscriptions, s)
}
