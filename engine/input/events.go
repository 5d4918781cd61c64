package input

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-pano/common"
)

// ErrInvalidEvent is wrapped by every Validate failure.
var ErrInvalidEvent = errors.New("invalid input event")

// Kind tags the concrete type of an Event.
type Kind int

const (
	KindPointerDown Kind = iota
	KindPointerMove
	KindPointerUp
	KindTouchStart
	KindTouchMove
	KindTouchEnd
	KindWheel
	KindKeyDown
	KindKeyUp
	KindDeviceOrientation
	KindScreenOrientation
	KindResize
)

var kindNames = [...]string{
	KindPointerDown:       "pointerdown",
	KindPointerMove:       "pointermove",
	KindPointerUp:         "pointerup",
	KindTouchStart:        "touchstart",
	KindTouchMove:         "touchmove",
	KindTouchEnd:          "touchend",
	KindWheel:             "wheel",
	KindKeyDown:           "keydown",
	KindKeyUp:             "keyup",
	KindDeviceOrientation: "deviceorientation",
	KindScreenOrientation: "orientationchange",
	KindResize:            "resize",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Event is a raw input event delivered by a window backend or any other Source.
// Each concrete variant carries only the fields its kind needs.
type Event interface {
	// Kind returns the variant tag.
	//
	// Returns:
	//   - Kind: the event kind
	Kind() Kind

	// Validate checks the payload at the input boundary.
	//
	// Returns:
	//   - error: an error wrapping ErrInvalidEvent if the payload is unusable, nil otherwise
	Validate() error
}

// TouchPoint is one active touch contact in page coordinates.
type TouchPoint struct {
	ID    int
	PageX float64
	PageY float64
}

// Point returns the page position of the touch.
func (t TouchPoint) Point() common.Point {
	return common.Point{X: t.PageX, Y: t.PageY}
}

// PointerDown is a primary mouse button press.
type PointerDown struct {
	X, Y float64
}

// PointerMove is a mouse move. MovementX/Y are the device deltas since the previous move.
type PointerMove struct {
	X, Y                 float64
	MovementX, MovementY float64
}

// PointerUp is a primary mouse button release.
type PointerUp struct{}

// TouchStart fires when a finger is added. Touches lists every active contact.
type TouchStart struct {
	Touches []TouchPoint
}

// TouchMove fires when any active contact moves. Touches lists every active contact.
type TouchMove struct {
	Touches []TouchPoint
}

// TouchEnd fires when a finger is lifted. Touches lists the contacts still down.
type TouchEnd struct {
	Touches []TouchPoint
}

// Wheel is a scroll step. DeltaY follows the DOM convention: positive scrolls down and widens the view.
type Wheel struct {
	DeltaY float64
}

// KeyDown is a key press.
type KeyDown struct {
	Code common.KeyCode
}

// KeyUp is a key release.
type KeyUp struct {
	Code common.KeyCode
}

// DeviceOrientation is a device orientation sensor sample in degrees.
// An axis the sensor did not report is carried as NaN and contributes nothing.
type DeviceOrientation struct {
	Alpha float64
	Beta  float64
	Gamma float64
}

// ScreenOrientation reports the screen rotation angle in degrees.
type ScreenOrientation struct {
	Degrees float64
}

// Resize reports the new drawable size in pixels.
type Resize struct {
	Width, Height int
}

func (PointerDown) Kind() Kind       { return KindPointerDown }
func (PointerMove) Kind() Kind       { return KindPointerMove }
func (PointerUp) Kind() Kind         { return KindPointerUp }
func (TouchStart) Kind() Kind        { return KindTouchStart }
func (TouchMove) Kind() Kind         { return KindTouchMove }
func (TouchEnd) Kind() Kind          { return KindTouchEnd }
func (Wheel) Kind() Kind             { return KindWheel }
func (KeyDown) Kind() Kind           { return KindKeyDown }
func (KeyUp) Kind() Kind             { return KindKeyUp }
func (DeviceOrientation) Kind() Kind { return KindDeviceOrientation }
func (ScreenOrientation) Kind() Kind { return KindScreenOrientation }
func (Resize) Kind() Kind            { return KindResize }

func (e PointerDown) Validate() error {
	if !common.Finite(e.X, e.Y) {
		return invalid(e, "non-finite position")
	}
	return nil
}

func (e PointerMove) Validate() error {
	if !common.Finite(e.X, e.Y, e.MovementX, e.MovementY) {
		return invalid(e, "non-finite position or movement")
	}
	return nil
}

func (PointerUp) Validate() error { return nil }

func (e TouchStart) Validate() error { return validateTouches(e, e.Touches) }

func (e TouchMove) Validate() error { return validateTouches(e, e.Touches) }

func (e TouchEnd) Validate() error { return validateTouches(e, e.Touches) }

func (e Wheel) Validate() error {
	if !common.Finite(e.DeltaY) {
		return invalid(e, "non-finite deltaY")
	}
	return nil
}

func (KeyDown) Validate() error { return nil }

func (KeyUp) Validate() error { return nil }

// Validate accepts missing axes; they are neutral rather than malformed.
func (DeviceOrientation) Validate() error { return nil }

func (e ScreenOrientation) Validate() error {
	if !common.Finite(e.Degrees) {
		return invalid(e, "non-finite angle")
	}
	return nil
}

func (e Resize) Validate() error {
	if e.Width <= 0 || e.Height <= 0 {
		return invalid(e, fmt.Sprintf("size %dx%d", e.Width, e.Height))
	}
	return nil
}

func validateTouches(e Event, touches []TouchPoint) error {
	for _, t := range touches {
		if !common.Finite(t.PageX, t.PageY) {
			return invalid(e, fmt.Sprintf("touch %d has non-finite position", t.ID))
		}
	}
	return nil
}

func invalid(e Event, reason string) error {
	return fmt.Errorf("%s: %s: %w", e.Kind(), reason, ErrInvalidEvent)
}
