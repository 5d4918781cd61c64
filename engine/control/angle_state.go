package control

import "github.com/Carmen-Shannon/oxy-pano/common"

const (
	// DefaultFov is the initial vertical field of view in degrees.
	DefaultFov = 75.0
	// MinFov and MaxFov bound the field of view unless overridden with WithFovBounds.
	MinFov = 10.0
	MaxFov = 160.0

	// AngleStep converts drag, key and sensor units into radians.
	AngleStep = 0.01
	// DefaultWheelScale converts wheel deltaY into degrees of field of view.
	DefaultWheelScale = 0.05
)

// AngleState is the viewing angle owned by the Controller.
// Lng and Lat are unbounded radians; Fov is in degrees and always inside the controller's bounds.
type AngleState struct {
	Lng float64
	Lat float64
	Fov float64
}

// FovBounds is the inclusive field of view range in degrees.
type FovBounds struct {
	Min float64
	Max float64
}

// DefaultFovBounds returns [MinFov, MaxFov].
func DefaultFovBounds() FovBounds {
	return FovBounds{Min: MinFov, Max: MaxFov}
}

// Clamp limits fov to the bounds.
func (b FovBounds) Clamp(fov float64) float64 {
	return common.Clamp(fov, b.Min, b.Max)
}

// valid reports whether the bounds form a usable range.
func (b FovBounds) valid() bool {
	return common.Finite(b.Min, b.Max) && b.Min > 0 && b.Min <= b.Max
}
