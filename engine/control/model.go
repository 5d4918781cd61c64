package control

import (
	"github.com/Carmen-Shannon/oxy-pano/common"
	"github.com/Carmen-Shannon/oxy-pano/engine/camera"
	"github.com/Carmen-Shannon/oxy-pano/engine/input"
)

// Delta is an angular change in sensor units (degrees), before AngleStep is applied.
type Delta struct {
	Lng float64
	Lat float64
}

// OrientationModel turns device orientation into camera motion. Exactly one model is
// chosen per controller: the incremental model feeds sensor deltas into the viewing angle,
// the quaternion model folds the raw device and screen orientation into the pose instead.
type OrientationModel interface {
	// Mode returns the projection mode this model produces.
	Mode() camera.Mode

	// Sample records a device orientation reading.
	Sample(e input.DeviceOrientation)

	// Rotate records a screen rotation in degrees.
	//
	// Returns:
	//   - error: wraps input.ErrUnsupportedOrientation if the model cannot compensate the rotation
	Rotate(deg float64) error

	// ConsumeDelta returns the angular delta accumulated since the last call and resets it.
	ConsumeDelta() Delta

	// Paused reports whether sensor input is ignored because the screen rotation cannot be compensated.
	Paused() bool

	// CurrentPose builds the camera pose for the viewing angle.
	//
	// Parameters:
	//   - angle: the current viewing angle
	//   - radius: the panorama sphere radius
	//
	// Returns:
	//   - camera.Pose: the pose for this frame
	CurrentPose(angle AngleState, radius float64) camera.Pose

	// Reset drops sensor history.
	Reset()
}

// NewOrientationModel returns the model for a projection mode. Unknown modes fall back to look-at.
func NewOrientationModel(mode camera.Mode) OrientationModel {
	if mode == camera.ModeQuaternion {
		return newQuaternionModel()
	}
	return newIncrementalModel()
}

// incrementalModel integrates sensor samples into lng/lat deltas and projects with look-at.
type incrementalModel struct {
	sensor *input.SensorTracker
}

var _ OrientationModel = &incrementalModel{}

func newIncrementalModel() *incrementalModel {
	return &incrementalModel{sensor: input.NewSensorTracker()}
}

func (m *incrementalModel) Mode() camera.Mode {
	return camera.ModeLookAt
}

func (m *incrementalModel) Sample(e input.DeviceOrientation) {
	m.sensor.Sample(e)
}

func (m *incrementalModel) Rotate(deg float64) error {
	return m.sensor.Rotate(deg)
}

func (m *incrementalModel) ConsumeDelta() Delta {
	dlng, dlat := m.sensor.Consume()
	return Delta{Lng: dlng, Lat: dlat}
}

func (m *incrementalModel) Paused() bool {
	return !m.sensor.Supported()
}

func (m *incrementalModel) CurrentPose(angle AngleState, radius float64) camera.Pose {
	return camera.ProjectLookAt(angle.Lng, angle.Lat, angle.Fov, radius)
}

func (m *incrementalModel) Reset() {
	m.sensor.Reset()
}

// quaternionModel keeps the latest device and screen orientation and composes them with the
// viewing angle. Any screen rotation is representable, so Rotate never fails.
type quaternionModel struct {
	device input.DeviceOrientation
	screen float64
}

var _ OrientationModel = &quaternionModel{}

func newQuaternionModel() *quaternionModel {
	m := &quaternionModel{}
	m.Reset()
	return m
}

func (m *quaternionModel) Mode() camera.Mode {
	return camera.ModeQuaternion
}

func (m *quaternionModel) Sample(e input.DeviceOrientation) {
	m.device = e
}

func (m *quaternionModel) Rotate(deg float64) error {
	m.screen = common.NormalizeDegrees(common.OrZero(deg))
	return nil
}

func (m *quaternionModel) ConsumeDelta() Delta {
	return Delta{}
}

func (m *quaternionModel) Paused() bool {
	return false
}

func (m *quaternionModel) CurrentPose(angle AngleState, radius float64) camera.Pose {
	d := m.device
	return camera.ProjectComposed(d.Alpha, d.Beta, d.Gamma, m.screen, angle.Lng, angle.Lat, angle.Fov, radius)
}

// Reset returns to an upright portrait device, which leaves the viewing angle alone in the composition.
func (m *quaternionModel) Reset() {
	m.device = input.DeviceOrientation{Alpha: 0, Beta: 90, Gamma: 0}
}
