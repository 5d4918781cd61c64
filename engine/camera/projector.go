package camera

import (
	"fmt"
	"math"
	"strings"

	"github.com/Carmen-Shannon/oxy-pano/common"
	"github.com/go-gl/mathgl/mgl64"
)

// Mode selects how a Pose is derived from the viewing angle.
type Mode int

const (
	// ModeLookAt points the camera from the origin at a target on the panorama sphere.
	ModeLookAt Mode = iota
	// ModeQuaternion composes device, screen and target rotations into one orientation.
	ModeQuaternion
)

func (m Mode) String() string {
	switch m {
	case ModeLookAt:
		return "lookat"
	case ModeQuaternion:
		return "quaternion"
	default:
		return "unknown"
	}
}

// ParseMode converts "lookat" or "quaternion" to a Mode. An empty string selects look-at.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lookat", "look-at", "look_at":
		return ModeLookAt, nil
	case "quaternion", "quat":
		return ModeQuaternion, nil
	default:
		return ModeLookAt, fmt.Errorf("unknown camera mode %q", s)
	}
}

// forward is the camera's viewing axis in its local frame.
var forward = mgl64.Vec3{0, 0, -1}

// Pose is the camera state handed to the rendering collaborator once per frame.
type Pose struct {
	Mode Mode

	// Lng and Lat are the viewing angles the pose was built from, in radians.
	Lng, Lat float64
	// Fov is the vertical field of view in degrees.
	Fov float64
	// Radius is the panorama sphere radius the pose was built for.
	Radius float64

	// Target is the look-at point on the sphere. In quaternion mode it is the point the
	// composed orientation faces at Radius.
	Target mgl64.Vec3
	// Orientation rotates camera-local axes into world axes. The camera looks down its local -Z.
	Orientation mgl64.Quat
}

// Forward returns the world-space viewing direction.
func (p Pose) Forward() mgl64.Vec3 {
	return p.Orientation.Rotate(forward)
}

// LookAtTarget returns the point on a sphere of the given radius at longitude lng and latitude lat.
//
// Parameters:
//   - lng: longitude in radians
//   - lat: latitude in radians
//   - radius: sphere radius
//
// Returns:
//   - mgl64.Vec3: (r·cos(lat)·cos(lng), r·sin(lat), r·cos(lat)·sin(lng))
func LookAtTarget(lng, lat, radius float64) mgl64.Vec3 {
	cosLat := math.Cos(lat)
	return mgl64.Vec3{
		radius * cosLat * math.Cos(lng),
		radius * math.Sin(lat),
		radius * cosLat * math.Sin(lng),
	}
}

// LookAtOrientation returns the orientation of a camera at the origin facing target with +Y up.
// When target is straight up or down the world Z axis stands in for up; a zero target yields identity.
//
// Parameters:
//   - target: the point to face
//
// Returns:
//   - mgl64.Quat: camera-to-world rotation
func LookAtOrientation(target mgl64.Vec3) mgl64.Quat {
	if target.Len() == 0 || !common.Finite(target[0], target[1], target[2]) {
		return mgl64.QuatIdent()
	}
	f := target.Normalize()
	up := mgl64.Vec3{0, 1, 0}
	if math.Abs(f.Dot(up)) > 1-1e-9 {
		up = mgl64.Vec3{0, 0, -1}
	}
	r := f.Cross(up).Normalize()
	u := r.Cross(f)
	basis := mgl64.Mat3FromCols(r, u, f.Mul(-1))
	return mgl64.Mat4ToQuat(basis.Mat4()).Normalize()
}

// ProjectLookAt builds a look-at pose for the viewing angle.
// A non-positive or non-finite radius falls back to the unit sphere.
func ProjectLookAt(lng, lat, fov, radius float64) Pose {
	r := radius
	if !common.Finite(r) || r <= 0 {
		r = 1
	}
	target := LookAtTarget(lng, lat, r)
	return Pose{
		Mode:        ModeLookAt,
		Lng:         lng,
		Lat:         lat,
		Fov:         fov,
		Radius:      radius,
		Target:      target,
		Orientation: LookAtOrientation(target),
	}
}

// ComposeOrientation builds the camera orientation for device-orientation viewing.
// The accumulated quaternion is right-multiplied, in order, by:
//
//  1. a -90 degree rotation about X mapping the device frame (screen facing up) onto the camera frame
//  2. the device rotation from (alpha, beta, -gamma) in Y-X-Z Euler order
//  3. the screen rotation about the viewing axis
//  4. the target rotation from (lat, -lng, 0) in Y-X-Z Euler order
//
// Non-finite angles contribute zero.
//
// Parameters:
//   - alpha, beta, gamma: device orientation in degrees
//   - screenDeg: screen rotation in degrees
//   - lng, lat: target viewing angle in radians
//
// Returns:
//   - mgl64.Quat: camera-to-world rotation
func ComposeOrientation(alpha, beta, gamma, screenDeg, lng, lat float64) mgl64.Quat {
	a := mgl64.DegToRad(common.OrZero(alpha))
	b := mgl64.DegToRad(common.OrZero(beta))
	g := mgl64.DegToRad(common.OrZero(gamma))
	s := mgl64.DegToRad(common.OrZero(screenDeg))

	q := mgl64.QuatRotate(-math.Pi/2, mgl64.Vec3{1, 0, 0})
	q = q.Mul(mgl64.AnglesToQuat(a, b, -g, mgl64.YXZ))
	q = q.Mul(mgl64.QuatRotate(-s, mgl64.Vec3{0, 0, 1}))
	q = q.Mul(mgl64.AnglesToQuat(-common.OrZero(lng), common.OrZero(lat), 0, mgl64.YXZ))
	return q.Normalize()
}

// ProjectComposed builds a quaternion-mode pose.
func ProjectComposed(alpha, beta, gamma, screenDeg, lng, lat, fov, radius float64) Pose {
	q := ComposeOrientation(alpha, beta, gamma, screenDeg, lng, lat)
	r := radius
	if !common.Finite(r) || r <= 0 {
		r = 1
	}
	return Pose{
		Mode:        ModeQuaternion,
		Lng:         lng,
		Lat:         lat,
		Fov:         fov,
		Radius:      radius,
		Target:      q.Rotate(forward).Mul(r),
		Orientation: q,
	}
}
