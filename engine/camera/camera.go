package camera

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

type cameraImpl struct {
	mu *sync.Mutex

	fov    float64 // degrees
	aspect float64
	near   float64
	far    float64

	pose Pose

	viewMatrix                  mgl64.Mat4
	projectionMatrix            mgl64.Mat4
	viewProjectionMatrix        mgl64.Mat4
	inverseViewProjectionMatrix mgl64.Mat4
}

// Camera is the pose sink for the panorama renderer. It sits at the origin of the sphere,
// takes one Pose per frame via Apply, and keeps the view and projection matrices in sync.
// Safe for concurrent use so a render goroutine may read matrices while the frame loop applies poses.
type Camera interface {
	// Fov returns the vertical field of view in degrees.
	//
	// Returns:
	//   - float64: field of view in degrees
	Fov() float64

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float64: the aspect ratio
	Aspect() float64

	// Near returns the near clipping plane distance.
	Near() float64

	// Far returns the far clipping plane distance.
	Far() float64

	// Pose returns the last applied pose.
	//
	// Returns:
	//   - Pose: the current pose
	Pose() Pose

	// ViewMatrix returns the current view matrix.
	ViewMatrix() mgl64.Mat4

	// ProjectionMatrix returns the current perspective projection matrix.
	ProjectionMatrix() mgl64.Mat4

	// ViewProjectionMatrix returns projection * view.
	ViewProjectionMatrix() mgl64.Mat4

	// PickRay returns the world-space direction through a point in normalized device
	// coordinates, x and y in [-1, 1] with +y up. Used to hit-test hotspots on the sphere.
	//
	// Parameters:
	//   - ndcX, ndcY: normalized device coordinates
	//
	// Returns:
	//   - mgl64.Vec3: unit direction from the camera
	PickRay(ndcX, ndcY float64) mgl64.Vec3

	// Apply takes a new pose. The pose's field of view replaces the camera's.
	//
	// Parameters:
	//   - pose: the pose produced by the control layer this frame
	Apply(pose Pose)

	// SetFov sets the field of view in degrees and recomputes matrices.
	SetFov(fov float64)

	// SetAspect sets the aspect ratio (width / height) and recomputes matrices.
	// Non-positive values are ignored.
	SetAspect(aspect float64)

	// SetNear sets the near clipping plane distance and recomputes matrices.
	SetNear(near float64)

	// SetFar sets the far clipping plane distance and recomputes matrices.
	SetFar(far float64)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a Camera facing +X with a 75 degree field of view.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:     &sync.Mutex{},
		fov:    75,
		aspect: 1,
		near:   0.1,
		far:    1000,
	}
	for _, option := range options {
		option(c)
	}
	c.pose = ProjectLookAt(0, 0, c.fov, 1)
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Fov() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) Pose() Pose {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pose
}

func (c *cameraImpl) ViewMatrix() mgl64.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl64.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl64.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) PickRay(ndcX, ndcY float64) mgl64.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.inverseViewProjectionMatrix.Mul4x1(mgl64.Vec4{ndcX, ndcY, 0.5, 1})
	if p[3] == 0 {
		return c.pose.Forward()
	}
	return p.Vec3().Mul(1 / p[3]).Normalize()
}

func (c *cameraImpl) Apply(pose Pose) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pose = pose
	if pose.Fov > 0 {
		c.fov = pose.Fov
	}
	c.updateMatrices()
}

func (c *cameraImpl) SetFov(fov float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.pose.Fov = fov
	c.updateMatrices()
}

func (c *cameraImpl) SetAspect(aspect float64) {
	if aspect <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) SetNear(near float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
	c.updateMatrices()
}

func (c *cameraImpl) SetFar(far float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.far = far
	c.updateMatrices()
}

// updateMatrices recalculates the view, projection, view-projection and inverse view-projection matrices.
// The camera sits at the origin, so the view matrix is the inverse of the pose orientation.
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	c.viewMatrix = c.pose.Orientation.Conjugate().Mat4()
	c.projectionMatrix = mgl64.Perspective(mgl64.DegToRad(c.fov), c.aspect, c.near, c.far)
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
	c.inverseViewProjectionMatrix = c.viewProjectionMatrix.Inv()
}
