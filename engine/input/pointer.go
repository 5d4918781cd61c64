package input

import (
	"github.com/Carmen-Shannon/oxy-pano/common"
)

// PointerTracker interprets mouse and touch sequences into a per-tick movement delta
// and a pinch value for field-of-view adjustment.
//
// Movement is coalesced: the last delta before a tick wins and is cleared once consumed,
// so a pointer held still stops turning the view. Pinch values accumulate until consumed.
type PointerTracker struct {
	pressed    bool
	multiTouch bool

	movement common.Movement
	pinch    float64

	// lastPoints holds the previous touch sample: one point in drag mode, two in pinch mode.
	lastPoints []common.Point

	pointer    common.Point
	mouseScale float64
}

// NewPointerTracker creates a tracker with a mouse scale of 1.
//
// Returns:
//   - *PointerTracker: the idle tracker
func NewPointerTracker() *PointerTracker {
	return &PointerTracker{mouseScale: 1}
}

// SetMouseScale sets the factor applied to raw mouse movement. Touch deltas are not scaled.
// Non-positive or non-finite values are ignored.
//
// Parameters:
//   - scale: multiplier for mouse movement units
func (p *PointerTracker) SetMouseScale(scale float64) {
	if !common.Finite(scale) || scale <= 0 {
		return
	}
	p.mouseScale = scale
}

// MouseScale returns the factor applied to raw mouse movement.
func (p *PointerTracker) MouseScale() float64 {
	return p.mouseScale
}

// PointerDown starts a mouse drag.
func (p *PointerTracker) PointerDown(e PointerDown) {
	p.pressed = true
	p.multiTouch = false
	p.pointer = common.Point{X: e.X, Y: e.Y}
}

// PointerMove records the movement of a pressed mouse. Moves without a press only update the pointer position.
func (p *PointerTracker) PointerMove(e PointerMove) {
	p.pointer = common.Point{X: e.X, Y: e.Y}
	if !p.pressed || p.multiTouch {
		return
	}
	p.movement = common.Movement{DX: e.MovementX, DY: e.MovementY}.Scale(p.mouseScale)
}

// PointerUp ends a mouse drag and clears any pending movement.
func (p *PointerTracker) PointerUp() {
	p.pressed = false
	p.movement = common.Movement{}
}

// TouchStart snapshots the active touches. Two or more touches switch to pinch mode and
// discard any pending movement, so the transition frame does not turn the view.
//
// Parameters:
//   - touches: every active touch contact
func (p *PointerTracker) TouchStart(touches []TouchPoint) {
	if len(touches) == 0 {
		return
	}
	p.pressed = true
	p.multiTouch = len(touches) > 1
	p.movement = common.Movement{}
	p.snapshot(touches)
}

// TouchMove updates movement (one touch) or the pinch value (two or more touches).
//
// Parameters:
//   - touches: every active touch contact
func (p *PointerTracker) TouchMove(touches []TouchPoint) {
	if !p.pressed || len(touches) == 0 {
		return
	}
	if p.multiTouch {
		p.pinchMove(touches)
		return
	}

	current := touches[len(touches)-1].Point()
	p.pointer = current
	if len(p.lastPoints) == 0 {
		p.lastPoints = []common.Point{current}
		return
	}
	p.movement = current.Sub(p.lastPoints[0])
	p.lastPoints[0] = current
}

// TouchEnd handles a lifted finger. The remaining touches decide the next mode:
// none ends the gesture, one resumes dragging from its current position, two or more keep pinching.
//
// Parameters:
//   - remaining: touch contacts still down
func (p *PointerTracker) TouchEnd(remaining []TouchPoint) {
	p.movement = common.Movement{}
	if len(remaining) == 0 {
		p.pressed = false
		p.multiTouch = false
		p.lastPoints = nil
		return
	}
	p.multiTouch = len(remaining) > 1
	p.snapshot(remaining)
}

// ConsumeMovement returns the pending movement and resets it to zero.
//
// Returns:
//   - common.Movement: the movement since the last consume
func (p *PointerTracker) ConsumeMovement() common.Movement {
	m := p.movement
	p.movement = common.Movement{}
	return m
}

// ConsumePinch returns the accumulated pinch value and resets it to zero.
// Positive values widen the field of view (fingers closing); negative values narrow it.
//
// Returns:
//   - float64: the pinch value since the last consume
func (p *PointerTracker) ConsumePinch() float64 {
	v := p.pinch
	p.pinch = 0
	return v
}

// Active reports whether a mouse button or a touch is down.
func (p *PointerTracker) Active() bool {
	return p.pressed
}

// Dragging reports whether a single-pointer drag is in progress.
func (p *PointerTracker) Dragging() bool {
	return p.pressed && !p.multiTouch
}

// Pinching reports whether two or more touches are down.
func (p *PointerTracker) Pinching() bool {
	return p.pressed && p.multiTouch
}

// Pointer returns the last known pointer position in window coordinates.
func (p *PointerTracker) Pointer() common.Point {
	return p.pointer
}

// Reset drops all gesture state.
func (p *PointerTracker) Reset() {
	scale := p.mouseScale
	*p = PointerTracker{mouseScale: scale}
}

func (p *PointerTracker) snapshot(touches []TouchPoint) {
	n := min(len(touches), 2)
	p.lastPoints = make([]common.Point, n)
	for i := 0; i < n; i++ {
		p.lastPoints[i] = touches[i].Point()
	}
	p.pointer = touches[len(touches)-1].Point()
}

func (p *PointerTracker) pinchMove(touches []TouchPoint) {
	if len(touches) < 2 || len(p.lastPoints) < 2 {
		return
	}
	current := []common.Point{touches[0].Point(), touches[1].Point()}
	p.pinch += PinchScale(p.lastPoints, current)
	p.lastPoints = current
}

// PinchScale compares the finger spread of two consecutive two-touch samples.
// Closing fingers yield prev/curr (> 1), opening fingers yield -curr/prev (< -1),
// and an unchanged or degenerate spread yields 0.
//
// Parameters:
//   - prev: the previous two touch positions
//   - curr: the current two touch positions
//
// Returns:
//   - float64: the signed pinch value
func PinchScale(prev, curr []common.Point) float64 {
	if len(prev) < 2 || len(curr) < 2 {
		return 0
	}
	s := common.Distance(prev[0], prev[1])
	e := common.Distance(curr[0], curr[1])
	switch {
	case s == 0 || e == 0 || s == e:
		return 0
	case s > e:
		return s / e
	default:
		return -e / s
	}
}
