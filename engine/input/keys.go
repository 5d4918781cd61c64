package input

import "github.com/Carmen-Shannon/oxy-pano/common"

const (
	// KeyStep is the angular step per tick for a held direction key, in pointer units.
	KeyStep = 1.0
	// KeyBoostStep replaces KeyStep while shift is held.
	KeyBoostStep = 5.0
)

// KeyTracker tracks held navigation keys. Flags are level-triggered: a direction stays
// active until its key-up arrives.
type KeyTracker struct {
	left, right, up, down bool
	boost                 bool
}

// NewKeyTracker creates a tracker with no keys held.
func NewKeyTracker() *KeyTracker {
	return &KeyTracker{}
}

// KeyDown marks a key held. Opposite directions are mutually exclusive:
// pressing one clears the other.
//
// Parameters:
//   - code: the pressed key
func (k *KeyTracker) KeyDown(code common.KeyCode) {
	switch code {
	case common.KeyA, common.KeyLeft:
		k.left, k.right = true, false
	case common.KeyD, common.KeyRight:
		k.right, k.left = true, false
	case common.KeyW, common.KeyUp:
		k.up, k.down = true, false
	case common.KeyS, common.KeyDown:
		k.down, k.up = true, false
	case common.KeyLeftShift, common.KeyRightShift:
		k.boost = true
	}
}

// KeyUp clears a key. Releasing a key that is not held changes nothing.
//
// Parameters:
//   - code: the released key
func (k *KeyTracker) KeyUp(code common.KeyCode) {
	switch code {
	case common.KeyA, common.KeyLeft:
		k.left = false
	case common.KeyD, common.KeyRight:
		k.right = false
	case common.KeyW, common.KeyUp:
		k.up = false
	case common.KeyS, common.KeyDown:
		k.down = false
	case common.KeyLeftShift, common.KeyRightShift:
		k.boost = false
	}
}

// Active reports whether any direction key is held. Shift alone does not count.
func (k *KeyTracker) Active() bool {
	return k.left || k.right || k.up || k.down
}

// Boost reports whether shift is held.
func (k *KeyTracker) Boost() bool {
	return k.boost
}

// Delta returns the angular step for the held keys, before the 0.01 radian coefficient.
//
// Returns:
//   - dlng: negative for left, positive for right
//   - dlat: negative for up, positive for down
func (k *KeyTracker) Delta() (dlng, dlat float64) {
	step := KeyStep
	if k.boost {
		step = KeyBoostStep
	}
	if k.left {
		dlng -= step
	}
	if k.right {
		dlng += step
	}
	if k.up {
		dlat -= step
	}
	if k.down {
		dlat += step
	}
	return dlng, dlat
}

// Reset releases every key.
func (k *KeyTracker) Reset() {
	*k = KeyTracker{}
}
