package input

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-pano/common"
)

// ErrUnsupportedOrientation is returned for screen rotations the sensor tracker cannot compensate.
var ErrUnsupportedOrientation = errors.New("unsupported screen orientation")

// landscapeBetaOffset is subtracted from beta while the screen is rotated 90 degrees.
const landscapeBetaOffset = 90.0

// SensorTracker integrates device orientation samples into an incremental (alpha, beta) delta.
//
// Only portrait (0) and landscape (90) rotations are compensated. At 180 and 270 the
// tracker keeps recording samples but contributes no delta and drops its baseline,
// so returning to a supported rotation starts fresh instead of jumping.
type SensorTracker struct {
	screen    float64
	supported bool

	hasAlpha, hasBeta   bool
	lastAlpha, lastBeta float64

	dAlpha, dBeta float64
}

// NewSensorTracker creates a tracker in portrait orientation with no baseline.
func NewSensorTracker() *SensorTracker {
	return &SensorTracker{supported: true}
}

// Sample integrates one sensor reading. Missing axes leave their baseline untouched.
//
// Parameters:
//   - e: the sensor sample in degrees
func (s *SensorTracker) Sample(e DeviceOrientation) {
	if !s.supported {
		return
	}

	if common.Finite(e.Alpha) {
		if s.hasAlpha {
			s.dAlpha += common.WrapDegrees(e.Alpha - s.lastAlpha)
		}
		s.lastAlpha, s.hasAlpha = e.Alpha, true
	}

	if common.Finite(e.Beta) {
		beta := e.Beta - betaOffset(s.screen)
		if s.hasBeta {
			s.dBeta += beta - s.lastBeta
		}
		s.lastBeta, s.hasBeta = beta, true
	}
}

// Rotate records a screen rotation. Angles are normalized to [0, 360).
//
// Parameters:
//   - deg: the screen rotation in degrees
//
// Returns:
//   - error: wraps ErrUnsupportedOrientation for anything other than 0 or 90 degrees
func (s *SensorTracker) Rotate(deg float64) error {
	if !common.Finite(deg) {
		deg = 0
	}
	deg = common.NormalizeDegrees(deg)
	prev, wasSupported := s.screen, s.supported
	s.screen = deg
	switch deg {
	case 0, 90:
		s.supported = true
		// The beta baseline moves with the offset so the rotation itself is not a delta.
		if wasSupported && s.hasBeta {
			s.lastBeta += betaOffset(prev) - betaOffset(deg)
		}
		return nil
	default:
		s.supported = false
		s.hasAlpha, s.hasBeta = false, false
		s.dAlpha, s.dBeta = 0, 0
		return fmt.Errorf("screen rotated %g degrees: %w", deg, ErrUnsupportedOrientation)
	}
}

// betaOffset is the amount subtracted from beta at a compensated screen rotation.
func betaOffset(screen float64) float64 {
	if screen == 90 {
		return landscapeBetaOffset
	}
	return 0
}

// Consume returns the delta accumulated since the last call and resets it.
//
// Returns:
//   - dlng: alpha delta in degrees
//   - dlat: beta delta in degrees
func (s *SensorTracker) Consume() (dlng, dlat float64) {
	dlng, dlat = s.dAlpha, s.dBeta
	s.dAlpha, s.dBeta = 0, 0
	return dlng, dlat
}

// Supported reports whether the current screen rotation is compensated.
func (s *SensorTracker) Supported() bool {
	return s.supported
}

// Reset drops the baseline and pending delta, keeping the screen rotation.
func (s *SensorTracker) Reset() {
	s.hasAlpha, s.hasBeta = false, false
	s.dAlpha, s.dBeta = 0, 0
}
