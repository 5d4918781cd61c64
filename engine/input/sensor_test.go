package input

import (
	"errors"
	"math"
	"testing"
)

func TestSensorTracker_FirstSampleIsBaseline(t *testing.T) {
	s := NewSensorTracker()
	s.Sample(DeviceOrientation{Alpha: 40, Beta: 80, Gamma: 3})
	if dlng, dlat := s.Consume(); dlng != 0 || dlat != 0 {
		t.Errorf("first sample delta = (%v, %v), want (0, 0)", dlng, dlat)
	}
}

func TestSensorTracker_Delta(t *testing.T) {
	s := NewSensorTracker()
	s.Sample(DeviceOrientation{Alpha: 40, Beta: 80})
	s.Sample(DeviceOrientation{Alpha: 45, Beta: 78})

	dlng, dlat := s.Consume()
	if dlng != 5 || dlat != -2 {
		t.Errorf("delta = (%v, %v), want (5, -2)", dlng, dlat)
	}
	if dlng, dlat := s.Consume(); dlng != 0 || dlat != 0 {
		t.Errorf("delta after consume = (%v, %v), want (0, 0)", dlng, dlat)
	}
}

func TestSensorTracker_AccumulatesBetweenConsumes(t *testing.T) {
	s := NewSensorTracker()
	s.Sample(DeviceOrientation{Alpha: 0, Beta: 0})
	s.Sample(DeviceOrientation{Alpha: 1, Beta: 2})
	s.Sample(DeviceOrientation{Alpha: 3, Beta: 5})

	if dlng, dlat := s.Consume(); dlng != 3 || dlat != 5 {
		t.Errorf("delta = (%v, %v), want (3, 5)", dlng, dlat)
	}
}

func TestSensorTracker_AlphaWraps(t *testing.T) {
	s := NewSensorTracker()
	s.Sample(DeviceOrientation{Alpha: 359, Beta: 0})
	s.Sample(DeviceOrientation{Alpha: 1, Beta: 0})
	if dlng, _ := s.Consume(); math.Abs(dlng-2) > 1e-9 {
		t.Errorf("wrapped alpha delta = %v, want 2", dlng)
	}
}

func TestSensorTracker_MissingAxesContributeZero(t *testing.T) {
	s := NewSensorTracker()
	s.Sample(DeviceOrientation{Alpha: 10, Beta: 10})
	s.Sample(DeviceOrientation{Alpha: math.NaN(), Beta: 12, Gamma: math.Inf(1)})
	if dlng, dlat := s.Consume(); dlng != 0 || dlat != 2 {
		t.Errorf("delta = (%v, %v), want (0, 2)", dlng, dlat)
	}

	// Alpha baseline is still the last real reading.
	s.Sample(DeviceOrientation{Alpha: 15, Beta: math.NaN()})
	if dlng, dlat := s.Consume(); dlng != 5 || dlat != 0 {
		t.Errorf("delta = (%v, %v), want (5, 0)", dlng, dlat)
	}
}

func TestSensorTracker_LandscapeOffset(t *testing.T) {
	s := NewSensorTracker()
	if err := s.Rotate(90); err != nil {
		t.Fatalf("Rotate(90): %v", err)
	}

	s.Sample(DeviceOrientation{Alpha: 0, Beta: 140})
	s.Sample(DeviceOrientation{Alpha: 0, Beta: 150})
	if _, dlat := s.Consume(); dlat != 10 {
		t.Errorf("landscape delta = %v, want 10", dlat)
	}
	if s.lastBeta != 60 {
		t.Errorf("landscape baseline = %v, want 60", s.lastBeta)
	}
}

func TestSensorTracker_RotationKeepsBaseline(t *testing.T) {
	s := NewSensorTracker()
	s.Sample(DeviceOrientation{Alpha: 0, Beta: 90})

	if err := s.Rotate(90); err != nil {
		t.Fatalf("Rotate(90): %v", err)
	}
	s.Sample(DeviceOrientation{Alpha: 0, Beta: 90})
	if dlng, dlat := s.Consume(); dlng != 0 || dlat != 0 {
		t.Errorf("delta after turning to landscape = (%v, %v), want (0, 0)", dlng, dlat)
	}

	if err := s.Rotate(0); err != nil {
		t.Fatalf("Rotate(0): %v", err)
	}
	s.Sample(DeviceOrientation{Alpha: 0, Beta: 90})
	if _, dlat := s.Consume(); dlat != 0 {
		t.Errorf("delta after turning back to portrait = %v, want 0", dlat)
	}

	s.Sample(DeviceOrientation{Alpha: 0, Beta: 95})
	if _, dlat := s.Consume(); dlat != 5 {
		t.Errorf("delta = %v, want 5", dlat)
	}
}

func TestSensorTracker_RepeatedRotationIsNoop(t *testing.T) {
	s := NewSensorTracker()
	_ = s.Rotate(90)
	s.Sample(DeviceOrientation{Alpha: 0, Beta: 100})
	_ = s.Rotate(90)
	s.Sample(DeviceOrientation{Alpha: 0, Beta: 100})
	if _, dlat := s.Consume(); dlat != 0 {
		t.Errorf("delta = %v, want 0", dlat)
	}
}

func TestSensorTracker_UnsupportedOrientation(t *testing.T) {
	for _, deg := range []float64{180, 270, -90, 45} {
		s := NewSensorTracker()
		s.Sample(DeviceOrientation{Alpha: 0, Beta: 0})
		err := s.Rotate(deg)
		if !errors.Is(err, ErrUnsupportedOrientation) {
			t.Errorf("Rotate(%v) error = %v, want ErrUnsupportedOrientation", deg, err)
		}
		s.Sample(DeviceOrientation{Alpha: 30, Beta: 30})
		if dlng, dlat := s.Consume(); dlng != 0 || dlat != 0 {
			t.Errorf("Rotate(%v): delta = (%v, %v), want (0, 0)", deg, dlng, dlat)
		}
		if s.Supported() {
			t.Errorf("Rotate(%v): Supported() = true", deg)
		}
	}
}

func TestSensorTracker_RecoversFromUnsupportedOrientation(t *testing.T) {
	s := NewSensorTracker()
	_ = s.Rotate(180)
	s.Sample(DeviceOrientation{Alpha: 100, Beta: 100})
	if err := s.Rotate(0); err != nil {
		t.Fatalf("Rotate(0): %v", err)
	}
	if !s.Supported() {
		t.Error("Supported() = false after returning to portrait")
	}

	s.Sample(DeviceOrientation{Alpha: 10, Beta: 10})
	if dlng, dlat := s.Consume(); dlng != 0 || dlat != 0 {
		t.Errorf("first sample after recovery = (%v, %v), want baseline only", dlng, dlat)
	}
	s.Sample(DeviceOrientation{Alpha: 12, Beta: 9})
	if dlng, dlat := s.Consume(); dlng != 2 || dlat != -1 {
		t.Errorf("delta = (%v, %v), want (2, -1)", dlng, dlat)
	}
}
