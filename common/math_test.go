package common

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	cases := []struct {
		name      string
		v, lo, hi float64
		want      float64
	}{
		{"inside", 75, 10, 160, 75},
		{"below", -5, 10, 160, 10},
		{"above", 1e6, 10, 160, 160},
		{"lower bound inclusive", 10, 10, 160, 10},
		{"upper bound inclusive", 160, 10, 160, 160},
		{"nan", math.NaN(), 10, 160, 10},
		{"positive infinity", math.Inf(1), 10, 160, 160},
		{"negative infinity", math.Inf(-1), 10, 160, 10},
	}
	for _, c := range cases {
		if got := Clamp(c.v, c.lo, c.hi); got != c.want {
			t.Errorf("%s: Clamp(%v, %v, %v) = %v, want %v", c.name, c.v, c.lo, c.hi, got, c.want)
		}
	}
}

func TestDistance(t *testing.T) {
	got := Distance(Point{X: 0, Y: 0}, Point{X: 3, Y: 4})
	if got != 5 {
		t.Errorf("Distance = %v, want 5", got)
	}
}

func TestWrapDegrees(t *testing.T) {
	cases := map[float64]float64{
		0:    0,
		180:  180,
		-180: 180,
		190:  -170,
		-358: 2,
		358:  -2,
		720:  0,
	}
	for in, want := range cases {
		if got := WrapDegrees(in); math.Abs(got-want) > 1e-9 {
			t.Errorf("WrapDegrees(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestNormalizeDegrees(t *testing.T) {
	cases := map[float64]float64{
		0:    0,
		-90:  270,
		450:  90,
		360:  0,
		-720: 0,
	}
	for in, want := range cases {
		if got := NormalizeDegrees(in); got != want {
			t.Errorf("NormalizeDegrees(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestCoalesce(t *testing.T) {
	if got := Coalesce(0.0, 0.0, 75.0, 90.0); got != 75 {
		t.Errorf("Coalesce = %v, want 75", got)
	}
	if got := Coalesce("", ""); got != "" {
		t.Errorf("Coalesce of zero values = %q, want empty", got)
	}
}

func TestOrZero(t *testing.T) {
	if OrZero(math.NaN()) != 0 || OrZero(math.Inf(1)) != 0 {
		t.Error("non-finite values must collapse to zero")
	}
	if OrZero(12.5) != 12.5 {
		t.Error("finite value must pass through")
	}
}

func TestKeyCodeFromDOM(t *testing.T) {
	cases := map[uint32]KeyCode{
		37: KeyLeft,
		39: KeyRight,
		38: KeyUp,
		40: KeyDown,
		65: KeyA,
		16: KeyLeftShift,
	}
	for dom, want := range cases {
		got, ok := KeyCodeFromDOM(dom)
		if !ok || got != want {
			t.Errorf("KeyCodeFromDOM(%d) = %v,%v want %v", dom, got, ok, want)
		}
	}
	if _, ok := KeyCodeFromDOM(999); ok {
		t.Error("unknown DOM code must not map")
	}
}
