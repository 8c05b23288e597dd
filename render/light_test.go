package render

import (
	"math"
	"testing"
)

func TestLightOrbitKeepsRadiusAndHeight(t *testing.T) {
	l := NewLight()
	r0 := math.Hypot(float64(l.Position.X()), float64(l.Position.Z()))
	y0 := l.Position.Y()

	for i := 0; i < 360; i++ {
		l.Orbit(1.0)
	}

	r1 := math.Hypot(float64(l.Position.X()), float64(l.Position.Z()))
	if math.Abs(r1-r0) > 1e-3 {
		t.Errorf("orbit radius %v -> %v", r0, r1)
	}
	if math.Abs(float64(l.Position.Y()-y0)) > 1e-4 {
		t.Errorf("orbit height %v -> %v", y0, l.Position.Y())
	}
	// Full circle: back near the start.
	if math.Abs(float64(l.Position.X()-2)) > 1e-2 || math.Abs(float64(l.Position.Z()-2)) > 1e-2 {
		t.Errorf("full orbit ended at %v, want near (2, 2, 2)", l.Position)
	}
}

func TestLightUniformLayout(t *testing.T) {
	l := NewLight()
	u := l.Uniform()
	if u.Position != [3]float32{2, 2, 2} {
		t.Errorf("uniform position = %v", u.Position)
	}
	if u.Color != [3]float32{1, 1, 1} {
		t.Errorf("uniform color = %v", u.Color)
	}
	if u.Pad0 != 0 || u.Pad1 != 0 {
		t.Error("padding not zero")
	}
}
