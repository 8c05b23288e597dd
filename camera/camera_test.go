package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-5

func TestNewDefaults(t *testing.T) {
	c := New(800, 600)
	if got := c.Aspect; math.Abs(float64(got)-800.0/600.0) > eps {
		t.Errorf("Aspect = %v, want %v", got, 800.0/600.0)
	}
	if c.FovY != DefaultFovY || c.Near != DefaultNear || c.Far != DefaultFar {
		t.Errorf("defaults = %v/%v/%v", c.FovY, c.Near, c.Far)
	}
}

func TestSetViewport(t *testing.T) {
	c := New(800, 600)
	c.SetViewport(1920, 1080)
	if got := c.Aspect; math.Abs(float64(got)-1920.0/1080.0) > eps {
		t.Errorf("Aspect after SetViewport = %v", got)
	}
	c.SetViewport(100, 0) // ignored
	if got := c.Aspect; math.Abs(float64(got)-1920.0/1080.0) > eps {
		t.Errorf("zero-height viewport changed aspect to %v", got)
	}
}

func TestViewProjectionDepthRange(t *testing.T) {
	// A point between the near and far planes must land in WebGPU's
	// [0, 1] clip depth after perspective divide.
	c := New(640, 480)
	vp := c.ViewProjection()

	clip := vp.Mul4x1(mgl32.Vec4{0, 0, 0, 1}) // scene origin, in view
	if clip.W() <= 0 {
		t.Fatalf("origin behind camera, w = %v", clip.W())
	}
	depth := clip.Z() / clip.W()
	if depth < 0 || depth > 1 {
		t.Errorf("clip depth = %v, want within [0, 1]", depth)
	}
}

func TestViewLooksAtTarget(t *testing.T) {
	c := New(640, 480)
	view := c.View()
	// The target must project onto the view axis: x = y = 0 in view space.
	v := view.Mul4x1(mgl32.Vec4{c.Target.X(), c.Target.Y(), c.Target.Z(), 1})
	if math.Abs(float64(v.X())) > eps || math.Abs(float64(v.Y())) > eps {
		t.Errorf("target in view space = (%v, %v, %v), want on -Z axis", v.X(), v.Y(), v.Z())
	}
	if v.Z() >= 0 {
		t.Errorf("target at view z = %v, want in front of camera (negative)", v.Z())
	}
}

func TestUniformUpdate(t *testing.T) {
	u := NewUniform()
	if u.ViewProjection != mgl32.Ident4() {
		t.Error("NewUniform() not identity")
	}
	c := New(640, 480)
	u.Update(c)
	if u.ViewProjection != c.ViewProjection() {
		t.Error("Update() did not copy the view-projection matrix")
	}
}

func TestControllerForwardApproachesTarget(t *testing.T) {
	c := New(640, 480)
	ct := NewController(0.01)
	before := c.Target.Sub(c.Eye).Len()

	ct.HandleKey(KeyForward, true)
	for i := 0; i < 10; i++ {
		ct.Update(c)
	}
	after := c.Target.Sub(c.Eye).Len()
	if after >= before {
		t.Errorf("distance %v -> %v, want closer", before, after)
	}
}

func TestControllerNeverCrossesTarget(t *testing.T) {
	c := New(640, 480)
	ct := NewController(0.5)
	ct.HandleKey(KeyForward, true)
	for i := 0; i < 1000; i++ {
		ct.Update(c)
	}
	if d := c.Target.Sub(c.Eye).Len(); d <= 0 {
		t.Errorf("eye reached target, distance = %v", d)
	}
}

func TestControllerOrbitKeepsRadius(t *testing.T) {
	c := New(640, 480)
	ct := NewController(0.05)
	radius := c.Target.Sub(c.Eye).Len()

	ct.HandleKey(KeyLeft, true)
	for i := 0; i < 100; i++ {
		ct.Update(c)
	}
	if got := c.Target.Sub(c.Eye).Len(); math.Abs(float64(got-radius)) > 1e-3 {
		t.Errorf("orbit radius %v -> %v, want constant", radius, got)
	}
}

func TestControllerReleasedKeysStop(t *testing.T) {
	c := New(640, 480)
	ct := NewController(0.01)
	ct.HandleKey(KeyBackward, true)
	ct.HandleKey(KeyBackward, false)
	eye := c.Eye
	ct.Update(c)
	if c.Eye != eye {
		t.Error("released key still moved the camera")
	}
	if ct.Moving() {
		t.Error("Moving() = true with no keys held")
	}
}
