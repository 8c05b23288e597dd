package mesh

import (
	"math"
	"strings"
	"testing"
)

const eps = 1e-4

func TestCylinderGeometry(t *testing.T) {
	m := Cylinder(0.2, 16)
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate(): %v", err)
	}
	if m.TriangleCount() != 32 {
		t.Errorf("TriangleCount() = %d, want 32", m.TriangleCount())
	}

	bbMin, bbMax := m.Bounds()
	if math.Abs(float64(bbMin.Y()+0.5)) > eps || math.Abs(float64(bbMax.Y()-0.5)) > eps {
		t.Errorf("Y extent [%v, %v], want [-0.5, 0.5]", bbMin.Y(), bbMax.Y())
	}
	if bbMax.X() > 0.2+eps || bbMax.Z() > 0.2+eps {
		t.Errorf("radius exceeded: max = %v", bbMax)
	}

	for i, v := range m.Vertices {
		if math.Abs(float64(v.Normal.Len())-1) > eps {
			t.Fatalf("vertex %d normal length %v, want 1", i, v.Normal.Len())
		}
		if math.Abs(float64(v.Normal.Y())) > eps {
			t.Fatalf("vertex %d normal has Y component %v; tube normals are radial", i, v.Normal.Y())
		}
	}
}

func TestElbowGeometry(t *testing.T) {
	m := Elbow(0.2, 16, 8)
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate(): %v", err)
	}
	if m.TriangleCount() == 0 {
		t.Fatal("empty elbow")
	}

	// Entry ring sits on the bottom block face, exit ring on the right
	// face; the tube must stay inside the unit block.
	bbMin, bbMax := m.Bounds()
	if bbMin.Y() < -0.5-eps || bbMax.X() > 0.5+eps {
		t.Errorf("elbow leaves the block: min %v max %v", bbMin, bbMax)
	}

	for i, v := range m.Vertices {
		if math.Abs(float64(v.Normal.Len())-1) > eps {
			t.Fatalf("vertex %d normal length %v, want 1", i, v.Normal.Len())
		}
	}
}

func TestElbowOpenings(t *testing.T) {
	m := Elbow(0.2, 8, 4)

	var bottom, right int
	for _, v := range m.Vertices {
		if math.Abs(float64(v.Position.Y()+0.5)) < eps {
			bottom++
		}
		if math.Abs(float64(v.Position.X()-0.5)) < eps {
			right++
		}
	}
	// One full ring (segments+1 vertices with seam) per opening.
	if bottom != 9 {
		t.Errorf("bottom opening has %d vertices, want 9", bottom)
	}
	if right != 9 {
		t.Errorf("right opening has %d vertices, want 9", right)
	}
}

func TestCubeGeometry(t *testing.T) {
	m := Cube()
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate(): %v", err)
	}
	if m.TriangleCount() != 12 {
		t.Errorf("TriangleCount() = %d, want 12", m.TriangleCount())
	}
	if len(m.Vertices) != 24 {
		t.Errorf("len(Vertices) = %d, want 24 (4 per face)", len(m.Vertices))
	}

	bbMin, bbMax := m.Bounds()
	for axis := 0; axis < 3; axis++ {
		if math.Abs(float64(bbMin[axis]+0.5)) > eps || math.Abs(float64(bbMax[axis]-0.5)) > eps {
			t.Errorf("axis %d extent [%v, %v], want [-0.5, 0.5]", axis, bbMin[axis], bbMax[axis])
		}
	}

	for i, v := range m.Vertices {
		if math.Abs(float64(v.Normal.Len())-1) > eps {
			t.Fatalf("vertex %d normal length %v, want 1", i, v.Normal.Len())
		}
		// Face normals are axis-aligned and point away from the center.
		if d := v.Normal.Dot(v.Position); d < eps {
			t.Fatalf("vertex %d normal %v points inward at %v", i, v.Normal, v.Position)
		}
	}
}

func TestDefaultsApplied(t *testing.T) {
	m := Cylinder(0, 0)
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate(): %v", err)
	}
	if m.TriangleCount() != DefaultSegments*2 {
		t.Errorf("TriangleCount() = %d, want %d", m.TriangleCount(), DefaultSegments*2)
	}
}

func TestLoadOBJTriangles(t *testing.T) {
	const obj = `
# a single quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vn 0 0 1
vt 0 0
vt 1 0
vt 1 1
vt 0 1
f 1/1/1 2/2/1 3/3/1 4/4/1
`
	m, err := LoadOBJ(strings.NewReader(obj))
	if err != nil {
		t.Fatalf("LoadOBJ(): %v", err)
	}
	if m.TriangleCount() != 2 {
		t.Errorf("TriangleCount() = %d, want 2 (fan-triangulated quad)", m.TriangleCount())
	}
	if len(m.Vertices) != 4 {
		t.Errorf("len(Vertices) = %d, want 4 (corners deduplicated)", len(m.Vertices))
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate(): %v", err)
	}
	if got := m.Vertices[0].Normal; got.Z() != 1 {
		t.Errorf("vertex normal = %v, want +Z", got)
	}
}

func TestLoadOBJIndexForms(t *testing.T) {
	tests := []struct {
		name string
		obj  string
		ok   bool
	}{
		{
			name: "position only",
			obj:  "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n",
			ok:   true,
		},
		{
			name: "position and normal",
			obj:  "v 0 0 0\nv 1 0 0\nv 0 1 0\nvn 0 0 1\nf 1//1 2//1 3//1\n",
			ok:   true,
		},
		{
			name: "negative indices",
			obj:  "v 0 0 0\nv 1 0 0\nv 0 1 0\nf -3 -2 -1\n",
			ok:   true,
		},
		{
			name: "index out of range",
			obj:  "v 0 0 0\nv 1 0 0\nf 1 2 3\n",
			ok:   false,
		},
		{
			name: "no faces",
			obj:  "v 0 0 0\n",
			ok:   false,
		},
		{
			name: "face with two corners",
			obj:  "v 0 0 0\nv 1 0 0\nf 1 2\n",
			ok:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadOBJ(strings.NewReader(tt.obj))
			if (err == nil) != tt.ok {
				t.Errorf("LoadOBJ() error = %v, want ok = %v", err, tt.ok)
			}
		})
	}
}
