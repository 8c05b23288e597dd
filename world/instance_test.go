package world

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const rotEps = 1e-5

func vecNear(a, b mgl32.Vec3) bool {
	return a.Sub(b).Len() < rotEps
}

func TestIRotationAlignsMeshAxis(t *testing.T) {
	// The straight mesh follows +Y at rest; rotated, it must follow the
	// segment's axis (sign is irrelevant for a straight pipe).
	up := mgl32.Vec3{0, 1, 0}
	tests := []struct {
		dir  Direction
		axis mgl32.Vec3
	}{
		{DirX, mgl32.Vec3{1, 0, 0}},
		{DirNegX, mgl32.Vec3{1, 0, 0}},
		{DirY, mgl32.Vec3{0, 1, 0}},
		{DirNegY, mgl32.Vec3{0, 1, 0}},
		{DirZ, mgl32.Vec3{0, 0, 1}},
		{DirNegZ, mgl32.Vec3{0, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			got := iRotation(tt.dir).Rotate(up)
			if !vecNear(got, tt.axis) && !vecNear(got, tt.axis.Mul(-1)) {
				t.Errorf("iRotation(%v) maps +Y to %v, want +/-%v", tt.dir, got, tt.axis)
			}
		})
	}
}

func TestLRotationPerpendicularPairs(t *testing.T) {
	for dir := DirX; dir <= DirNegZ; dir++ {
		for prev := DirX; prev <= DirNegZ; prev++ {
			_, ok := lRotation(dir, prev)
			if dir.Perpendicular(prev) != ok {
				t.Errorf("lRotation(%v, %v) ok = %v, want %v",
					dir, prev, ok, dir.Perpendicular(prev))
			}
		}
	}
}

func TestLRotationIsUnit(t *testing.T) {
	for dir := DirX; dir <= DirNegZ; dir++ {
		for prev := DirX; prev <= DirNegZ; prev++ {
			q, ok := lRotation(dir, prev)
			if !ok {
				continue
			}
			if n := q.Len(); math.Abs(float64(n)-1) > rotEps {
				t.Errorf("lRotation(%v, %v) norm = %v, want 1", dir, prev, n)
			}
		}
	}
}

func TestInstanceModelTranslation(t *testing.T) {
	in := Instance{Position: mgl32.Vec3{3, 4, 5}, Rotation: mgl32.QuatIdent()}
	m := in.Model()
	// Column-major: translation lives in the last column.
	if m[12] != 3 || m[13] != 4 || m[14] != 5 {
		t.Errorf("Model() translation = (%v, %v, %v), want (3, 4, 5)", m[12], m[13], m[14])
	}
}

func TestRawInstanceLayout(t *testing.T) {
	in := Instance{Position: mgl32.Vec3{1, 2, 3}, Rotation: mgl32.QuatIdent()}
	raw := in.Raw()
	if len(raw)*4 != RawInstanceSize {
		t.Fatalf("RawInstance holds %d bytes, want %d", len(raw)*4, RawInstanceSize)
	}
	if raw[0] != 1 || raw[5] != 1 || raw[10] != 1 || raw[15] != 1 {
		t.Errorf("identity rotation diagonal = (%v, %v, %v, %v), want ones",
			raw[0], raw[5], raw[10], raw[15])
	}
}
