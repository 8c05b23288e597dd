// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultPipeRadius is the tube radius used by the built-in pipe meshes,
// in block units.
const DefaultPipeRadius = 0.2

// DefaultSegments is the default ring tessellation of the built-in pipe
// meshes.
const DefaultSegments = 16

// Cylinder builds the straight (I) pipe segment: an open tube of the
// given radius along +Y, spanning one block from y = -0.5 to y = 0.5.
// segments is the number of sides around the tube; values below 3 use
// DefaultSegments. The tube has no end caps since segments connect.
func Cylinder(radius float32, segments int) *Mesh {
	if radius <= 0 {
		radius = DefaultPipeRadius
	}
	if segments < 3 {
		segments = DefaultSegments
	}

	m := &Mesh{}
	// Two rings of segments+1 vertices; the duplicated seam vertex
	// carries u = 1 so the texture wraps cleanly.
	for ring := 0; ring < 2; ring++ {
		y := float32(ring) - 0.5
		for s := 0; s <= segments; s++ {
			a := 2 * math.Pi * float64(s) / float64(segments)
			sin, cos := math.Sincos(a)
			n := mgl32.Vec3{float32(cos), 0, float32(sin)}
			m.Vertices = append(m.Vertices, Vertex{
				Position: mgl32.Vec3{n.X() * radius, y, n.Z() * radius},
				Normal:   n,
				UV:       mgl32.Vec2{float32(s) / float32(segments), float32(ring)},
			})
		}
	}

	stride := uint32(segments + 1)
	for s := uint32(0); s < uint32(segments); s++ {
		a, b := s, s+1
		c, d := stride+s, stride+s+1
		m.Indices = append(m.Indices,
			a, c, b,
			b, c, d,
		)
	}
	return m
}

// Elbow builds the elbow (L) pipe segment: a quarter-torus tube joining
// a +Y entry at the bottom block face to a +X exit at the right block
// face. segments is the ring tessellation, arcSegments the subdivision
// along the bend; values below 3 (2 for arcSegments) use defaults.
func Elbow(radius float32, segments, arcSegments int) *Mesh {
	if radius <= 0 {
		radius = DefaultPipeRadius
	}
	if segments < 3 {
		segments = DefaultSegments
	}
	if arcSegments < 2 {
		arcSegments = DefaultSegments / 2
	}

	// The centerline is a quarter circle of radius 0.5 around the block
	// corner point (0.5, -0.5, 0), running from the bottom face center
	// (0, -0.5, 0) to the right face center (0.5, 0, 0).
	const bend = 0.5
	center := mgl32.Vec3{bend, -bend, 0}

	m := &Mesh{}
	for a := 0; a <= arcSegments; a++ {
		t := float64(a) / float64(arcSegments) * math.Pi / 2
		sinT, cosT := math.Sincos(t)

		// outward points from the arc center to the centerline; binormal
		// is the constant +Z of the bend plane.
		outward := mgl32.Vec3{-float32(cosT), float32(sinT), 0}
		c := center.Add(outward.Mul(bend))
		binormal := mgl32.Vec3{0, 0, 1}

		for s := 0; s <= segments; s++ {
			ra := 2 * math.Pi * float64(s) / float64(segments)
			sinR, cosR := math.Sincos(ra)
			n := outward.Mul(float32(cosR)).Add(binormal.Mul(float32(sinR)))
			m.Vertices = append(m.Vertices, Vertex{
				Position: c.Add(n.Mul(radius)),
				Normal:   n,
				UV:       mgl32.Vec2{float32(s) / float32(segments), float32(a) / float32(arcSegments)},
			})
		}
	}

	stride := uint32(segments + 1)
	for a := uint32(0); a < uint32(arcSegments); a++ {
		for s := uint32(0); s < uint32(segments); s++ {
			i0 := a*stride + s
			i1 := i0 + 1
			i2 := i0 + stride
			i3 := i2 + 1
			m.Indices = append(m.Indices,
				i0, i2, i1,
				i1, i2, i3,
			)
		}
	}
	return m
}

// Cube builds a unit cube centered at the origin with per-face normals,
// used as the light position marker.
func Cube() *Mesh {
	m := &Mesh{}
	faces := []struct {
		normal, right, up mgl32.Vec3
	}{
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
	}
	for _, f := range faces {
		base := uint32(len(m.Vertices))
		center := f.normal.Mul(0.5)
		for _, corner := range [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			pos := center.Add(f.right.Mul(corner[0] * 0.5)).Add(f.up.Mul(corner[1] * 0.5))
			m.Vertices = append(m.Vertices, Vertex{
				Position: pos,
				Normal:   f.normal,
				UV:       mgl32.Vec2{(corner[0] + 1) / 2, (corner[1] + 1) / 2},
			})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}
