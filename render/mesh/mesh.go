// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package mesh provides the pipe segment geometry: a small triangle-mesh
// type, a Wavefront OBJ reader for externally modeled pipes, and
// procedural generators used when no model files are installed.
//
// Meshes use a unit grid block as their bounding volume: a segment spans
// one block and its openings sit centered on block faces so that
// adjacent segments line up.
package mesh

import (
	"github.com/go-gl/mathgl/mgl32"
)

// VertexSize is the byte size of one Vertex on the GPU
// (position + normal + uv as float32).
const VertexSize = 32

// Vertex is one mesh vertex. The field order matches the vertex buffer
// layout consumed by shader.wgsl.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	UV       mgl32.Vec2
}

// Mesh is an indexed triangle mesh.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// Validate checks structural soundness: indices form whole triangles and
// stay within the vertex slice.
func (m *Mesh) Validate() error {
	if len(m.Indices)%3 != 0 {
		return errIndexCount
	}
	n := uint32(len(m.Vertices))
	for _, idx := range m.Indices {
		if idx >= n {
			return errIndexRange
		}
	}
	return nil
}

// Bounds returns the axis-aligned bounding box of the mesh. Zero values
// are returned for an empty mesh.
func (m *Mesh) Bounds() (bbMin, bbMax mgl32.Vec3) {
	if len(m.Vertices) == 0 {
		return
	}
	bbMin = m.Vertices[0].Position
	bbMax = bbMin
	for _, v := range m.Vertices[1:] {
		for i := 0; i < 3; i++ {
			if v.Position[i] < bbMin[i] {
				bbMin[i] = v.Position[i]
			}
			if v.Position[i] > bbMax[i] {
				bbMax[i] = v.Position[i]
			}
		}
	}
	return
}
