// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultOrbitStep is the light's rotation about +Y per tick, in degrees.
const DefaultOrbitStep = 0.05

// Light is the scene's single point light. It slowly orbits the world's
// vertical axis so the pipe highlights move.
type Light struct {
	// Position is the light position in world space.
	Position mgl32.Vec3

	// Color is the light color, components in [0, 1].
	Color mgl32.Vec3
}

// NewLight returns the default white light above and beside the grid.
func NewLight() *Light {
	return &Light{
		Position: mgl32.Vec3{2, 2, 2},
		Color:    mgl32.Vec3{1, 1, 1},
	}
}

// Orbit rotates the light position about the +Y axis by step degrees.
func (l *Light) Orbit(step float32) {
	q := mgl32.QuatRotate(mgl32.DegToRad(step), mgl32.Vec3{0, 1, 0})
	l.Position = q.Rotate(l.Position)
}

// LightUniformSize is the byte size of LightUniform on the GPU.
const LightUniformSize = 32

// LightUniform is the std140 light uniform. vec3 fields are padded to
// 16 bytes. Must match Light in shader.wgsl.
type LightUniform struct {
	Position [3]float32
	Pad0     uint32
	Color    [3]float32
	Pad1     uint32
}

// Uniform returns the GPU layout for the light.
func (l *Light) Uniform() LightUniform {
	return LightUniform{
		Position: [3]float32(l.Position),
		Color:    [3]float32(l.Color),
	}
}
