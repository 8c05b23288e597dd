// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package camera provides the look-at camera for the pipes scene and its
// GPU uniform layout.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// openGLToWGPU remaps clip-space depth from OpenGL's [-1, 1] to WebGPU's
// [0, 1]. Column-major.
var openGLToWGPU = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// Default camera parameters.
const (
	DefaultFovY = 45.0 // degrees
	DefaultNear = 0.1
	DefaultFar  = 200.0
)

// Camera is a perspective look-at camera.
type Camera struct {
	// Eye is the camera position.
	Eye mgl32.Vec3
	// Target is the point looked at.
	Target mgl32.Vec3
	// Up is the camera up vector.
	Up mgl32.Vec3

	// Aspect is width / height of the viewport.
	Aspect float32
	// FovY is the vertical field of view in degrees.
	FovY float32
	// Near and Far bound the view frustum depth.
	Near, Far float32
}

// New creates a camera for the given viewport size with the scene
// defaults: hovering slightly above the origin, looking at it.
func New(width, height float32) *Camera {
	return &Camera{
		Eye:    mgl32.Vec3{0, 2, 3},
		Target: mgl32.Vec3{0, 0, 0},
		Up:     mgl32.Vec3{0, 1, 0},
		Aspect: width / height,
		FovY:   DefaultFovY,
		Near:   DefaultNear,
		Far:    DefaultFar,
	}
}

// SetViewport updates the aspect ratio for a new viewport size.
func (c *Camera) SetViewport(width, height float32) {
	if height > 0 {
		c.Aspect = width / height
	}
}

// View returns the look-at view matrix.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye, c.Target, c.Up)
}

// Projection returns the perspective projection matrix in WebGPU clip
// space.
func (c *Camera) Projection() mgl32.Mat4 {
	proj := mgl32.Perspective(mgl32.DegToRad(c.FovY), c.Aspect, c.Near, c.Far)
	return openGLToWGPU.Mul4(proj)
}

// ViewProjection returns projection * view, the matrix uploaded to the
// camera uniform each frame.
func (c *Camera) ViewProjection() mgl32.Mat4 {
	return c.Projection().Mul4(c.View())
}

// UniformSize is the byte size of Uniform on the GPU.
const UniformSize = 64

// Uniform is the std140 camera uniform: a single column-major 4x4
// view-projection matrix. Must match CameraUniform in shader.wgsl.
type Uniform struct {
	ViewProjection mgl32.Mat4
}

// NewUniform returns an identity uniform.
func NewUniform() Uniform {
	return Uniform{ViewProjection: mgl32.Ident4()}
}

// Update recomputes the uniform from the camera.
func (u *Uniform) Update(c *Camera) {
	u.ViewProjection = c.ViewProjection()
}
