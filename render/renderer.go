// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render defines the rendering contract for the pipes scene and
// the registry through which backends are selected.
//
// Two backends ship with the module: render/softpipe (CPU projection,
// always available) and render/wgpu (WebGPU via gogpu/wgpu). Importing a
// backend package registers it; the screensaver then asks the registry
// for the best available one, or a specific one by name.
package render

import (
	"errors"
	"image"

	"github.com/gogpu/pipes/camera"
	"github.com/gogpu/pipes/render/mesh"
	"github.com/gogpu/pipes/world"
)

// Render errors.
var (
	// ErrNoBackend is returned when no registered backend is available.
	ErrNoBackend = errors.New("render: no backend available")

	// ErrUnknownBackend is returned for a name with no registration.
	ErrUnknownBackend = errors.New("render: unknown backend")

	// ErrClosed is returned when a closed renderer is used.
	ErrClosed = errors.New("render: renderer is closed")
)

// Scene clear constants shared by all backends.
const (
	// ClearR, ClearG, ClearB, ClearA is the near-black background.
	ClearR = 0.01
	ClearG = 0.01
	ClearB = 0.01
	ClearA = 1.0

	// ClearDepth is the depth buffer clear value.
	ClearDepth = 1.0
)

// Options configures a renderer at creation.
type Options struct {
	// Width, Height is the frame size in pixels.
	Width, Height int

	// IMesh is the straight pipe segment mesh.
	IMesh *mesh.Mesh

	// LMesh is the elbow pipe segment mesh.
	LMesh *mesh.Mesh

	// Texture is the pipe surface texture, or nil for flat shading.
	Texture *image.RGBA
}

// Frame bundles the scene state a backend renders from.
type Frame struct {
	// World holds the pipe instances.
	World *world.World

	// Camera provides the view-projection.
	Camera *camera.Camera

	// Light is the scene's point light.
	Light *Light
}

// Renderer renders pipe frames. Implementations are not required to be
// safe for concurrent use; the screensaver drives them from one
// goroutine.
type Renderer interface {
	// Name returns the backend identifier.
	Name() string

	// Resize changes the output frame size.
	Resize(width, height int)

	// Render draws the frame and returns the resulting image. The
	// returned image may be reused by the next Render call.
	Render(f Frame) (*image.RGBA, error)

	// Close releases backend resources.
	Close() error
}
