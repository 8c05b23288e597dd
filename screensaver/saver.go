// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package screensaver

import (
	"fmt"
	"image"

	"github.com/gogpu/pipes"
	"github.com/gogpu/pipes/camera"
	"github.com/gogpu/pipes/render"
	"github.com/gogpu/pipes/render/mesh"
	"github.com/gogpu/pipes/render/texture"
	"github.com/gogpu/pipes/world"
)

// Saver advances the animation one frame at a time. It is not safe for
// concurrent use; both loops drive it from a single goroutine.
type Saver struct {
	cfg      Config
	world    *world.World
	cam      *camera.Camera
	ctrl     *camera.Controller
	light    *render.Light
	renderer render.Renderer

	frame uint64
}

// NewSaver builds the world, camera, and a renderer from the config.
func NewSaver(cfg Config) (*Saver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	worldOpts := []world.Option{
		world.WithBounds(cfg.BoundsX, cfg.BoundsY, cfg.BoundsZ),
		world.WithTurnProbability(cfg.TurnProbability),
		world.WithStopProbability(cfg.StopProbability),
	}
	if cfg.Seed != 0 {
		worldOpts = append(worldOpts, world.WithSeed(cfg.Seed))
	}

	tex := texture.Checkerboard(8)
	if cfg.Texture != "" {
		loaded, err := texture.LoadFile(cfg.Texture)
		if err != nil {
			return nil, err
		}
		tex = loaded
	}

	opts := render.Options{
		Width:   cfg.Width,
		Height:  cfg.Height,
		IMesh:   mesh.Cylinder(mesh.DefaultPipeRadius, mesh.DefaultSegments),
		LMesh:   mesh.Elbow(mesh.DefaultPipeRadius, mesh.DefaultSegments, mesh.DefaultSegments),
		Texture: tex,
	}
	var renderer render.Renderer
	var err error
	if cfg.Backend != "" {
		renderer, err = render.New(cfg.Backend, opts)
	} else {
		renderer, err = render.Best(opts)
	}
	if err != nil {
		return nil, fmt.Errorf("screensaver: %w", err)
	}
	pipes.Logger().Info("screensaver ready",
		"backend", renderer.Name(),
		"bounds", fmt.Sprintf("%dx%dx%d", cfg.BoundsX, cfg.BoundsY, cfg.BoundsZ))

	return &Saver{
		cfg:      cfg,
		world:    world.New(worldOpts...),
		cam:      camera.New(float32(cfg.Width), float32(cfg.Height)),
		ctrl:     camera.NewController(camera.DefaultSpeed),
		light:    render.NewLight(),
		renderer: renderer,
	}, nil
}

// Backend returns the name of the active rendering backend.
func (s *Saver) Backend() string { return s.renderer.Name() }

// World exposes the pipe world, mainly for status output.
func (s *Saver) World() *world.World { return s.world }

// HandleKey forwards a camera key transition.
func (s *Saver) HandleKey(k camera.Key, pressed bool) {
	s.ctrl.HandleKey(k, pressed)
}

// Resize updates the camera viewport and the render target.
func (s *Saver) Resize(width, height int) {
	s.cam.SetViewport(float32(width), float32(height))
	s.renderer.Resize(width, height)
}

// Step advances the simulation one frame: the light orbits, the camera
// applies held keys, and the world grows on its cadence, resetting once
// it fills or reaches the configured segment cap.
func (s *Saver) Step() {
	s.light.Orbit(render.DefaultOrbitStep)
	s.ctrl.Update(s.cam)

	if s.frame%uint64(s.cfg.GrowthEvery) == 0 {
		if s.world.Full() || (s.cfg.MaxPipes > 0 && s.world.Len() >= s.cfg.MaxPipes) {
			s.world.Reset()
		} else if err := s.world.AddPipe(); err != nil {
			// A full world on the next cadence tick restarts the scene.
			pipes.Logger().Debug("pipe growth stalled", "error", err)
		}
	}
	s.frame++
}

// Frame renders the current state.
func (s *Saver) Frame() (*image.RGBA, error) {
	return s.renderer.Render(render.Frame{
		World:  s.world,
		Camera: s.cam,
		Light:  s.light,
	})
}

// Close releases the renderer.
func (s *Saver) Close() error {
	return s.renderer.Close()
}
