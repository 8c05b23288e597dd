// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package softpipe

import (
	"image"
	"testing"

	"github.com/gogpu/pipes/camera"
	"github.com/gogpu/pipes/render"
	"github.com/gogpu/pipes/render/mesh"
	"github.com/gogpu/pipes/world"
)

func testOptions(w, h int) render.Options {
	return render.Options{
		Width:  w,
		Height: h,
		IMesh:  mesh.Cylinder(mesh.DefaultPipeRadius, mesh.DefaultSegments),
		LMesh:  mesh.Elbow(mesh.DefaultPipeRadius, mesh.DefaultSegments, mesh.DefaultSegments),
	}
}

func testFrame(t *testing.T, w, h int) render.Frame {
	t.Helper()
	wld := world.New(world.WithSeed(7))
	for i := 0; i < 40; i++ {
		if err := wld.AddPipe(); err != nil {
			t.Fatalf("AddPipe: %v", err)
		}
	}
	cam := camera.New(float32(w), float32(h))
	// Aim at the grid center so pipes land on screen.
	cam.Target = world.Position{X: 5, Y: 4, Z: 4}.Vec3()
	return render.Frame{World: wld, Camera: cam, Light: render.NewLight()}
}

func TestRegistered(t *testing.T) {
	r, err := render.New(BackendName, testOptions(64, 64))
	if err != nil {
		t.Fatalf("New(%q): %v", BackendName, err)
	}
	defer r.Close()
	if r.Name() != BackendName {
		t.Fatalf("Name = %q", r.Name())
	}
}

func TestRenderProducesPixels(t *testing.T) {
	const w, h = 160, 120
	r, err := newRenderer(testOptions(w, h))
	if err != nil {
		t.Fatalf("newRenderer: %v", err)
	}
	defer r.Close()

	img, err := r.Render(testFrame(t, w, h))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if img.Bounds().Dx() != w || img.Bounds().Dy() != h {
		t.Fatalf("bounds = %v, want %dx%d", img.Bounds(), w, h)
	}

	// The clear color is near black; lit pipe geometry must stand out.
	lit := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := img.RGBAAt(x, y)
			if c.R > 40 || c.G > 40 || c.B > 40 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Fatal("rendered frame is blank")
	}
}

func TestRenderSamplesTexture(t *testing.T) {
	const w, h = 160, 120
	opts := testOptions(w, h)
	// A solid red texture so every pipe triangle shades red.
	opts.Texture = image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := 0; i < len(opts.Texture.Pix); i += 4 {
		opts.Texture.Pix[i] = 0xFF
		opts.Texture.Pix[i+3] = 0xFF
	}

	r, err := newRenderer(opts)
	if err != nil {
		t.Fatalf("newRenderer: %v", err)
	}
	defer r.Close()

	img, err := r.Render(testFrame(t, w, h))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	red := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := img.RGBAAt(x, y)
			if c.R > 40 && c.G < 20 && c.B < 20 {
				red++
			}
		}
	}
	if red == 0 {
		t.Fatal("no red pipe pixels; texture was not sampled")
	}
}

func TestRenderEmptyWorld(t *testing.T) {
	const w, h = 64, 64
	r, err := newRenderer(testOptions(w, h))
	if err != nil {
		t.Fatalf("newRenderer: %v", err)
	}
	defer r.Close()

	f := render.Frame{World: world.New(), Camera: camera.New(w, h), Light: render.NewLight()}
	img, err := r.Render(f)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	c := img.RGBAAt(w/2, h/2)
	if c.R > 10 || c.G > 10 || c.B > 10 {
		t.Fatalf("empty world should clear to near black, got %v", c)
	}
	if c.A != 0xFF {
		t.Fatalf("alpha = %d, want opaque", c.A)
	}
}

func TestResize(t *testing.T) {
	r, err := newRenderer(testOptions(64, 64))
	if err != nil {
		t.Fatalf("newRenderer: %v", err)
	}
	defer r.Close()

	r.Resize(128, 96)
	img, err := r.Render(testFrame(t, 128, 96))
	if err != nil {
		t.Fatalf("Render after resize: %v", err)
	}
	if img.Bounds().Dx() != 128 || img.Bounds().Dy() != 96 {
		t.Fatalf("bounds = %v, want 128x96", img.Bounds())
	}
}

func TestClosedRendererErrors(t *testing.T) {
	r, err := newRenderer(testOptions(32, 32))
	if err != nil {
		t.Fatalf("newRenderer: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := r.Render(testFrame(t, 32, 32)); err != render.ErrClosed {
		t.Fatalf("Render after Close = %v, want ErrClosed", err)
	}
}
