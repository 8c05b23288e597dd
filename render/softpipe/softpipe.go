// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package softpipe is the CPU reference backend. It projects pipe meshes
// through the camera on the host, depth-sorts triangles painter style and
// rasterizes them with the gg vector context. Always available, lowest
// priority, the fallback when no GPU backend can open a device.
package softpipe

import (
	"image"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gg"

	"github.com/gogpu/pipes/render"
	"github.com/gogpu/pipes/render/mesh"
	"github.com/gogpu/pipes/world"
)

// BackendName identifies this backend in the registry.
const BackendName = "softpipe"

const ambient = 0.15

func init() {
	render.Register(render.RegistryEntry{
		Name:     BackendName,
		Priority: 10,
		Factory: func(opts render.Options) (render.Renderer, error) {
			return newRenderer(opts)
		},
		Available: func() bool { return true },
	})
}

type renderer struct {
	opts   render.Options
	ctx    *gg.Context
	closed bool
}

func newRenderer(opts render.Options) (*renderer, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 800, 600
	}
	return &renderer{
		opts: opts,
		ctx:  gg.NewContext(opts.Width, opts.Height),
	}, nil
}

func (r *renderer) Name() string { return BackendName }

func (r *renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 || (width == r.opts.Width && height == r.opts.Height) {
		return
	}
	r.opts.Width, r.opts.Height = width, height
	r.ctx = gg.NewContext(width, height)
}

func (r *renderer) Close() error {
	r.closed = true
	return nil
}

// screenTri is a projected triangle ready for rasterization.
type screenTri struct {
	x, y  [3]float64
	depth float32
	r     float64
	g     float64
	b     float64
}

func (r *renderer) Render(f render.Frame) (*image.RGBA, error) {
	if r.closed {
		return nil, render.ErrClosed
	}
	r.ctx.ClearWithColor(gg.RGBA{
		R: render.ClearR, G: render.ClearG, B: render.ClearB, A: render.ClearA,
	})

	vp := f.Camera.ViewProjection()
	tris := make([]screenTri, 0, 256)
	tris = r.appendInstances(tris, vp, f.Light, r.opts.IMesh, f.World.IPipeInstances())
	tris = r.appendInstances(tris, vp, f.Light, r.opts.LMesh, f.World.LPipeInstances())

	// Far triangles first so near ones paint over them.
	sort.Slice(tris, func(i, j int) bool { return tris[i].depth > tris[j].depth })

	for i := range tris {
		t := &tris[i]
		r.ctx.SetRGBA(t.r, t.g, t.b, 1)
		r.ctx.MoveTo(t.x[0], t.y[0])
		r.ctx.LineTo(t.x[1], t.y[1])
		r.ctx.LineTo(t.x[2], t.y[2])
		r.ctx.ClosePath()
		if err := r.ctx.Fill(); err != nil {
			return nil, err
		}
	}

	out, ok := r.ctx.Image().(*image.RGBA)
	if !ok {
		b := r.ctx.Image().Bounds()
		out = image.NewRGBA(b)
	}
	return out, nil
}

func (r *renderer) appendInstances(tris []screenTri, vp mgl32.Mat4, light *render.Light, m *mesh.Mesh, instances []world.Instance) []screenTri {
	if m == nil || len(instances) == 0 {
		return tris
	}
	w := float64(r.opts.Width)
	h := float64(r.opts.Height)
	for ii := range instances {
		model := instances[ii].Model()
		mvp := vp.Mul4(model)
		rot := instances[ii].Rotation.Mat4()
		for i := 0; i+2 < len(m.Indices); i += 3 {
			var t screenTri
			var clipped bool
			var shade float64
			var u, v float32
			for c := 0; c < 3; c++ {
				vert := m.Vertices[m.Indices[i+c]]
				clip := mvp.Mul4x1(vert.Position.Vec4(1))
				if clip.W() <= 0 {
					clipped = true
					break
				}
				ndc := clip.Mul(1 / clip.W())
				t.x[c] = (float64(ndc.X()) + 1) / 2 * w
				t.y[c] = (1 - float64(ndc.Y())) / 2 * h
				t.depth += clip.W() / 3
				u += vert.UV.X() / 3
				v += vert.UV.Y() / 3

				worldPos := model.Mul4x1(vert.Position.Vec4(1)).Vec3()
				normal := rot.Mul4x1(vert.Normal.Vec4(0)).Vec3()
				shade += lambert(worldPos, normal, light) / 3
			}
			if clipped {
				continue
			}
			br, bg, bb := r.albedo(u, v)
			t.r = br * shade * float64(light.Color.X())
			t.g = bg * shade * float64(light.Color.Y())
			t.b = bb * shade * float64(light.Color.Z())
			tris = append(tris, t)
		}
	}
	return tris
}

// Pipe surface albedo, matching the base color in shader.wgsl.
const (
	baseR = 0.72
	baseG = 0.74
	baseB = 0.78
)

// albedo samples the pipe texture at the given UV, one sample per
// triangle rather than per pixel. Falls back to the flat base color.
func (r *renderer) albedo(u, v float32) (float64, float64, float64) {
	tex := r.opts.Texture
	if tex == nil {
		return baseR, baseG, baseB
	}
	b := tex.Bounds()
	x := b.Min.X + clampIdx(int(u*float32(b.Dx())), b.Dx())
	y := b.Min.Y + clampIdx(int(v*float32(b.Dy())), b.Dy())
	off := tex.PixOffset(x, y)
	return float64(tex.Pix[off]) / 255,
		float64(tex.Pix[off+1]) / 255,
		float64(tex.Pix[off+2]) / 255
}

func clampIdx(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func lambert(pos, normal mgl32.Vec3, light *render.Light) float64 {
	if light == nil {
		return 1
	}
	toLight := light.Position.Sub(pos)
	if toLight.Len() == 0 || normal.Len() == 0 {
		return ambient
	}
	d := float64(normal.Normalize().Dot(toLight.Normalize()))
	// Surfaces facing away still receive the ambient term.
	d = math.Abs(d)
	return math.Min(1, ambient+d)
}
