// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package wgpu renders pipes on the GPU through the wgpu HAL. Pipe meshes
// are drawn instanced, one draw call per pipe kind, into an offscreen
// color target with a depth attachment, then read back for presentation.
package wgpu

import (
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"

	"github.com/gogpu/pipes"
	"github.com/gogpu/pipes/render"
	"github.com/gogpu/pipes/render/mesh"
)

// BackendName identifies this backend in the registry.
const BackendName = "wgpu"

func init() {
	render.Register(render.RegistryEntry{
		Name:     BackendName,
		Priority: 100,
		Factory: func(opts render.Options) (render.Renderer, error) {
			return newRenderer(opts)
		},
		Available: Available,
	})
}

var (
	probeOnce sync.Once
	probeOK   bool
)

// Available reports whether a usable GPU adapter exists. The probe runs
// once; a machine does not grow a GPU mid-session.
func Available() bool {
	probeOnce.Do(func() {
		adapters, err := Adapters()
		probeOK = err == nil && len(adapters) > 0
	})
	return probeOK
}

type renderer struct {
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue

	pipes *pipePipeline

	// Static de-indexed vertex buffers, one per pipe kind, plus the
	// light marker cube.
	iVerts     hal.Buffer
	iVertCount uint32
	lVerts     hal.Buffer
	lVertCount uint32
	cubeVerts  hal.Buffer
	cubeCount  uint32

	camBuf   hal.Buffer
	lightBuf hal.Buffer

	// Instance buffers grow with the world and are reallocated on overflow.
	iInst    hal.Buffer
	iInstCap int
	lInst    hal.Buffer
	lInstCap int

	width, height int
	closed        bool
}

func newRenderer(opts render.Options) (*renderer, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 800, 600
	}
	if opts.IMesh == nil || opts.LMesh == nil {
		return nil, fmt.Errorf("wgpu: both pipe meshes are required")
	}

	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("wgpu: %w: vulkan backend not registered", render.ErrNoBackend)
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create instance: %w", err)
	}

	r := &renderer{instance: instance, width: opts.Width, height: opts.Height}
	if err := r.openDevice(); err != nil {
		r.Close()
		return nil, err
	}
	r.pipes = newPipePipeline(r.device, r.queue)
	if err := r.createStaticResources(opts); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}

func (r *renderer) openDevice() error {
	adapters := r.instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		return fmt.Errorf("wgpu: no GPU adapters found")
	}
	// Integrated first: a screensaver has no business spinning up a
	// discrete GPU.
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		for i := range adapters {
			if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU {
				selected = &adapters[i]
				break
			}
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		return fmt.Errorf("wgpu: open device: %w", err)
	}
	r.device = openDev.Device
	r.queue = openDev.Queue
	pipes.Logger().Info("gpu device opened", "adapter", selected.Info.Name)
	return nil
}

func (r *renderer) createStaticResources(opts render.Options) error {
	var err error
	iData := deindex(opts.IMesh)
	if r.iVerts, err = r.createAndUpload("pipe_i_verts", iData,
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst); err != nil {
		return err
	}
	r.iVertCount = uint32(len(opts.IMesh.Indices))

	lData := deindex(opts.LMesh)
	if r.lVerts, err = r.createAndUpload("pipe_l_verts", lData,
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst); err != nil {
		return err
	}
	r.lVertCount = uint32(len(opts.LMesh.Indices))

	cube := mesh.Cube()
	if r.cubeVerts, err = r.createAndUpload("light_cube_verts", deindex(cube),
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst); err != nil {
		return err
	}
	r.cubeCount = uint32(len(cube.Indices))

	if r.camBuf, err = r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "camera_uniform", Size: cameraUniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	}); err != nil {
		return fmt.Errorf("wgpu: create camera buffer: %w", err)
	}
	if r.lightBuf, err = r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "light_uniform", Size: lightUniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	}); err != nil {
		return fmt.Errorf("wgpu: create light buffer: %w", err)
	}
	return nil
}

func (r *renderer) createAndUpload(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label, Size: uint64(len(data)), Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create %s: %w", label, err)
	}
	r.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

func (r *renderer) Name() string { return BackendName }

func (r *renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.width, r.height = width, height
}

func (r *renderer) Render(f render.Frame) (*image.RGBA, error) {
	if r.closed {
		return nil, render.ErrClosed
	}

	r.queue.WriteBuffer(r.camBuf, 0, packCamera(f.Camera))
	r.queue.WriteBuffer(r.lightBuf, 0, packLight(f.Light))

	iRaw := packInstances(f.World.IPipeInstances())
	lRaw := packInstances(f.World.LPipeInstances())
	var err error
	if r.iInst, r.iInstCap, err = r.uploadInstances("pipe_i_instances", r.iInst, r.iInstCap, iRaw); err != nil {
		return nil, err
	}
	if r.lInst, r.lInstCap, err = r.uploadInstances("pipe_l_instances", r.lInst, r.lInstCap, lRaw); err != nil {
		return nil, err
	}

	w, h := uint32(r.width), uint32(r.height)
	if err := r.pipes.ensureReady(w, h, r.camBuf, r.lightBuf); err != nil {
		return nil, err
	}

	frame := frameDraws{
		iVerts: r.iVerts, iVertCount: r.iVertCount,
		iInst: r.iInst, iCount: uint32(len(f.World.IPipeInstances())),
		lVerts: r.lVerts, lVertCount: r.lVertCount,
		lInst: r.lInst, lCount: uint32(len(f.World.LPipeInstances())),
		cubeVerts: r.cubeVerts, cubeCount: r.cubeCount,
	}
	readback, err := r.pipes.renderAndReadback(w, h, frame)
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	bgraToRGBA(readback, img.Pix)
	return img, nil
}

// uploadInstances writes raw instance data, reallocating the buffer when the
// world has grown past its capacity.
func (r *renderer) uploadInstances(label string, buf hal.Buffer, capacity int, raw []byte) (hal.Buffer, int, error) {
	if len(raw) == 0 {
		return buf, capacity, nil
	}
	if buf == nil || len(raw) > capacity {
		if buf != nil {
			r.device.DestroyBuffer(buf)
		}
		// Double up so steady pipe growth does not reallocate every frame.
		newCap := len(raw) * 2
		nb, err := r.device.CreateBuffer(&hal.BufferDescriptor{
			Label: label, Size: uint64(newCap),
			Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			return nil, 0, fmt.Errorf("wgpu: create %s: %w", label, err)
		}
		buf, capacity = nb, newCap
	}
	r.queue.WriteBuffer(buf, 0, raw)
	return buf, capacity, nil
}

func (r *renderer) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if r.pipes != nil {
		r.pipes.destroy()
	}
	if r.device != nil {
		for _, b := range []hal.Buffer{r.iVerts, r.lVerts, r.cubeVerts, r.camBuf, r.lightBuf, r.iInst, r.lInst} {
			if b != nil {
				r.device.DestroyBuffer(b)
			}
		}
		r.device.Destroy()
		r.device = nil
		r.queue = nil
	}
	if r.instance != nil {
		r.instance.Destroy()
		r.instance = nil
	}
	return nil
}

// frameDraws bundles the per-frame buffers handed to the render pass.
type frameDraws struct {
	iVerts     hal.Buffer
	iVertCount uint32
	iInst      hal.Buffer
	iCount     uint32

	lVerts     hal.Buffer
	lVertCount uint32
	lInst      hal.Buffer
	lCount     uint32

	cubeVerts hal.Buffer
	cubeCount uint32
}

// fenceTimeout bounds how long a frame may wait on the GPU.
const fenceTimeout = 5 * time.Second
