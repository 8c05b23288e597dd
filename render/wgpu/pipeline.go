// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/pipes/render"
	"github.com/gogpu/pipes/render/mesh"
	"github.com/gogpu/pipes/world"
)

//go:embed shaders/shader.wgsl
var pipeShaderSource string

//go:embed shaders/light.wgsl
var lightShaderSource string

// pipePipeline owns the GPU objects shared across frames: both render
// pipelines, the offscreen color and depth targets, and the bind groups
// over the camera and light uniforms.
type pipePipeline struct {
	device hal.Device
	queue  hal.Queue

	pipeShader  hal.ShaderModule
	lightShader hal.ShaderModule

	camLayout   hal.BindGroupLayout
	lightLayout hal.BindGroupLayout
	pipeLayout  hal.PipelineLayout

	pipePL  hal.RenderPipeline
	lightPL hal.RenderPipeline

	camBind   hal.BindGroup
	lightBind hal.BindGroup

	colorTex  hal.Texture
	colorView hal.TextureView
	depthTex  hal.Texture
	depthView hal.TextureView

	width, height uint32
}

func newPipePipeline(device hal.Device, queue hal.Queue) *pipePipeline {
	return &pipePipeline{device: device, queue: queue}
}

func (p *pipePipeline) ensureReady(w, h uint32, camBuf, lightBuf hal.Buffer) error {
	if p.pipePL == nil {
		if err := p.createPipelines(); err != nil {
			return err
		}
	}
	if p.camBind == nil {
		if err := p.createBindGroups(camBuf, lightBuf); err != nil {
			return err
		}
	}
	return p.ensureTargets(w, h)
}

func (p *pipePipeline) createPipelines() error {
	// Validate WGSL up front so a shader typo surfaces as a compile
	// diagnostic rather than a driver error.
	if _, err := naga.Compile(pipeShaderSource); err != nil {
		return fmt.Errorf("wgpu: pipe shader: %w", err)
	}
	if _, err := naga.Compile(lightShaderSource); err != nil {
		return fmt.Errorf("wgpu: light shader: %w", err)
	}

	var err error
	if p.pipeShader, err = p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "pipe_shader",
		Source: hal.ShaderSource{WGSL: pipeShaderSource},
	}); err != nil {
		return fmt.Errorf("wgpu: compile pipe shader: %w", err)
	}
	if p.lightShader, err = p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "light_shader",
		Source: hal.ShaderSource{WGSL: lightShaderSource},
	}); err != nil {
		return fmt.Errorf("wgpu: compile light shader: %w", err)
	}

	uniformEntry := func(binding uint32) gputypes.BindGroupLayoutEntry {
		return gputypes.BindGroupLayoutEntry{
			Binding:    binding,
			Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
		}
	}
	if p.camLayout, err = p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   "camera_layout",
		Entries: []gputypes.BindGroupLayoutEntry{uniformEntry(0)},
	}); err != nil {
		return fmt.Errorf("wgpu: create camera layout: %w", err)
	}
	if p.lightLayout, err = p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   "light_layout",
		Entries: []gputypes.BindGroupLayoutEntry{uniformEntry(0)},
	}); err != nil {
		return fmt.Errorf("wgpu: create light layout: %w", err)
	}
	if p.pipeLayout, err = p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "pipe_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.camLayout, p.lightLayout},
	}); err != nil {
		return fmt.Errorf("wgpu: create pipeline layout: %w", err)
	}

	if p.pipePL, err = p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "pipe_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.pipeShader,
			EntryPoint: "vs_main",
			Buffers:    pipeVertexLayouts(),
		},
		Fragment: &hal.FragmentState{
			Module:     p.pipeShader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{{
				Format:    gputypes.TextureFormatBGRA8Unorm,
				WriteMask: gputypes.ColorWriteMaskAll,
			}},
		},
		DepthStencil: depthState(),
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{Count: 1, Mask: 0xFFFFFFFF},
	}); err != nil {
		return fmt.Errorf("wgpu: create pipe pipeline: %w", err)
	}

	if p.lightPL, err = p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "light_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.lightShader,
			EntryPoint: "vs_main",
			Buffers:    pipeVertexLayouts()[:1],
		},
		Fragment: &hal.FragmentState{
			Module:     p.lightShader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{{
				Format:    gputypes.TextureFormatBGRA8Unorm,
				WriteMask: gputypes.ColorWriteMaskAll,
			}},
		},
		DepthStencil: depthState(),
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{Count: 1, Mask: 0xFFFFFFFF},
	}); err != nil {
		return fmt.Errorf("wgpu: create light pipeline: %w", err)
	}
	return nil
}

func depthState() *hal.DepthStencilState {
	keep := hal.StencilFaceState{
		Compare:     gputypes.CompareFunctionAlways,
		FailOp:      hal.StencilOperationKeep,
		DepthFailOp: hal.StencilOperationKeep,
		PassOp:      hal.StencilOperationKeep,
	}
	return &hal.DepthStencilState{
		Format:            gputypes.TextureFormatDepth24PlusStencil8,
		DepthWriteEnabled: true,
		DepthCompare:      gputypes.CompareFunctionLess,
		StencilFront:      keep,
		StencilBack:       keep,
		StencilReadMask:   0x00,
		StencilWriteMask:  0x00,
	}
}

func (p *pipePipeline) createBindGroups(camBuf, lightBuf hal.Buffer) error {
	var err error
	if p.camBind, err = p.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "camera_bind",
		Layout: p.camLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: camBuf.NativeHandle(), Offset: 0, Size: cameraUniformSize,
			}},
		},
	}); err != nil {
		return fmt.Errorf("wgpu: create camera bind group: %w", err)
	}
	if p.lightBind, err = p.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "light_bind",
		Layout: p.lightLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: lightBuf.NativeHandle(), Offset: 0, Size: lightUniformSize,
			}},
		},
	}); err != nil {
		return fmt.Errorf("wgpu: create light bind group: %w", err)
	}
	return nil
}

func (p *pipePipeline) ensureTargets(w, h uint32) error {
	if p.width == w && p.height == h && p.colorTex != nil {
		return nil
	}
	p.destroyTargets()

	size := hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1}
	var err error
	if p.colorTex, err = p.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "pipe_color",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	}); err != nil {
		return fmt.Errorf("wgpu: create color target: %w", err)
	}
	if p.colorView, err = p.device.CreateTextureView(p.colorTex, &hal.TextureViewDescriptor{
		Label:         "pipe_color_view",
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	}); err != nil {
		p.destroyTargets()
		return fmt.Errorf("wgpu: create color view: %w", err)
	}
	if p.depthTex, err = p.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "pipe_depth",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatDepth24PlusStencil8,
		Usage:         gputypes.TextureUsageRenderAttachment,
	}); err != nil {
		p.destroyTargets()
		return fmt.Errorf("wgpu: create depth target: %w", err)
	}
	if p.depthView, err = p.device.CreateTextureView(p.depthTex, &hal.TextureViewDescriptor{
		Label:         "pipe_depth_view",
		Format:        gputypes.TextureFormatDepth24PlusStencil8,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	}); err != nil {
		p.destroyTargets()
		return fmt.Errorf("wgpu: create depth view: %w", err)
	}
	p.width, p.height = w, h
	return nil
}

// renderAndReadback encodes one frame: clear, draw both pipe kinds
// instanced, draw the light marker, copy the color target out and wait.
func (p *pipePipeline) renderAndReadback(w, h uint32, f frameDraws) ([]byte, error) {
	encoder, err := p.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "pipe_encoder"})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("pipe_frame"); err != nil {
		return nil, fmt.Errorf("wgpu: begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "pipe_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:    p.colorView,
			LoadOp:  gputypes.LoadOpClear,
			StoreOp: gputypes.StoreOpStore,
			ClearValue: gputypes.Color{
				R: render.ClearR, G: render.ClearG, B: render.ClearB, A: render.ClearA,
			},
		}},
		DepthStencilAttachment: &hal.RenderPassDepthStencilAttachment{
			View:              p.depthView,
			DepthLoadOp:       gputypes.LoadOpClear,
			DepthStoreOp:      gputypes.StoreOpDiscard,
			DepthClearValue:   render.ClearDepth,
			StencilLoadOp:     gputypes.LoadOpClear,
			StencilStoreOp:    gputypes.StoreOpDiscard,
			StencilClearValue: 0,
		},
	})
	rp.SetPipeline(p.pipePL)
	rp.SetBindGroup(0, p.camBind, nil)
	rp.SetBindGroup(1, p.lightBind, nil)
	if f.iCount > 0 {
		rp.SetVertexBuffer(0, f.iVerts, 0)
		rp.SetVertexBuffer(1, f.iInst, 0)
		rp.Draw(f.iVertCount, f.iCount, 0, 0)
	}
	if f.lCount > 0 {
		rp.SetVertexBuffer(0, f.lVerts, 0)
		rp.SetVertexBuffer(1, f.lInst, 0)
		rp.Draw(f.lVertCount, f.lCount, 0, 0)
	}
	rp.SetPipeline(p.lightPL)
	rp.SetVertexBuffer(0, f.cubeVerts, 0)
	rp.Draw(f.cubeCount, 1, 0, 0)
	rp.End()

	// Transition for the copy; no-op outside Vulkan.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: p.colorTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})

	pixelBufSize := uint64(w) * uint64(h) * 4
	stagingBuf, err := p.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "pipe_staging",
		Size:  pixelBufSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		encoder.DiscardEncoding()
		return nil, fmt.Errorf("wgpu: create staging buffer: %w", err)
	}
	defer p.device.DestroyBuffer(stagingBuf)

	encoder.CopyTextureToBuffer(p.colorTex, stagingBuf, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: w * 4, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: p.colorTex, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("wgpu: end encoding: %w", err)
	}
	defer p.device.FreeCommandBuffer(cmdBuf)

	fence, err := p.device.CreateFence()
	if err != nil {
		return nil, fmt.Errorf("wgpu: create fence: %w", err)
	}
	defer p.device.DestroyFence(fence)
	if err := p.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return nil, fmt.Errorf("wgpu: submit: %w", err)
	}
	fenceOK, err := p.device.Wait(fence, 1, fenceTimeout)
	if err != nil || !fenceOK {
		return nil, fmt.Errorf("wgpu: wait for GPU: ok=%v err=%w", fenceOK, err)
	}

	readback := make([]byte, pixelBufSize)
	if err := p.queue.ReadBuffer(stagingBuf, 0, readback); err != nil {
		return nil, fmt.Errorf("wgpu: readback: %w", err)
	}
	return readback, nil
}

func (p *pipePipeline) destroyTargets() {
	if p.depthView != nil {
		p.device.DestroyTextureView(p.depthView)
		p.depthView = nil
	}
	if p.depthTex != nil {
		p.device.DestroyTexture(p.depthTex)
		p.depthTex = nil
	}
	if p.colorView != nil {
		p.device.DestroyTextureView(p.colorView)
		p.colorView = nil
	}
	if p.colorTex != nil {
		p.device.DestroyTexture(p.colorTex)
		p.colorTex = nil
	}
	p.width, p.height = 0, 0
}

func (p *pipePipeline) destroy() {
	if p.device == nil {
		return
	}
	p.destroyTargets()
	if p.camBind != nil {
		p.device.DestroyBindGroup(p.camBind)
		p.camBind = nil
	}
	if p.lightBind != nil {
		p.device.DestroyBindGroup(p.lightBind)
		p.lightBind = nil
	}
	if p.lightPL != nil {
		p.device.DestroyRenderPipeline(p.lightPL)
		p.lightPL = nil
	}
	if p.pipePL != nil {
		p.device.DestroyRenderPipeline(p.pipePL)
		p.pipePL = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.lightLayout != nil {
		p.device.DestroyBindGroupLayout(p.lightLayout)
		p.lightLayout = nil
	}
	if p.camLayout != nil {
		p.device.DestroyBindGroupLayout(p.camLayout)
		p.camLayout = nil
	}
	if p.lightShader != nil {
		p.device.DestroyShaderModule(p.lightShader)
		p.lightShader = nil
	}
	if p.pipeShader != nil {
		p.device.DestroyShaderModule(p.pipeShader)
		p.pipeShader = nil
	}
}

// pipeVertexLayouts returns the two vertex buffer layouts for pipe draws:
// slot 0 steps per vertex, slot 1 carries the per-instance model matrix
// as four vec4 columns.
func pipeVertexLayouts() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: mesh.VertexSize,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},  // position
				{Format: gputypes.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1}, // normal
				{Format: gputypes.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 2}, // uv
			},
		},
		{
			ArrayStride: world.RawInstanceSize,
			StepMode:    gputypes.VertexStepModeInstance,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 5},
				{Format: gputypes.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 6},
				{Format: gputypes.VertexFormatFloat32x4, Offset: 32, ShaderLocation: 7},
				{Format: gputypes.VertexFormatFloat32x4, Offset: 48, ShaderLocation: 8},
			},
		},
	}
}
