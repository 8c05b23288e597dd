// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/pipes/camera"
	"github.com/gogpu/pipes/render"
	"github.com/gogpu/pipes/render/mesh"
	"github.com/gogpu/pipes/world"
)

// cameraUniformSize is the byte size of the camera uniform buffer:
// one column-major mat4x4<f32>.
const cameraUniformSize = camera.UniformSize

// lightUniformSize is the byte size of the light uniform buffer:
// vec3 position + pad + vec3 color + pad.
const lightUniformSize = render.LightUniformSize

func putF32(buf []byte, off int, v float32) {
	binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(v))
}

// packCamera serializes the view-projection matrix. mgl32 matrices are
// stored column-major, the layout WGSL expects for mat4x4.
func packCamera(c *camera.Camera) []byte {
	buf := make([]byte, cameraUniformSize)
	vp := c.ViewProjection()
	for i := 0; i < 16; i++ {
		putF32(buf, i*4, vp[i])
	}
	return buf
}

func packLight(l *render.Light) []byte {
	buf := make([]byte, lightUniformSize)
	u := l.Uniform()
	putF32(buf, 0, u.Position[0])
	putF32(buf, 4, u.Position[1])
	putF32(buf, 8, u.Position[2])
	putF32(buf, 16, u.Color[0])
	putF32(buf, 20, u.Color[1])
	putF32(buf, 24, u.Color[2])
	// Pad words at 12 and 28 stay zero.
	return buf
}

// packInstances serializes per-instance model matrices, one 64-byte
// column-major mat4 per pipe segment.
func packInstances(instances []world.Instance) []byte {
	buf := make([]byte, len(instances)*world.RawInstanceSize)
	for i := range instances {
		raw := instances[i].Raw()
		base := i * world.RawInstanceSize
		for j, v := range raw {
			putF32(buf, base+j*4, v)
		}
	}
	return buf
}

// deindex expands an indexed mesh into a flat vertex stream so draws need
// no index buffer. Pipe meshes are small enough that the duplication is
// cheaper than carrying index state through the pass.
func deindex(m *mesh.Mesh) []byte {
	buf := make([]byte, len(m.Indices)*mesh.VertexSize)
	off := 0
	for _, idx := range m.Indices {
		v := m.Vertices[idx]
		putF32(buf, off+0, v.Position[0])
		putF32(buf, off+4, v.Position[1])
		putF32(buf, off+8, v.Position[2])
		putF32(buf, off+12, v.Normal[0])
		putF32(buf, off+16, v.Normal[1])
		putF32(buf, off+20, v.Normal[2])
		putF32(buf, off+24, v.UV[0])
		putF32(buf, off+28, v.UV[1])
		off += mesh.VertexSize
	}
	return buf
}

// bgraToRGBA swizzles readback pixels into image.RGBA layout and forces
// full alpha; the offscreen target carries no meaningful alpha.
func bgraToRGBA(src, dst []byte) {
	n := len(dst) / 4
	for i := 0; i < n; i++ {
		o := i * 4
		dst[o+0] = src[o+2]
		dst[o+1] = src[o+1]
		dst[o+2] = src[o+0]
		dst[o+3] = 0xFF
	}
}
