// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package world

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Instance places one pipe segment mesh in world space.
type Instance struct {
	// Position is the block position in world coordinates.
	Position mgl32.Vec3

	// Rotation orients the segment mesh so its openings line up with
	// the chain it belongs to.
	Rotation mgl32.Quat
}

// Model returns the model matrix (translation * rotation) for the instance.
func (in Instance) Model() mgl32.Mat4 {
	t := mgl32.Translate3D(in.Position.X(), in.Position.Y(), in.Position.Z())
	return t.Mul4(in.Rotation.Mat4())
}

// RawInstanceSize is the byte size of one RawInstance on the GPU.
const RawInstanceSize = 64

// RawInstance is the GPU-side instance layout: a column-major 4x4 model
// matrix occupying four vec4 vertex attributes.
type RawInstance [16]float32

// Raw converts the instance to its GPU layout.
func (in Instance) Raw() RawInstance {
	return RawInstance(in.Model())
}

// deg converts degrees to radians for the rotation tables below.
func deg(d float32) float32 { return mgl32.DegToRad(d) }

// iRotation orients the straight pipe mesh (which follows +Y) along the
// given direction. Sign does not matter for a straight segment.
func iRotation(dir Direction) mgl32.Quat {
	switch dir.Axis() {
	case DirX:
		return mgl32.QuatRotate(deg(-90), mgl32.Vec3{0, 0, 1})
	case DirZ:
		return mgl32.QuatRotate(deg(90), mgl32.Vec3{1, 0, 0})
	default: // Y axis, mesh rest orientation
		return mgl32.QuatIdent()
	}
}

// lTurnAngles maps, per outgoing axis, the incoming direction to the spin
// (in degrees) around the outgoing axis that lines the elbow mouth up with
// the previous segment. The elbow mesh at rest joins +Y entry to +X exit.
var lTurnAngles = map[Direction]map[Direction]float32{
	DirX: {DirNegY: 0, DirNegZ: 90, DirY: 180, DirZ: -90},
	DirY: {DirNegX: 0, DirNegZ: -90, DirX: 180, DirZ: 90},
	DirZ: {DirNegX: 0, DirNegY: 90, DirX: 180, DirY: -90},
}

// lRotation orients the elbow mesh so it receives the chain arriving from
// direction prev and sends it out along dir. The bool result is false when
// prev is not perpendicular to dir, in which case no elbow fits.
func lRotation(dir, prev Direction) (mgl32.Quat, bool) {
	angles := lTurnAngles[dir.Axis()]
	a, ok := angles[prev]
	if !ok {
		return mgl32.QuatIdent(), false
	}

	switch dir {
	case DirX:
		return mgl32.QuatRotate(deg(a), mgl32.Vec3{1, 0, 0}), true
	case DirNegX:
		return mgl32.QuatRotate(deg(90), mgl32.Vec3{0, 0, 1}).
			Mul(mgl32.QuatRotate(deg(a), mgl32.Vec3{1, 0, 0})), true
	case DirY:
		return mgl32.QuatRotate(deg(a), mgl32.Vec3{0, 1, 0}), true
	case DirNegY:
		return mgl32.QuatRotate(deg(180), mgl32.Vec3{1, 0, 0}).
			Mul(mgl32.QuatRotate(deg(a), mgl32.Vec3{0, 1, 0})), true
	case DirZ:
		return mgl32.QuatRotate(deg(90), mgl32.Vec3{1, 0, 0}).
			Mul(mgl32.QuatRotate(deg(a), mgl32.Vec3{0, 0, 1})), true
	case DirNegZ:
		return mgl32.QuatRotate(deg(-90), mgl32.Vec3{1, 0, 0}).
			Mul(mgl32.QuatRotate(deg(a), mgl32.Vec3{0, 0, 1})), true
	default:
		return mgl32.QuatIdent(), false
	}
}
