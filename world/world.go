// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package world simulates the growth of pipe chains through a bounded
// 3D grid.
//
// The grid is a block lattice. Every pipe segment occupies exactly one
// block and is either straight (I) or an elbow (L). A chain grows from
// its last block one step at a time in its current direction; with a
// configurable probability it turns through an elbow onto a perpendicular
// direction, and with another probability it stops so a new chain starts
// at a random free block. Blocks are never reused.
//
// World coordinate system:
//
//	X: to the right
//	Y: to the top
//	Z: out of the screen
//
// The straight mesh follows Y at rest; the elbow joins a +Y entry to a
// +X exit. Instance rotations reorient them per block.
package world

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/pipes"
)

// World errors.
var (
	// ErrWorldFull is returned by AddPipe when no free block remains.
	ErrWorldFull = errors.New("world: grid is full")

	// ErrNoChain is returned when an elbow is requested with no chain
	// to join onto.
	ErrNoChain = errors.New("world: no previous segment for elbow")

	// ErrOccupied is returned when a debug segment targets a used block.
	ErrOccupied = errors.New("world: block already occupied")
)

// PipeKind distinguishes the two segment shapes.
type PipeKind int

const (
	// PipeI is a straight segment.
	PipeI PipeKind = iota
	// PipeL is an elbow segment.
	PipeL
)

// String returns "I" or "L".
func (k PipeKind) String() string {
	if k == PipeL {
		return "L"
	}
	return "I"
}

// Position is a block position in grid coordinates. Signed so stepping
// off the low edge is representable and rejected by bounds checks rather
// than wrapping around.
type Position struct {
	X, Y, Z int
}

// Vec3 returns the position as world-space coordinates.
func (p Position) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{float32(p.X), float32(p.Y), float32(p.Z)}
}

// Bounds is the grid extent. Valid block coordinates are [0, X) x [0, Y)
// x [0, Z).
type Bounds struct {
	X, Y, Z int
}

// Volume returns the total number of blocks.
func (b Bounds) Volume() int { return b.X * b.Y * b.Z }

// Contains reports whether p lies inside the grid.
func (b Bounds) Contains(p Position) bool {
	return p.X >= 0 && p.X < b.X &&
		p.Y >= 0 && p.Y < b.Y &&
		p.Z >= 0 && p.Z < b.Z
}

// block is one placed segment.
type block struct {
	kind PipeKind
	dir  Direction // direction of the outgoing pipe opening
	pos  Position
}

// Default grid parameters, matching the classic screensaver feel.
const (
	DefaultBoundsX = 10
	DefaultBoundsY = 8
	DefaultBoundsZ = 8

	DefaultTurnProbability = 0.1
	DefaultStopProbability = 0.1
)

// World holds the growth state: placed instances per segment kind, the
// occupied-block set and the head of the current chain.
//
// World is not safe for concurrent use; callers own synchronization.
type World struct {
	bounds   Bounds
	turnProb float32
	stopProb float32
	rng      *rand.Rand

	iInstances []Instance
	lInstances []Instance

	occupied map[Position]struct{}
	last     *block
}

// Option configures a World during creation.
type Option func(*World)

// WithBounds sets the grid extent. Non-positive axes keep their defaults.
func WithBounds(x, y, z int) Option {
	return func(w *World) {
		if x > 0 {
			w.bounds.X = x
		}
		if y > 0 {
			w.bounds.Y = y
		}
		if z > 0 {
			w.bounds.Z = z
		}
	}
}

// WithTurnProbability sets the chance a growing chain turns through an
// elbow at each step. Values are clamped to [0, 1].
func WithTurnProbability(p float32) Option {
	return func(w *World) { w.turnProb = clamp01(p) }
}

// WithStopProbability sets the chance a chain stops and a fresh one
// starts at each step. Values are clamped to [0, 1].
func WithStopProbability(p float32) Option {
	return func(w *World) { w.stopProb = clamp01(p) }
}

// WithRand sets the random source. Use a seeded source for reproducible
// growth (snapshot captures, tests).
func WithRand(rng *rand.Rand) Option {
	return func(w *World) {
		if rng != nil {
			w.rng = rng
		}
	}
}

// WithSeed is shorthand for WithRand over a deterministic PCG source.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed)))
}

func clamp01(p float32) float32 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// New creates an empty world with default bounds and probabilities.
func New(opts ...Option) *World {
	w := &World{
		bounds:   Bounds{X: DefaultBoundsX, Y: DefaultBoundsY, Z: DefaultBoundsZ},
		turnProb: DefaultTurnProbability,
		stopProb: DefaultStopProbability,
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		occupied: make(map[Position]struct{}, 128),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Bounds returns the grid extent.
func (w *World) Bounds() Bounds { return w.bounds }

// IPipeInstances returns the placed straight segments. The slice is owned
// by the world; callers must not modify it.
func (w *World) IPipeInstances() []Instance { return w.iInstances }

// LPipeInstances returns the placed elbow segments. The slice is owned
// by the world; callers must not modify it.
func (w *World) LPipeInstances() []Instance { return w.lInstances }

// Len returns the number of placed segments.
func (w *World) Len() int { return len(w.iInstances) + len(w.lInstances) }

// Free returns the number of unoccupied blocks.
func (w *World) Free() int { return w.bounds.Volume() - len(w.occupied) }

// Full reports whether no free block remains.
func (w *World) Full() bool { return w.Free() <= 0 }

// Occupied reports whether the block at p holds a segment.
func (w *World) Occupied(p Position) bool {
	_, ok := w.occupied[p]
	return ok
}

// Reset clears all segments so growth starts over.
func (w *World) Reset() {
	w.iInstances = w.iInstances[:0]
	w.lInstances = w.lInstances[:0]
	clear(w.occupied)
	w.last = nil
	pipes.Logger().Info("world reset", "bounds", w.bounds)
}

// AddPipe grows the world by one segment.
//
// With the stop probability (or when no chain exists yet) a fresh chain
// starts at a random free block as a straight segment with a random
// direction. Otherwise the current chain advances one block; if that
// block is occupied or out of bounds the chain restarts elsewhere. An
// advancing chain turns through an elbow with the turn probability.
//
// Returns ErrWorldFull once every block is occupied.
func (w *World) AddPipe() error {
	if w.Full() {
		return ErrWorldFull
	}

	var b block
	if w.last == nil || w.rng.Float32() < w.stopProb {
		b = w.randomBlock()
	} else {
		b = w.nextBlock()
	}

	w.place(b)
	return nil
}

// AddDebugPipe places a specific segment, bypassing the random walk.
// Used by tests and the snapshot tool to build exact scenes.
func (w *World) AddDebugPipe(kind PipeKind, pos Position, dir Direction) error {
	if !dir.Valid() {
		return fmt.Errorf("world: invalid direction %d", int(dir))
	}
	if !w.bounds.Contains(pos) {
		return fmt.Errorf("world: position %+v outside bounds %+v", pos, w.bounds)
	}
	if w.Occupied(pos) {
		return fmt.Errorf("%w: %+v", ErrOccupied, pos)
	}
	if kind == PipeL {
		if w.last == nil {
			return ErrNoChain
		}
		if _, ok := lRotation(dir, w.last.dir); !ok {
			return fmt.Errorf("world: elbow cannot join %v to %v", w.last.dir, dir)
		}
	}

	w.place(block{kind: kind, dir: dir, pos: pos})
	return nil
}

// place appends the instance for b and records its block as occupied.
func (w *World) place(b block) {
	switch b.kind {
	case PipeL:
		rot, ok := lRotation(b.dir, w.last.dir)
		if !ok {
			// nextBlock only emits elbows joining perpendicular
			// directions, so this cannot happen on the random walk.
			rot = mgl32.QuatIdent()
		}
		w.lInstances = append(w.lInstances, Instance{Position: b.pos.Vec3(), Rotation: rot})
	default:
		w.iInstances = append(w.iInstances, Instance{Position: b.pos.Vec3(), Rotation: iRotation(b.dir)})
	}

	w.occupied[b.pos] = struct{}{}
	last := b
	w.last = &last

	pipes.Logger().Debug("pipe placed",
		"kind", b.kind.String(), "dir", b.dir.String(),
		"x", b.pos.X, "y", b.pos.Y, "z", b.pos.Z)
}

// randomBlock picks a free block uniformly and starts a chain there.
// A fresh chain always begins with a straight segment.
func (w *World) randomBlock() block {
	// Rejection sampling is cheap while the grid is mostly empty; past
	// that, scan for the n-th free block instead.
	attempts := 4 * w.bounds.Volume()
	for i := 0; i < attempts; i++ {
		p := Position{
			X: w.rng.IntN(w.bounds.X),
			Y: w.rng.IntN(w.bounds.Y),
			Z: w.rng.IntN(w.bounds.Z),
		}
		if !w.Occupied(p) {
			return block{kind: PipeI, dir: RandomDirection(w.rng), pos: p}
		}
	}
	return block{kind: PipeI, dir: RandomDirection(w.rng), pos: w.nthFree(w.rng.IntN(w.Free()))}
}

// nthFree returns the n-th unoccupied block in scan order.
// Callers guarantee the grid is not full.
func (w *World) nthFree(n int) Position {
	for x := 0; x < w.bounds.X; x++ {
		for y := 0; y < w.bounds.Y; y++ {
			for z := 0; z < w.bounds.Z; z++ {
				p := Position{X: x, Y: y, Z: z}
				if w.Occupied(p) {
					continue
				}
				if n == 0 {
					return p
				}
				n--
			}
		}
	}
	return Position{}
}

// nextBlock advances the current chain one block, restarting it when the
// step leaves the grid or hits an occupied block.
func (w *World) nextBlock() block {
	last := w.last
	pos := last.dir.Step(last.pos)

	if !w.bounds.Contains(pos) || w.Occupied(pos) {
		return w.randomBlock()
	}

	if w.rng.Float32() < w.turnProb {
		return block{
			kind: PipeL,
			dir:  last.dir.RandomPerpendicular(w.rng),
			pos:  pos,
		}
	}
	return block{kind: PipeI, dir: last.dir, pos: pos}
}
