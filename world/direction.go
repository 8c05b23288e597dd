// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package world

import (
	"fmt"
	"math/rand/v2"
)

// Direction is an axis-aligned heading through the grid.
// Pipes only ever travel parallel to one of the three world axes.
type Direction int

// The six axis-aligned directions.
const (
	DirX Direction = iota // +X, to the right
	DirY                  // +Y, up
	DirZ                  // +Z, out of the screen
	DirNegX
	DirNegY
	DirNegZ
)

// String returns the direction as an axis label ("+X", "-Z", ...).
func (d Direction) String() string {
	switch d {
	case DirX:
		return "+X"
	case DirY:
		return "+Y"
	case DirZ:
		return "+Z"
	case DirNegX:
		return "-X"
	case DirNegY:
		return "-Y"
	case DirNegZ:
		return "-Z"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Valid reports whether d is one of the six defined directions.
func (d Direction) Valid() bool {
	return d >= DirX && d <= DirNegZ
}

// Axis returns the positive-axis direction for d, collapsing sign.
func (d Direction) Axis() Direction {
	switch d {
	case DirNegX:
		return DirX
	case DirNegY:
		return DirY
	case DirNegZ:
		return DirZ
	default:
		return d
	}
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	switch d {
	case DirX:
		return DirNegX
	case DirY:
		return DirNegY
	case DirZ:
		return DirNegZ
	case DirNegX:
		return DirX
	case DirNegY:
		return DirY
	default:
		return DirZ
	}
}

// Step returns p advanced one block in direction d.
func (d Direction) Step(p Position) Position {
	switch d {
	case DirX:
		p.X++
	case DirY:
		p.Y++
	case DirZ:
		p.Z++
	case DirNegX:
		p.X--
	case DirNegY:
		p.Y--
	case DirNegZ:
		p.Z--
	}
	return p
}

// Perpendicular reports whether d and o lie on different axes.
func (d Direction) Perpendicular(o Direction) bool {
	return d.Axis() != o.Axis()
}

// RandomDirection draws one of the six directions uniformly.
func RandomDirection(rng *rand.Rand) Direction {
	return Direction(rng.IntN(6))
}

// perpendicularOptions lists the four directions orthogonal to each axis,
// in the order the selection probabilities walk them.
var perpendicularOptions = map[Direction][4]Direction{
	DirX: {DirY, DirNegY, DirZ, DirNegZ},
	DirY: {DirX, DirNegX, DirZ, DirNegZ},
	DirZ: {DirY, DirNegY, DirX, DirNegX},
}

// RandomPerpendicular draws one of the four directions orthogonal to d
// uniformly. Elbow segments turn the chain onto such a direction.
func (d Direction) RandomPerpendicular(rng *rand.Rand) Direction {
	options := perpendicularOptions[d.Axis()]
	return options[rng.IntN(4)]
}
