package core

import (
	"fmt"
	"math"
)

// Coord represents a cell on the board.
// X increases to the right, Y increases downward (screen coordinates).
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns a new Coord offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Manhattan returns the Manhattan distance to another coordinate.
func (c Coord) Manhattan(other Coord) int {
	return abs(c.X-other.X) + abs(c.Y-other.Y)
}

// Chebyshev returns the king-move distance to another coordinate.
func (c Coord) Chebyshev(other Coord) int {
	return max(abs(c.X-other.X), abs(c.Y-other.Y))
}

// Center returns the world position of the cell center.
func (c Coord) Center() Vec {
	return Vec{X: float64(c.X), Y: float64(c.Y)}
}

// Vec is a continuous world position. Cell (x, y) is centered at (x, y).
type Vec struct {
	X float64
	Y float64
}

// V is a convenience constructor for Vec.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Len returns the Euclidean length of v.
func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the Euclidean distance between two positions.
func (v Vec) Dist(o Vec) float64 {
	return v.Sub(o).Len()
}

// Round returns the nearest cell coordinate.
func (v Vec) Round() Coord {
	return Coord{X: int(math.Round(v.X)), Y: int(math.Round(v.Y))}
}

// MoveTowards moves v towards target by at most step and never overshoots.
func (v Vec) MoveTowards(target Vec, step float64) Vec {
	d := target.Sub(v)
	dist := d.Len()
	if dist <= step || dist == 0 {
		return target
	}
	return Vec{X: v.X + d.X/dist*step, Y: v.Y + d.Y/dist*step}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ceilScaled returns ceil(base*factor) ignoring float noise below 1e-9,
// so exact products like 20*1.05 stay at 21.
func ceilScaled(base int, factor float64) int {
	return int(math.Ceil(float64(base)*factor - 1e-9))
}
