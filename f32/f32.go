// SPDX-License-Identifier: Unlicense OR MIT

/*
Package f32 holds the float32 geometry used by window events.

Coordinates are in logical window units with the origin in the top
left corner of the client area and the axes extending right and down.
Window origins reported by system.MoveEvent are in the coordinates of
the parent: the desktop for top-level windows, the parent surface for
embedded ones.
*/
package f32

import (
	"math"
	"strconv"
)

// A Point is a two dimensional point.
type Point struct {
	X, Y float32
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// Round returns p rounded to the nearest integer coordinates, as used
// by native window systems.
func (p Point) Round() (x, y int32) {
	return int32(math.Round(float64(p.X))), int32(math.Round(float64(p.Y)))
}

func (p Point) String() string {
	return "(" + strconv.FormatFloat(float64(p.X), 'f', -1, 32) +
		"," + strconv.FormatFloat(float64(p.Y), 'f', -1, 32) + ")"
}
