// Package geom holds the plane types shared by the simulation and renderers.
package geom

import "gonum.org/v1/gonum/spatial/r2"

// Point is a position or direction in the logical drawing space.
type Point = r2.Vec

// Pointer is the latest pointer position in logical coordinates.
type Pointer struct {
	X float64
	Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Lerp returns the point a fraction t of the way from a to b.
func Lerp(a, b Point, t float64) Point {
	return r2.Add(a, r2.Scale(t, r2.Sub(b, a)))
}

// Dist returns the euclidean distance between a and b.
func Dist(a, b Point) float64 {
	return r2.Norm(r2.Sub(b, a))
}
