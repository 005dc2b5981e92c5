package geom

import (
	"math"

	"github.com/gogpu/gg"
)

// Point is a position in the unit square (or near it).
type Point = gg.Point

// Pt is shorthand for constructing a Point.
func Pt(x, y float64) Point { return gg.Pt(x, y) }

// Polygon returns the vertices of a regular n-gon inscribed in the unit square.
// For n <= 0 it returns nil.
func Polygon(n int) []Point {
	if n <= 0 {
		return nil
	}
	offset := -math.Pi / 2
	if n == 4 {
		offset -= math.Pi / 4
	}
	pts := make([]Point, n)
	for i := range pts {
		a := offset + 2*math.Pi*float64(i)/float64(n)
		pts[i] = Pt(0.5+0.5*math.Cos(a), 0.5+0.5*math.Sin(a))
	}
	return pts
}

// Linear returns the 2×2 map scale(s)·rotate(r), composed in that order.
func Linear(scale, rotation float64) gg.Matrix {
	return gg.Scale(scale, scale).Multiply(gg.Rotate(rotation))
}

// Toward moves current toward target through the linear map m and returns
// the new point: m·(target - current) + current.
func Toward(current, target Point, m gg.Matrix) Point {
	return m.TransformVector(target.Sub(current)).Add(current)
}

// Clamp01 restricts v to [0, 1].
func Clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
