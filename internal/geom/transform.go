// Package geom maps simulation coordinates onto the square canvas.
//
// Simulation space is centred on the origin; canvas space has its origin at
// the top-left corner. A single scale factor (canvas length over configured
// grid width) covers both axes because the canvas is always square.
package geom

import "math"

type Transform struct {
	Canvas      int
	Scale       float64
	ScaleRadius bool
}

// Point is a pixel position before flooring.
type Point struct {
	X, Y float64
}

func NewTransform(canvas, gridWidth int, scaleRadius bool) Transform {
	return Transform{
		Canvas:      canvas,
		Scale:       float64(canvas) / float64(gridWidth),
		ScaleRadius: scaleRadius,
	}
}

func (t Transform) half() float64 {
	return float64(t.Canvas) / 2
}

// Apply returns sim*scale + canvas/2 without flooring.
func (t Transform) Apply(v float64) float64 {
	return v*t.Scale + t.half()
}

// ToPixel maps one simulation coordinate to its pixel index.
func (t Transform) ToPixel(v float64) int {
	return int(math.Floor(t.Apply(v)))
}

// ToSim inverts Apply.
func (t Transform) ToSim(p float64) float64 {
	return (p - t.half()) / t.Scale
}

func (t Transform) Project(x, y float64) Point {
	return Point{X: t.Apply(x), Y: t.Apply(y)}
}

// Radius converts a simulation radius to a pixel radius.
func (t Transform) Radius(r float64) int {
	return int(math.Floor(t.RadiusF(r)))
}

// RadiusF is Radius before flooring.
func (t Transform) RadiusF(r float64) float64 {
	if t.ScaleRadius {
		r *= t.Scale
	}
	return r
}

// Limit is the largest pixel magnitude the rasterizer accepts. Anything
// further out, or not finite, cannot be converted to an int safely.
const Limit = 1 << 30

// Drawable reports whether a projected point and pixel radius are finite
// and within Limit.
func Drawable(p Point, r float64) bool {
	return fits(p.X) && fits(p.Y) && fits(r)
}

func fits(v float64) bool {
	return !math.IsNaN(v) && math.Abs(v) <= Limit
}

// InBounds uses the closed range [0, canvas] on the unfloored position.
func (t Transform) InBounds(p Point) bool {
	c := float64(t.Canvas)
	return p.X >= 0 && p.X <= c && p.Y >= 0 && p.Y <= c
}

// Pixel floors a projected point.
func (p Point) Pixel() (int, int) {
	return int(math.Floor(p.X)), int(math.Floor(p.Y))
}
