package geom

import "math"

// Zoom limits applied to every viewport scale change.
const (
	MinScale = 0.25
	MaxScale = 6.0
)

// Viewport maps canvas space onto screen space:
//
//	screen = canvas*Scale + Offset
type Viewport struct {
	Scale  float64
	Offset Point
}

// Identity returns the viewport with scale 1 and no offset.
func Identity() Viewport { return Viewport{Scale: 1} }

// ClampScale limits s to [MinScale, MaxScale].
func ClampScale(s float64) float64 { return Clamp(s, MinScale, MaxScale) }

// WithScale returns v with its scale replaced by the clamped s.
func (v Viewport) WithScale(s float64) Viewport {
	v.Scale = ClampScale(s)
	return v
}

// WithOffset returns v translated to o.
func (v Viewport) WithOffset(o Point) Viewport {
	v.Offset = o
	return v
}

// ToScreen maps a canvas point to screen space.
func (v Viewport) ToScreen(p Point) Point {
	return Point{p.X*v.Scale + v.Offset.X, p.Y*v.Scale + v.Offset.Y}
}

// ToCanvas maps a screen point to canvas space. It is the inverse of ToScreen.
func (v Viewport) ToCanvas(p Point) Point {
	s := math.Max(0.0001, v.Scale)
	return Point{(p.X - v.Offset.X) / s, (p.Y - v.Offset.Y) / s}
}

// Affine returns the canvas-to-screen transform of v.
func (v Viewport) Affine() Affine {
	return Translate(v.Offset.X, v.Offset.Y).Mul(Scale(v.Scale, v.Scale))
}
