// Package render turns scene data into drawing primitives and paints them.
// Building primitives is pure; only Painter touches pixels.
package render

import (
	"image/color"
	"math"

	"github.com/example/kidspaint/internal/geom"
)

// Cap is the end style of a polyline.
type Cap int

const (
	CapRound Cap = iota
	CapSquare
)

// Primitive is one fill operation in canvas space.
type Primitive interface {
	Bounds() geom.Rect
}

// Polyline is a stroked path with round joins.
type Polyline struct {
	Points  []geom.Point
	Width   float64
	Cap     Cap
	Color   color.RGBA
	Opacity float64
}

func (p Polyline) Bounds() geom.Rect { return geom.Bounds(p.Points).Inset(-p.Width) }

// Dot is a filled circle.
type Dot struct {
	Center  geom.Point
	Radius  float64
	Color   color.RGBA
	Opacity float64
}

func (d Dot) Bounds() geom.Rect { return geom.Square(d.Center, d.Radius*2) }

// Stamp is a filled rectangle rotated by Angle radians about its center.
// Length runs along the angle and Thickness across it.
type Stamp struct {
	Center    geom.Point
	Length    float64
	Thickness float64
	Angle     float64
	Color     color.RGBA
	Opacity   float64
}

func (s Stamp) Bounds() geom.Rect { return geom.Bounds(s.Corners()) }

// Corners returns the four corners in drawing order.
func (s Stamp) Corners() []geom.Point {
	xf := geom.Translate(s.Center.X, s.Center.Y).Mul(geom.Rotate(s.Angle))
	hl, ht := s.Length/2, s.Thickness/2
	return xf.ApplyAll([]geom.Point{{X: -hl, Y: -ht}, {X: hl, Y: -ht}, {X: hl, Y: ht}, {X: -hl, Y: ht}})
}

// Shape is a filled outline made of solid contours, unioned, minus holes.
// Each hole must lie inside a single solid.
type Shape struct {
	Solids  [][]geom.Point
	Holes   [][]geom.Point
	Color   color.RGBA
	Opacity float64
}

func (s Shape) Bounds() geom.Rect {
	var all []geom.Point
	for _, c := range s.Solids {
		all = append(all, c...)
	}
	return geom.Bounds(all)
}

// Transform returns s with every contour mapped through xf.
func (s Shape) Transform(xf geom.Affine) Shape {
	out := Shape{Color: s.Color, Opacity: s.Opacity}
	for _, c := range s.Solids {
		out.Solids = append(out.Solids, xf.ApplyAll(c))
	}
	for _, c := range s.Holes {
		out.Holes = append(out.Holes, xf.ApplyAll(c))
	}
	return out
}

// Ring returns a circular outline of the given stroke width.
func Ring(center geom.Point, radius, width float64, c color.RGBA, opacity float64) Shape {
	outer := radius + width/2
	inner := math.Max(0, radius-width/2)
	s := Shape{Solids: [][]geom.Point{ellipse(center, outer, outer, 48)}, Color: c, Opacity: opacity}
	if inner > 0 {
		s.Holes = [][]geom.Point{ellipse(center, inner, inner, 48)}
	}
	return s
}
