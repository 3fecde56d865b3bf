package render

import (
	"math"

	"github.com/example/kidspaint/internal/geom"
	"github.com/example/kidspaint/internal/scene"
)

const (
	sprayOpacity  = 0.28
	crayonOpacity = 0.85
	grainOpacity  = 0.25
	grainRadius   = 1.2
	neonGlow      = 0.35
	chiselTilt    = math.Pi / 6
)

// Stroke expands s into primitives according to its tip. The output depends
// only on the stroke's data and ID. Strokes with fewer than two points
// produce nothing.
func Stroke(s scene.Stroke) []Primitive {
	if len(s.Points) < 2 {
		return nil
	}
	w := s.Width
	switch s.Tip {
	case scene.TipSquare:
		return []Primitive{polyline(s, w, CapSquare, 1)}
	case scene.TipSpray:
		return spray(s)
	case scene.TipChisel:
		return chisel(s)
	case scene.TipCrayon:
		return append([]Primitive{polyline(s, w, CapRound, crayonOpacity)}, grain(s)...)
	case scene.TipNeon:
		return []Primitive{
			polyline(s, w*2.2, CapRound, neonGlow),
			polyline(s, w, CapRound, 1),
		}
	default:
		return []Primitive{polyline(s, w, CapRound, 1)}
	}
}

func polyline(s scene.Stroke, w float64, c Cap, opacity float64) Polyline {
	return Polyline{
		Points:  append([]geom.Point(nil), s.Points...),
		Width:   w,
		Cap:     c,
		Color:   s.Color,
		Opacity: opacity,
	}
}

func spray(s scene.Stroke) []Primitive {
	w := s.Width
	n := max(6, int(w*0.35))
	spread := math.Max(2, w*0.55)
	base := math.Max(1, w*0.12)
	out := make([]Primitive, 0, n*len(s.Points))
	for i, p := range s.Points {
		g := NewLCG(Seed(s.ID, i))
		for k := 0; k < n; k++ {
			a := g.Unit() * 2 * math.Pi
			r := math.Sqrt(g.Unit()) * spread
			size := base * (0.7 + 0.6*g.Unit())
			out = append(out, Dot{
				Center:  p.Add(geom.Pt(math.Cos(a)*r, math.Sin(a)*r)),
				Radius:  size,
				Color:   s.Color,
				Opacity: sprayOpacity,
			})
		}
	}
	return out
}

func chisel(s scene.Stroke) []Primitive {
	w := s.Width
	out := make([]Primitive, 0, len(s.Points)-1)
	for i := 1; i < len(s.Points); i++ {
		p0, p1 := s.Points[i-1], s.Points[i]
		out = append(out, Stamp{
			Center:    p1,
			Length:    w * 1.6,
			Thickness: w,
			Angle:     geom.Angle(p0, p1) + chiselTilt,
			Color:     s.Color,
			Opacity:   1,
		})
	}
	return out
}

func grain(s scene.Stroke) []Primitive {
	w := s.Width
	n := max(8, int(w*0.6))
	out := make([]Primitive, 0, n*len(s.Points))
	for i, p := range s.Points {
		g := NewLCG(Seed(s.ID, i))
		for k := 0; k < n; k++ {
			a := g.Unit() * 2 * math.Pi
			r := g.Unit() * w * 0.45
			out = append(out, Dot{
				Center:  p.Add(geom.Pt(math.Cos(a)*r, math.Sin(a)*r)),
				Radius:  grainRadius,
				Color:   s.Color,
				Opacity: grainOpacity,
			})
		}
	}
	return out
}
