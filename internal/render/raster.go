package render

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/example/kidspaint/internal/geom"
)

// Painter rasterizes primitives into an RGBA image. xf maps canvas space to
// destination pixels.
type Painter struct {
	dst *image.RGBA
	xf  geom.Affine
}

// NewPainter returns a painter drawing into dst through xf.
func NewPainter(dst *image.RGBA, xf geom.Affine) *Painter {
	return &Painter{dst: dst, xf: xf}
}

// Paint draws prims in order.
func (p *Painter) Paint(prims ...Primitive) {
	for _, pr := range prims {
		switch v := pr.(type) {
		case Polyline:
			p.fill(p.polylineContours(v), nil, v.Color, v.Opacity)
		case Dot:
			p.fill([][]geom.Point{p.circle(v.Center, v.Radius)}, nil, v.Color, v.Opacity)
		case Stamp:
			p.fill([][]geom.Point{v.Corners()}, nil, v.Color, v.Opacity)
		case Shape:
			p.fill(v.Solids, v.Holes, v.Color, v.Opacity)
		}
	}
}

// Clear fills the whole destination with c.
func (p *Painter) Clear(c color.RGBA) {
	draw.Draw(p.dst, p.dst.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// FillRect fills the canvas-space rectangle r with c.
func (p *Painter) FillRect(r geom.Rect, c color.RGBA) {
	p.fill([][]geom.Point{r.Corners()}, nil, c, 1)
}

// DrawImage scales img into the canvas-space rectangle r.
func (p *Painter) DrawImage(img image.Image, r geom.Rect) {
	sb := img.Bounds()
	if sb.Empty() || r.Empty() {
		return
	}
	xf := p.xf.
		Mul(geom.Translate(r.Min.X, r.Min.Y)).
		Mul(geom.Scale(r.Dx()/float64(sb.Dx()), r.Dy()/float64(sb.Dy()))).
		Mul(geom.Translate(-float64(sb.Min.X), -float64(sb.Min.Y)))
	draw.CatmullRom.Transform(p.dst, xf.Aff3(), img, sb, draw.Over, nil)
}

// FitRect returns the largest rectangle of aspect w:h centred in bounds.
func FitRect(w, h float64, bounds geom.Rect) geom.Rect {
	if w <= 0 || h <= 0 || bounds.Empty() {
		return geom.Rect{}
	}
	s := math.Min(bounds.Dx()/w, bounds.Dy()/h)
	c := bounds.Center()
	return geom.Rect{
		Min: geom.Pt(c.X-w*s/2, c.Y-h*s/2),
		Max: geom.Pt(c.X+w*s/2, c.Y+h*s/2),
	}
}

func (p *Painter) segments(r float64) int {
	n := int(math.Ceil(2 * math.Pi * r * p.xf.ScaleFactor() / 3))
	return min(96, max(8, n))
}

func (p *Painter) circle(c geom.Point, r float64) []geom.Point {
	return ellipse(c, r, r, p.segments(r))
}

// polylineContours outlines a stroked path as one quad per segment plus a
// disc at every joint. Square caps extend the end segments instead of
// rounding them.
func (p *Painter) polylineContours(pl Polyline) [][]geom.Point {
	pts := pl.Points
	hw := pl.Width / 2
	if len(pts) == 0 || hw <= 0 {
		return nil
	}
	var out [][]geom.Point
	last := len(pts) - 1
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		d := geom.Distance(a, b)
		if d == 0 {
			continue
		}
		u := b.Sub(a).Mul(1 / d)
		if pl.Cap == CapSquare {
			if i == 1 {
				a = a.Sub(u.Mul(hw))
			}
			if i == last {
				b = b.Add(u.Mul(hw))
			}
		}
		n := geom.Pt(-u.Y*hw, u.X*hw)
		out = append(out, []geom.Point{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)})
	}
	for i, pt := range pts {
		if pl.Cap == CapSquare && (i == 0 || i == last) {
			continue
		}
		out = append(out, p.circle(pt, hw))
	}
	if len(out) == 0 {
		out = append(out, geom.Square(pts[0], pl.Width).Corners())
	}
	return out
}

func paintColor(c color.RGBA, opacity float64) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(math.Round(float64(n.A) * geom.Clamp(opacity, 0, 1)))
	return n
}

func signedArea(pts []geom.Point) float64 {
	var a float64
	for i := range pts {
		j := (i + 1) % len(pts)
		a += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return a / 2
}

// fill rasterizes solids and holes in one pass. The rasterizer clamps the
// magnitude of accumulated coverage, so solids are all wound one way and
// holes the other.
func (p *Painter) fill(solids, holes [][]geom.Point, c color.RGBA, opacity float64) {
	src := paintColor(c, opacity)
	if src.A == 0 || len(solids) == 0 {
		return
	}
	ts := make([][]geom.Point, len(solids))
	var all []geom.Point
	for i, s := range solids {
		ts[i] = p.xf.ApplyAll(s)
		all = append(all, ts[i]...)
	}
	bb := geom.Bounds(all)
	b := image.Rect(
		int(math.Floor(bb.Min.X)), int(math.Floor(bb.Min.Y)),
		int(math.Ceil(bb.Max.X))+1, int(math.Ceil(bb.Max.Y))+1,
	).Intersect(p.dst.Bounds())
	if b.Empty() {
		return
	}
	r := vector.NewRasterizer(b.Dx(), b.Dy())
	r.DrawOp = draw.Over
	for _, s := range ts {
		addContour(r, s, b.Min, 1)
	}
	for _, h := range holes {
		addContour(r, p.xf.ApplyAll(h), b.Min, -1)
	}
	r.Draw(p.dst, b, image.NewUniform(src), image.Point{})
}

func addContour(r *vector.Rasterizer, pts []geom.Point, origin image.Point, sign float64) {
	if len(pts) < 3 {
		return
	}
	area := signedArea(pts)
	if area == 0 {
		return
	}
	ox, oy := float64(origin.X), float64(origin.Y)
	at := func(i int) (float32, float32) {
		return float32(pts[i].X - ox), float32(pts[i].Y - oy)
	}
	if area*sign > 0 {
		r.MoveTo(at(0))
		for i := 1; i < len(pts); i++ {
			r.LineTo(at(i))
		}
	} else {
		r.MoveTo(at(len(pts) - 1))
		for i := len(pts) - 2; i >= 0; i-- {
			r.LineTo(at(i))
		}
	}
	r.ClosePath()
}
