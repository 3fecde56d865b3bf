package render

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"github.com/example/kidspaint/internal/geom"
)

// ShadowOptions configures the soft shadow painted under a lifted sticker.
// Radius and Offset are in destination pixels.
type ShadowOptions struct {
	Radius  int
	Offset  image.Point
	Opacity float64
}

// DefaultShadowOptions returns the shadow used while a sticker is dragged.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{
		Radius:  6,
		Offset:  image.Pt(4, 6),
		Opacity: 0.35,
	}
}

// PaintShadow draws a blurred silhouette of prims, shifted by opts.Offset.
// Call it before painting the primitives themselves.
func (p *Painter) PaintShadow(opts ShadowOptions, prims ...Primitive) {
	if len(prims) == 0 || opts.Opacity <= 0 {
		return
	}
	radius := max(0, opts.Radius)
	var corners []geom.Point
	for _, pr := range prims {
		corners = append(corners, p.xf.ApplyAll(pr.Bounds().Corners())...)
	}
	bb := geom.Bounds(corners)
	area := image.Rect(
		int(math.Floor(bb.Min.X)), int(math.Floor(bb.Min.Y)),
		int(math.Ceil(bb.Max.X))+1, int(math.Ceil(bb.Max.Y))+1,
	).Inset(-radius).Add(opts.Offset)
	area = area.Intersect(p.dst.Bounds())
	if area.Empty() {
		return
	}

	scratch := image.NewRGBA(image.Rect(0, 0, area.Dx(), area.Dy()))
	shift := geom.Translate(float64(opts.Offset.X-area.Min.X), float64(opts.Offset.Y-area.Min.Y))
	sp := NewPainter(scratch, shift.Mul(p.xf))
	for _, pr := range prims {
		sp.Paint(silhouette(pr))
	}

	mask := image.NewGray(scratch.Bounds())
	for i := 0; i < len(mask.Pix); i++ {
		mask.Pix[i] = scratch.Pix[i*4+3]
	}
	blurred := boxBlur(mask, radius)

	alpha := uint8(geom.Clamp(opts.Opacity, 0, 1)*255 + 0.5)
	draw.DrawMask(p.dst, area, image.NewUniform(color.RGBA{A: alpha}), image.Point{}, blurred, image.Point{}, draw.Over)
}

// silhouette returns pr drawn fully opaque.
func silhouette(pr Primitive) Primitive {
	black := color.RGBA{A: 255}
	switch v := pr.(type) {
	case Polyline:
		v.Color, v.Opacity = black, 1
		return v
	case Dot:
		v.Color, v.Opacity = black, 1
		return v
	case Stamp:
		v.Color, v.Opacity = black, 1
		return v
	case Shape:
		v.Color, v.Opacity = black, 1
		return v
	}
	return pr
}

// boxBlur runs a horizontal then a vertical box filter of the given radius.
func boxBlur(src *image.Gray, radius int) *image.Gray {
	out := image.NewGray(src.Bounds())
	copy(out.Pix, src.Pix)
	if radius <= 0 {
		return out
	}
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	line := make([]uint8, max(w, h))
	for y := 0; y < h; y++ {
		row := out.Pix[y*out.Stride : y*out.Stride+w]
		boxPass(row, line[:w], radius)
	}
	col := make([]uint8, h)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			col[y] = out.Pix[y*out.Stride+x]
		}
		boxPass(col, line[:h], radius)
		for y := 0; y < h; y++ {
			out.Pix[y*out.Stride+x] = col[y]
		}
	}
	return out
}

// boxPass blurs v in place using tmp as scratch. Windows are truncated at
// the edges.
func boxPass(v, tmp []uint8, radius int) {
	n := len(v)
	prefix := make([]int, n+1)
	for i, c := range v {
		prefix[i+1] = prefix[i] + int(c)
	}
	for i := range v {
		lo := max(0, i-radius)
		hi := min(n-1, i+radius)
		tmp[i] = uint8((prefix[hi+1] - prefix[lo]) / (hi - lo + 1))
	}
	copy(v, tmp)
}
