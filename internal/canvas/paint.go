package canvas

import (
	"image"
	"image/color"
	"math"

	"github.com/example/kidspaint/internal/geom"
	"github.com/example/kidspaint/internal/gesture"
	"github.com/example/kidspaint/internal/render"
	"github.com/example/kidspaint/internal/scene"
)

var (
	deskColor     = color.RGBA{214, 219, 226, 255}
	frameColor    = color.RGBA{0, 122, 255, 255}
	deleteColor   = color.RGBA{255, 59, 48, 255}
	rotateColor   = color.RGBA{0, 122, 255, 255}
	resizeColor   = color.RGBA{52, 199, 89, 255}
	handleInk     = color.RGBA{255, 255, 255, 255}
	outlineColor  = color.RGBA{60, 60, 67, 255}
	cursorOutline = color.RGBA{0, 0, 0, 255}
	previewColor  = color.RGBA{0, 0, 0, 255}
)

// chiselPreviewAngle is the tilt of the chisel preview outline.
const chiselPreviewAngle = 30

// Paint draws the live view into dst at the current viewport: the
// document, the stroke in progress and the selection and cursor overlays.
func (c *Controller) Paint(dst *image.RGBA) {
	s := c.Render()
	p := render.NewPainter(dst, s.Viewport.Affine())
	p.Clear(deskColor)

	lift := s.Selected
	if s.State != gesture.DraggingSticker {
		lift = nil
	}
	paintScene(p, s.Size, s.Strokes, s.Stickers, s.Background, s.BackgroundImage, lift)
	if s.InProgress != nil {
		p.Paint(render.Stroke(*s.InProgress)...)
	}

	screen := render.NewPainter(dst, geom.IdentityAffine())
	if s.Handles != nil && s.Config.Tool == gesture.ToolSticker {
		paintHandles(screen, *s.Handles, s.Config.Swatches, s.Selected.Color)
	}
	if s.Hovering {
		paintBrushPreview(screen, s)
	}
	if s.CursorActive {
		paintCursor(screen, s)
	}
}

// brushPreview returns the outline of the brush footprint under the mouse
// in screen space. Only the brush and eraser have one.
func brushPreview(s Snapshot) (render.Primitive, bool) {
	switch s.Config.Tool {
	case gesture.ToolBrush, gesture.ToolEraser:
	default:
		return nil, false
	}
	r := math.Max(4, s.Config.BrushSize/2) * s.Viewport.Scale
	var corners []geom.Point
	switch s.Config.Tip {
	case scene.TipSquare:
		corners = geom.Square(geom.Point{}, 2*r).Corners()
	case scene.TipChisel:
		box := geom.Rect{Min: geom.Pt(-r, -r/2), Max: geom.Pt(r, r/2)}
		corners = geom.Rotate(geom.Radians(chiselPreviewAngle)).ApplyAll(box.Corners())
	default:
		return render.Ring(s.Hover, r, 1, previewColor, 0.35), true
	}
	pts := geom.Translate(s.Hover.X, s.Hover.Y).ApplyAll(corners)
	return render.Polyline{
		Points:  append(pts, pts[0]),
		Width:   1,
		Color:   previewColor,
		Opacity: 0.35,
	}, true
}

func paintBrushPreview(p *render.Painter, s Snapshot) {
	if prim, ok := brushPreview(s); ok {
		p.Paint(prim)
	}
}

func paintHandles(p *render.Painter, h render.HandleSet, swatches []color.RGBA, current color.RGBA) {
	f := h.Frame
	p.Paint(render.Polyline{
		Points:  append(f.Corners(), f.Min),
		Width:   2,
		Color:   frameColor,
		Opacity: 0.8,
	})

	disc := func(r geom.Rect, col color.RGBA) {
		p.Paint(render.Dot{Center: r.Center(), Radius: r.Dx() / 2, Color: col, Opacity: 1})
	}
	disc(h.Delete, deleteColor)
	d := h.Delete.Center()
	k := h.Delete.Dx() * 0.2
	p.Paint(
		render.Polyline{Points: []geom.Point{d.Add(geom.Pt(-k, -k)), d.Add(geom.Pt(k, k))}, Width: 2, Color: handleInk, Opacity: 1},
		render.Polyline{Points: []geom.Point{d.Add(geom.Pt(-k, k)), d.Add(geom.Pt(k, -k))}, Width: 2, Color: handleInk, Opacity: 1},
	)
	disc(h.Rotate, rotateColor)
	p.Paint(render.Ring(h.Rotate.Center(), h.Rotate.Dx()*0.25, 2, handleInk, 1))
	disc(h.Resize, resizeColor)
	r := h.Resize.Center()
	k = h.Resize.Dx() * 0.22
	p.Paint(render.Polyline{Points: []geom.Point{r.Add(geom.Pt(-k, -k)), r.Add(geom.Pt(k, k))}, Width: 2, Color: handleInk, Opacity: 1})

	for i, sw := range h.Swatches {
		if i >= len(swatches) {
			break
		}
		disc(sw, swatches[i])
		width, opacity := 1.0, 0.18
		if swatches[i] == current {
			width, opacity = 2, 0.7
		}
		p.Paint(render.Ring(sw.Center(), sw.Dx()/2, width, outlineColor, opacity))
	}
}

// paintCursor marks the controller cursor with a ring the size of the
// brush, or a small crosshair ring for tools without a footprint.
func paintCursor(p *render.Painter, s Snapshot) {
	at := s.Viewport.ToScreen(s.Cursor)
	radius := 6.0
	switch s.Config.Tool {
	case gesture.ToolBrush, gesture.ToolEraser:
		radius = max(radius, s.Config.BrushSize*s.Viewport.Scale/2)
	case gesture.ToolSticker:
		radius = max(radius, s.Config.StickerSize*s.Viewport.Scale/2)
	}
	p.Paint(
		render.Ring(at, radius, 3, handleInk, 0.9),
		render.Ring(at, radius, 1.5, cursorOutline, 0.9),
	)
}
