package canvas

import (
	"image"
	"image/color"

	"github.com/example/kidspaint/internal/geom"
	"github.com/example/kidspaint/internal/render"
	"github.com/example/kidspaint/internal/scene"
)

// ExportRaster renders the committed scene at viewport identity, scaled to
// fit a w x h image and centred. The bars left by a differing aspect ratio
// take the background colour. Non-positive sizes yield an empty image.
func (c *Controller) ExportRaster(w, h int) *image.RGBA {
	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rectangle{})
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	fit := render.FitRect(c.size.X, c.size.Y, geom.Rect{Max: geom.Pt(float64(w), float64(h))})
	s := fit.Dx() / c.size.X
	p := render.NewPainter(dst, geom.Translate(fit.Min.X, fit.Min.Y).Mul(geom.Scale(s, s)))
	p.Clear(c.scene.Background())
	paintScene(p, c.size, c.scene.Strokes(), c.scene.Stickers(), c.scene.Background(), c.scene.BackgroundImage(), nil)
	return dst
}

// paintScene draws the document in canvas space. lift, when set, gets a
// drop shadow painted beneath it.
func paintScene(p *render.Painter, size geom.Point, strokes []scene.Stroke, stickers []scene.Sticker,
	bg color.RGBA, bgImage *scene.BackgroundImage, lift *scene.Sticker) {
	area := geom.Rect{Max: size}
	p.FillRect(area, bg)
	if bgImage.Usable() {
		p.DrawImage(bgImage.Image, render.FitRect(float64(bgImage.Width), float64(bgImage.Height), area))
	}
	for _, st := range strokes {
		p.Paint(render.Stroke(st)...)
	}
	for _, st := range stickers {
		shape := render.Sticker(st)
		if lift != nil && lift.ID == st.ID {
			p.PaintShadow(render.DefaultShadowOptions(), shape)
		}
		p.Paint(shape)
	}
}
