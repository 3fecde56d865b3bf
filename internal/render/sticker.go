package render

import (
	"github.com/example/kidspaint/internal/geom"
	"github.com/example/kidspaint/internal/scene"
)

// BaseStickerSize is the side, in canvas units, of a sticker at scale 1.
const BaseStickerSize = 90

// StickerTransform maps unit glyph space into canvas space:
// translate to the position, rotate, then scale to the sticker's size.
func StickerTransform(st scene.Sticker) geom.Affine {
	side := BaseStickerSize * st.Scale
	return geom.Translate(st.Position.X, st.Position.Y).
		Mul(geom.Rotate(geom.Radians(st.Rotation))).
		Mul(geom.Scale(side, side))
}

// Sticker returns the filled outline of st in canvas space.
func Sticker(st scene.Sticker) Shape {
	g, ok := glyphs[st.Type]
	if !ok {
		g = glyphs[scene.StickerStar]
	}
	return Shape{Solids: g.solids, Holes: g.holes, Color: st.Color, Opacity: 1}.
		Transform(StickerTransform(st))
}

// StickerBounds is the axis-aligned square used for hit-testing. Rotation
// is ignored.
func StickerBounds(st scene.Sticker) geom.Rect {
	return geom.Square(st.Position, BaseStickerSize*st.Scale)
}

// HitTest returns the topmost sticker whose bounds contain p.
func HitTest(stickers []scene.Sticker, p geom.Point) (scene.Sticker, bool) {
	for i := len(stickers) - 1; i >= 0; i-- {
		if StickerBounds(stickers[i]).Contains(p) {
			return stickers[i], true
		}
	}
	return scene.Sticker{}, false
}
