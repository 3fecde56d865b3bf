package canvas

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/kidspaint/internal/geom"
	"github.com/example/kidspaint/internal/gesture"
	"github.com/example/kidspaint/internal/render"
	"github.com/example/kidspaint/internal/scene"
)

func TestBrushPreviewFollowsTip(t *testing.T) {
	c := New(WithSize(200, 200))
	c.SetBrushSize(40)
	c.SetHover(geom.Pt(100, 100))

	prim, ok := brushPreview(c.Render())
	require.True(t, ok)
	ring, ok := prim.(render.Shape)
	require.True(t, ok, "round tips preview as a ring, got %T", prim)
	b := ring.Bounds()
	assert.InDelta(t, 79.5, b.Min.X, 1e-9)
	assert.InDelta(t, 120.5, b.Max.X, 1e-9)

	c.SetBrushTip(scene.TipSquare)
	prim, _ = brushPreview(c.Render())
	line, ok := prim.(render.Polyline)
	require.True(t, ok)
	require.Len(t, line.Points, 5)
	assert.True(t, line.Points[0].Near(geom.Pt(80, 80), 1e-9), "got %v", line.Points[0])
	assert.True(t, line.Points[2].Near(geom.Pt(120, 120), 1e-9), "got %v", line.Points[2])
	assert.Equal(t, line.Points[0], line.Points[4], "outline is closed")

	c.SetBrushTip(scene.TipChisel)
	prim, _ = brushPreview(c.Render())
	line = prim.(render.Polyline)
	assert.True(t, line.Points[2].Near(geom.Pt(112.3205, 118.6603), 1e-3), "tilted corner %v", line.Points[2])
}

func TestBrushPreviewScalesWithZoomAndFloor(t *testing.T) {
	c := New()
	c.SetBrushSize(MinBrushSize)
	c.Zoom(1)
	c.SetHover(geom.Pt(50, 50))
	prim, ok := brushPreview(c.Render())
	require.True(t, ok)
	b := prim.Bounds()
	assert.InDelta(t, 17, b.Dx(), 1e-9, "radius floors at 4 and doubles with zoom")
}

func TestBrushPreviewOnlyForBrushAndEraser(t *testing.T) {
	c := New()
	c.SetHover(geom.Pt(50, 50))
	c.SetTool(gesture.ToolEraser)
	_, ok := brushPreview(c.Render())
	assert.True(t, ok)
	c.SetTool(gesture.ToolSticker)
	_, ok = brushPreview(c.Render())
	assert.False(t, ok)
}

func TestPaintDrawsHoverPreview(t *testing.T) {
	calls := 0
	c := New(WithSize(100, 100), WithOnChange(func() { calls++ }))
	c.SetBrushSize(30)

	plain := image.NewRGBA(image.Rect(0, 0, 100, 100))
	c.Paint(plain)

	calls = 0
	c.SetHover(geom.Pt(50, 50))
	c.SetHover(geom.Pt(50, 50))
	assert.Equal(t, 1, calls, "same hover point is not a change")
	hovered := image.NewRGBA(plain.Rect)
	c.Paint(hovered)
	assert.NotEqual(t, plain.Pix, hovered.Pix)

	c.ClearHover()
	c.ClearHover()
	assert.Equal(t, 2, calls)
	assert.False(t, c.Render().Hovering)
	cleared := image.NewRGBA(plain.Rect)
	c.Paint(cleared)
	assert.Equal(t, plain.Pix, cleared.Pix)
}
