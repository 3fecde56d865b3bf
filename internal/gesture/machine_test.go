package gesture

import (
	"image/color"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/kidspaint/internal/geom"
	"github.com/example/kidspaint/internal/render"
	"github.com/example/kidspaint/internal/scene"
)

// fakeCanvas keeps stickers in a plain scene and counts history entries.
type fakeCanvas struct {
	vp         geom.Viewport
	sc         *scene.Scene
	strokes    []scene.Stroke
	placed     int
	transforms [][2]scene.Sticker
	deleted    []uuid.UUID
}

func newFake() *fakeCanvas {
	return &fakeCanvas{vp: geom.Identity(), sc: scene.New()}
}

func (f *fakeCanvas) Viewport() geom.Viewport        { return f.vp }
func (f *fakeCanvas) SetViewport(v geom.Viewport)    { f.vp = v }
func (f *fakeCanvas) Stickers() []scene.Sticker      { return f.sc.Stickers() }
func (f *fakeCanvas) BackgroundColor() color.RGBA    { return f.sc.Background() }
func (f *fakeCanvas) CommitStroke(s scene.Stroke)    { f.strokes = append(f.strokes, s) }
func (f *fakeCanvas) UpdateSticker(st scene.Sticker) { f.sc.ReplaceSticker(st.ID, st) }
func (f *fakeCanvas) Sticker(id uuid.UUID) (scene.Sticker, bool) {
	return f.sc.Sticker(id)
}

func (f *fakeCanvas) PlaceSticker(st scene.Sticker) {
	f.sc.AddSticker(st)
	f.placed++
}

func (f *fakeCanvas) CommitStickerTransform(before, after scene.Sticker) {
	f.sc.ReplaceSticker(after.ID, after)
	f.transforms = append(f.transforms, [2]scene.Sticker{before, after})
}

func (f *fakeCanvas) DeleteSticker(id uuid.UUID) {
	f.sc.RemoveSticker(id)
	f.deleted = append(f.deleted, id)
}

var red = color.RGBA{R: 255, A: 255}

func cfg(tool Tool) Config {
	return Config{
		Tool:        tool,
		Color:       red,
		BrushSize:   10,
		Tip:         scene.TipRound,
		StickerType: scene.StickerStar,
		StickerSize: 90,
		Swatches:    []color.RGBA{{A: 255}, red},
	}
}

func drag(m *Machine, c Canvas, conf Config, pts ...geom.Point) {
	m.Pointer(PointerEvent{Phase: Down, Pos: pts[0]}, conf, c)
	for _, p := range pts[1 : len(pts)-1] {
		m.Pointer(PointerEvent{Phase: Move, Pos: p}, conf, c)
	}
	m.Pointer(PointerEvent{Phase: Up, Pos: pts[len(pts)-1]}, conf, c)
}

func addSticker(f *fakeCanvas, pos geom.Point, scale float64) scene.Sticker {
	st := scene.Sticker{ID: uuid.New(), Type: scene.StickerStar, Position: pos, Scale: scale, Color: red}
	f.sc.AddSticker(st)
	return st
}

func TestBrushCommitsPointsInOrder(t *testing.T) {
	f := newFake()
	m := New()
	drag(m, f, cfg(ToolBrush), geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(10, 10))
	require.Len(t, f.strokes, 1)
	s := f.strokes[0]
	assert.Equal(t, []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}, s.Points)
	assert.Equal(t, red, s.Color)
	assert.Equal(t, 10.0, s.Width)
	assert.Equal(t, Idle, m.State())
}

func TestTapWithPointerIsDiscarded(t *testing.T) {
	f := newFake()
	m := New()
	drag(m, f, cfg(ToolBrush), geom.Pt(5, 5), geom.Pt(5, 5))
	assert.Empty(t, f.strokes)
}

func TestEraserUsesBackground(t *testing.T) {
	f := newFake()
	bg := color.RGBA{10, 20, 30, 255}
	f.sc.SetBackgroundColor(bg)
	m := New()
	drag(m, f, cfg(ToolEraser), geom.Pt(0, 0), geom.Pt(3, 4))
	require.Len(t, f.strokes, 1)
	assert.Equal(t, bg, f.strokes[0].Color)
}

func TestStrokePointsAreCanvasSpace(t *testing.T) {
	f := newFake()
	f.vp = geom.Viewport{Scale: 2, Offset: geom.Pt(100, 50)}
	m := New()
	drag(m, f, cfg(ToolBrush), geom.Pt(100, 50), geom.Pt(120, 70))
	require.Len(t, f.strokes, 1)
	assert.Equal(t, []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 10}}, f.strokes[0].Points)
}

func TestUpWithoutDownIsIgnored(t *testing.T) {
	f := newFake()
	m := New()
	m.Pointer(PointerEvent{Phase: Up, Pos: geom.Pt(1, 1)}, cfg(ToolBrush), f)
	m.Pointer(PointerEvent{Phase: Move, Pos: geom.Pt(2, 2)}, cfg(ToolSticker), f)
	assert.Empty(t, f.strokes)
	assert.Zero(t, f.placed)
}

func TestPlaceStickerOnEmptyTap(t *testing.T) {
	f := newFake()
	m := New()
	drag(m, f, cfg(ToolSticker), geom.Pt(100, 100), geom.Pt(100, 100))
	stickers := f.Stickers()
	require.Len(t, stickers, 1)
	assert.Equal(t, geom.Pt(100, 100), stickers[0].Position)
	assert.Equal(t, 1.0, stickers[0].Scale)
	assert.Equal(t, scene.StickerStar, stickers[0].Type)
	id, ok := m.Selected()
	assert.True(t, ok)
	assert.Equal(t, stickers[0].ID, id)
}

func TestNoPlacementWhenReleasedOverSticker(t *testing.T) {
	f := newFake()
	addSticker(f, geom.Pt(300, 300), 1)
	m := New()
	drag(m, f, cfg(ToolSticker), geom.Pt(100, 100), geom.Pt(300, 300))
	assert.Zero(t, f.placed)
}

func TestDragRecordsOneTransform(t *testing.T) {
	f := newFake()
	st := addSticker(f, geom.Pt(100, 100), 1)
	m := New()
	drag(m, f, cfg(ToolSticker), geom.Pt(100, 100), geom.Pt(110, 100), geom.Pt(120, 105), geom.Pt(130, 110))
	require.Len(t, f.transforms, 1)
	assert.Equal(t, st, f.transforms[0][0])
	assert.Equal(t, geom.Pt(130, 110), f.transforms[0][1].Position)
}

func TestDragBackToStartRecordsNothing(t *testing.T) {
	f := newFake()
	addSticker(f, geom.Pt(100, 100), 1)
	m := New()
	drag(m, f, cfg(ToolSticker), geom.Pt(100, 100), geom.Pt(140, 100), geom.Pt(100, 100))
	assert.Empty(t, f.transforms)
}

func resizePoint(st scene.Sticker, vp geom.Viewport) geom.Point {
	return render.Handles(st, vp, 2).Resize.Center()
}

func TestResizeScalesByDistanceRatio(t *testing.T) {
	f := newFake()
	st := addSticker(f, geom.Pt(200, 200), 1)
	m := New()
	m.Select(st.ID)
	start := resizePoint(st, f.vp)
	d := geom.Distance(st.Position, start)
	far := st.Position.Add(start.Sub(st.Position).Mul(2))
	drag(m, f, cfg(ToolSticker), start, far)
	require.Len(t, f.transforms, 1)
	assert.InDelta(t, 2.0, f.transforms[0][1].Scale, 1e-9, "start distance %v", d)
}

func TestResizeClamps(t *testing.T) {
	f := newFake()
	st := addSticker(f, geom.Pt(200, 200), 1)
	m := New()
	m.Select(st.ID)
	start := resizePoint(st, f.vp)
	drag(m, f, cfg(ToolSticker), start, st.Position.Add(start.Sub(st.Position).Mul(20)))
	got, _ := f.Sticker(st.ID)
	assert.Equal(t, MaxStickerScale, got.Scale)

	start = resizePoint(got, f.vp)
	drag(m, f, cfg(ToolSticker), start, got.Position)
	got, _ = f.Sticker(st.ID)
	assert.Equal(t, MinStickerScale, got.Scale)
}

func TestRotateSnaps(t *testing.T) {
	f := newFake()
	st := addSticker(f, geom.Pt(200, 200), 1)
	m := New()
	m.Select(st.ID)
	h := render.Handles(st, f.vp, 0)
	start := h.Rotate.Center()
	r := geom.Distance(st.Position, start)
	// Start is straight up; move to 50 degrees clockwise of that.
	a := geom.Radians(-90 + 50)
	end := st.Position.Add(geom.Pt(r*math.Cos(a), r*math.Sin(a)))

	m.Pointer(PointerEvent{Phase: Down, Pos: start}, cfg(ToolSticker), f)
	require.Equal(t, RotatingSticker, m.State())
	m.Pointer(PointerEvent{Phase: Move, Pos: end}, cfg(ToolSticker), f)
	live, _ := f.Sticker(st.ID)
	assert.InDelta(t, 50, live.Rotation, 1e-6)
	m.Pointer(PointerEvent{Phase: Up, Pos: end, Snap: true}, cfg(ToolSticker), f)
	got, _ := f.Sticker(st.ID)
	assert.Equal(t, 45.0, got.Rotation)
	assert.Len(t, f.transforms, 1)
}

func TestDeleteHandleRemovesSelection(t *testing.T) {
	f := newFake()
	st := addSticker(f, geom.Pt(200, 200), 1)
	m := New()
	m.Select(st.ID)
	p := render.Handles(st, f.vp, 0).Delete.Center()
	drag(m, f, cfg(ToolSticker), p, p)
	assert.Equal(t, []uuid.UUID{st.ID}, f.deleted)
	_, ok := m.Selected()
	assert.False(t, ok)
	assert.Zero(t, f.placed, "delete tap must not place a sticker")
}

func TestSwatchRecolors(t *testing.T) {
	f := newFake()
	st := addSticker(f, geom.Pt(200, 200), 1)
	m := New()
	m.Select(st.ID)
	conf := cfg(ToolSticker)
	p := render.Handles(st, f.vp, len(conf.Swatches)).Swatches[0].Center()
	drag(m, f, conf, p, p)
	require.Len(t, f.transforms, 1)
	assert.Equal(t, conf.Swatches[0], f.transforms[0][1].Color)
}

func TestToolSwitchAwayFromStickerIsIdempotent(t *testing.T) {
	f := newFake()
	st := addSticker(f, geom.Pt(100, 100), 1)
	m := New()
	m.Select(st.ID)
	before := f.Stickers()

	m.ToolChanged(ToolSticker, ToolBrush, f)
	_, ok := m.Selected()
	assert.False(t, ok)
	m.ToolChanged(ToolBrush, ToolSticker, f)
	_, ok = m.Selected()
	assert.False(t, ok)
	assert.Equal(t, before, f.Stickers())
}

func TestToolSwitchAbortsDrag(t *testing.T) {
	f := newFake()
	st := addSticker(f, geom.Pt(100, 100), 1)
	m := New()
	m.Pointer(PointerEvent{Phase: Down, Pos: geom.Pt(100, 100)}, cfg(ToolSticker), f)
	m.Pointer(PointerEvent{Phase: Move, Pos: geom.Pt(150, 150)}, cfg(ToolSticker), f)
	m.ToolChanged(ToolSticker, ToolPan, f)
	m.Pointer(PointerEvent{Phase: Up, Pos: geom.Pt(150, 150)}, cfg(ToolPan), f)
	got, _ := f.Sticker(st.ID)
	assert.Equal(t, st, got)
	assert.Empty(t, f.transforms)
	assert.Equal(t, Idle, m.State())
}

func TestPanMovesOffset(t *testing.T) {
	f := newFake()
	f.vp = geom.Viewport{Scale: 2, Offset: geom.Pt(5, 5)}
	m := New()
	drag(m, f, cfg(ToolPan), geom.Pt(10, 10), geom.Pt(40, 30), geom.Pt(50, 60))
	assert.Equal(t, geom.Pt(45, 55), f.vp.Offset)
	assert.Equal(t, 2.0, f.vp.Scale)
}

func TestPinchClamps(t *testing.T) {
	f := newFake()
	m := New()
	m.Pinch(PinchEvent{Phase: PinchBegin}, f)
	assert.Equal(t, Pinching, m.State())
	m.Pinch(PinchEvent{Phase: PinchChange, Magnification: 100}, f)
	assert.Equal(t, geom.MaxScale, f.vp.Scale)
	m.Pinch(PinchEvent{Phase: PinchChange, Magnification: 0.001}, f)
	assert.Equal(t, geom.MinScale, f.vp.Scale)
	m.Pinch(PinchEvent{Phase: PinchChange, Magnification: 2}, f)
	assert.Equal(t, 2.0, f.vp.Scale)
	m.Pinch(PinchEvent{Phase: PinchEnd}, f)
	assert.Equal(t, Idle, m.State())

	// A change without a begin starts from the current scale.
	m.Pinch(PinchEvent{Phase: PinchChange, Magnification: 1.5}, f)
	assert.Equal(t, 3.0, f.vp.Scale)
}

func TestControllerTapLeavesDot(t *testing.T) {
	f := newFake()
	m := New()
	m.ControllerPress(geom.Pt(40, 40), cfg(ToolBrush), f)
	m.ControllerRelease(f)
	require.Len(t, f.strokes, 1)
	assert.Equal(t, []geom.Point{{X: 40, Y: 40}, {X: 40.5, Y: 40}}, f.strokes[0].Points)
}

func TestControllerStrokeIgnoresPointer(t *testing.T) {
	f := newFake()
	m := New()
	m.ControllerPress(geom.Pt(0, 0), cfg(ToolBrush), f)
	m.Pointer(PointerEvent{Phase: Move, Pos: geom.Pt(99, 99)}, cfg(ToolBrush), f)
	m.ControllerMove(geom.Pt(5, 0))
	m.ControllerMove(geom.Pt(5, 0))
	m.ControllerRelease(f)
	require.Len(t, f.strokes, 1)
	assert.Equal(t, []geom.Point{{X: 0, Y: 0}, {X: 5, Y: 0}}, f.strokes[0].Points)
}

func TestControllerPlace(t *testing.T) {
	f := newFake()
	ids := []uuid.UUID{uuid.MustParse("11111111-1111-4111-8111-111111111111")}
	m := New(WithIDGenerator(func() uuid.UUID { return ids[0] }))
	m.ControllerPlace(geom.Pt(10, 20), cfg(ToolSticker), f)
	st, ok := f.Sticker(ids[0])
	require.True(t, ok)
	assert.Equal(t, geom.Pt(10, 20), st.Position)

	m.ControllerPlace(geom.Pt(10, 20), cfg(ToolSticker), f)
	assert.Equal(t, 1, f.placed)
	assert.Len(t, f.Stickers(), 1)
}

func TestValidateDropsMissingSelection(t *testing.T) {
	f := newFake()
	st := addSticker(f, geom.Pt(0, 0), 1)
	m := New()
	m.Select(st.ID)
	f.sc.RemoveSticker(st.ID)
	m.Validate(f)
	_, ok := m.Selected()
	assert.False(t, ok)
}
