// Package canvas is the composition root of the drawing core. Controller
// owns the scene, the viewport, the history and the gesture machine, and is
// the only thing that mutates them.
package canvas

import (
	"image"
	"image/color"
	"log"

	"github.com/google/uuid"

	"github.com/example/kidspaint/internal/gamepad"
	"github.com/example/kidspaint/internal/geom"
	"github.com/example/kidspaint/internal/gesture"
	"github.com/example/kidspaint/internal/palette"
	"github.com/example/kidspaint/internal/render"
	"github.com/example/kidspaint/internal/scene"
	"github.com/example/kidspaint/internal/undo"
)

// Brush and sticker size limits, in canvas units.
const (
	MinBrushSize   = 2
	MaxBrushSize   = 80
	MinStickerSize = 64
	MaxStickerSize = 420

	brushStep   = 2
	stickerStep = 16
)

// Defaults for a new controller.
const (
	DefaultWidth       = 1024
	DefaultHeight      = 768
	DefaultBrushSize   = 18
	DefaultStickerSize = 256
)

// Controller is not safe for concurrent use. Hosts call it from their
// event loop only.
type Controller struct {
	scene   *scene.Scene
	history *undo.Coordinator
	machine *gesture.Machine
	pad     *gamepad.Mapper
	ops     ops

	vp      geom.Viewport
	size    geom.Point
	cfg     gesture.Config
	colors  []color.RGBA
	padSeen bool

	hover   geom.Point
	hovered bool

	newID    func() uuid.UUID
	onChange func()
	dirty    bool
}

// Option configures a Controller during creation.
type Option func(*Controller)

// WithSize sets the logical canvas size.
func WithSize(w, h float64) Option {
	return func(c *Controller) {
		if w > 0 && h > 0 {
			c.size = geom.Pt(w, h)
		}
	}
}

// WithPalette sets the colours offered for brushes and sticker recolor.
func WithPalette(colors []color.RGBA) Option {
	return func(c *Controller) {
		if len(colors) > 0 {
			c.colors = append([]color.RGBA(nil), colors...)
		}
	}
}

// WithBrush sets the initial brush size and tip.
func WithBrush(size float64, tip scene.BrushTip) Option {
	return func(c *Controller) {
		c.cfg.BrushSize = size
		c.cfg.Tip = tip
	}
}

// WithSticker sets the initial sticker type and size.
func WithSticker(t scene.StickerType, size float64) Option {
	return func(c *Controller) {
		c.cfg.StickerType = t
		c.cfg.StickerSize = size
	}
}

// WithBackgroundColor sets the starting canvas fill without recording it.
func WithBackgroundColor(col color.RGBA) Option {
	return func(c *Controller) { c.scene.SetBackgroundColor(col) }
}

// WithBackgroundImage sets the starting background image without recording
// it. Nil and empty images are ignored.
func WithBackgroundImage(img image.Image) Option {
	return func(c *Controller) { c.scene.SetBackgroundImage(scene.NewBackgroundImage(img)) }
}

// WithIDGenerator replaces uuid.New for new strokes and stickers.
func WithIDGenerator(fn func() uuid.UUID) Option {
	return func(c *Controller) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// WithOnChange registers a callback fired after any scene or viewport
// change.
func WithOnChange(fn func()) Option { return func(c *Controller) { c.onChange = fn } }

// New creates a Controller with the provided options.
func New(opts ...Option) *Controller {
	c := &Controller{
		scene:   scene.New(),
		history: undo.New(),
		vp:      geom.Identity(),
		size:    geom.Pt(DefaultWidth, DefaultHeight),
		colors:  palette.Default().RGBA(),
		newID:   uuid.New,
		cfg: gesture.Config{
			Tool:        gesture.ToolBrush,
			BrushSize:   DefaultBrushSize,
			Tip:         scene.TipRound,
			StickerType: scene.StickerStar,
			StickerSize: DefaultStickerSize,
		},
	}
	for _, o := range opts {
		o(c)
	}
	c.cfg.Color = c.colors[0]
	c.cfg.Swatches = c.colors
	c.cfg.BrushSize = geom.Clamp(c.cfg.BrushSize, MinBrushSize, MaxBrushSize)
	c.cfg.StickerSize = geom.Clamp(c.cfg.StickerSize, MinStickerSize, MaxStickerSize)
	c.machine = gesture.New(gesture.WithIDGenerator(c.newID))
	c.pad = gamepad.NewMapper(c.size, c.size.Mul(0.5))
	c.ops = ops{c}
	return c
}

func (c *Controller) touch() { c.dirty = true }

// flush fires the change listener once per public call.
func (c *Controller) flush() {
	if !c.dirty {
		return
	}
	c.dirty = false
	if c.onChange != nil {
		c.onChange()
	}
}

// Size returns the logical canvas size.
func (c *Controller) Size() geom.Point { return c.size }

// Config returns the current tool configuration.
func (c *Controller) Config() gesture.Config {
	cfg := c.cfg
	cfg.Swatches = append([]color.RGBA(nil), c.colors...)
	return cfg
}

// Colors returns the palette in cycling order.
func (c *Controller) Colors() []color.RGBA { return append([]color.RGBA(nil), c.colors...) }

// Viewport returns the current pan and zoom.
func (c *Controller) Viewport() geom.Viewport { return c.vp }

// SetTool switches tools. Any gesture in flight is abandoned, and leaving
// the sticker tool clears the selection.
func (c *Controller) SetTool(t gesture.Tool) {
	prev := c.cfg.Tool
	c.machine.ToolChanged(prev, t, c.ops)
	c.cfg.Tool = t
	if prev != t {
		c.touch()
	}
	c.flush()
}

// SetColor sets the brush and new-sticker colour.
func (c *Controller) SetColor(col color.RGBA) {
	c.cfg.Color = col
	c.touch()
	c.flush()
}

// CycleColor moves step places through the palette, wrapping around.
func (c *Controller) CycleColor(step int) {
	c.SetColor(c.colors[cycle(indexOf(c.colors, c.cfg.Color), step, len(c.colors))])
}

// SetBrushSize sets the brush width, clamped to its limits.
func (c *Controller) SetBrushSize(size float64) {
	c.cfg.BrushSize = geom.Clamp(size, MinBrushSize, MaxBrushSize)
	c.touch()
	c.flush()
}

// SetBrushTip sets the brush tip for new strokes.
func (c *Controller) SetBrushTip(tip scene.BrushTip) {
	c.cfg.Tip = tip
	c.touch()
	c.flush()
}

// CycleTip moves step places through the tip list, wrapping around.
func (c *Controller) CycleTip(step int) {
	tips := scene.Tips()
	c.SetBrushTip(tips[cycle(int(c.cfg.Tip), step, len(tips))])
}

// SetStickerType sets the glyph for new stickers.
func (c *Controller) SetStickerType(t scene.StickerType) {
	c.cfg.StickerType = t
	c.touch()
	c.flush()
}

// SetStickerSize sets the size of new stickers, clamped to its limits.
func (c *Controller) SetStickerSize(size float64) {
	c.cfg.StickerSize = geom.Clamp(size, MinStickerSize, MaxStickerSize)
	c.touch()
	c.flush()
}

// SetStickerRotation sets the rotation preset, in degrees, for new stickers.
func (c *Controller) SetStickerRotation(deg float64) {
	c.cfg.StickerRotation = deg
	c.touch()
	c.flush()
}

// NudgeSize grows or shrinks the brush, or the sticker size when the
// sticker tool is active, by one step in the direction of step.
func (c *Controller) NudgeSize(step int) {
	if step == 0 {
		return
	}
	dir := float64(step) / float64(abs(step))
	if c.cfg.Tool == gesture.ToolSticker {
		c.SetStickerSize(c.cfg.StickerSize + dir*stickerStep)
		return
	}
	c.SetBrushSize(c.cfg.BrushSize + dir*brushStep)
}

// Undo reverts the last step. Any gesture in flight is abandoned first.
func (c *Controller) Undo() bool {
	c.machine.Cancel(c.ops)
	ok := c.history.Undo(c.scene)
	c.afterHistory(ok)
	return ok
}

// Redo reapplies the last undone step.
func (c *Controller) Redo() bool {
	c.machine.Cancel(c.ops)
	ok := c.history.Redo(c.scene)
	c.afterHistory(ok)
	return ok
}

func (c *Controller) afterHistory(changed bool) {
	c.machine.Validate(c.ops)
	if changed {
		c.touch()
	}
	c.flush()
}

// CanUndo reports whether there is a step to undo.
func (c *Controller) CanUndo() bool { return c.history.CanUndo() }

// CanRedo reports whether there is an undone step to redo.
func (c *Controller) CanRedo() bool { return c.history.CanRedo() }

// DeleteSelected removes the selected sticker as one undo step.
func (c *Controller) DeleteSelected() bool {
	ok := c.machine.DeleteSelected(c.ops)
	c.flush()
	return ok
}

// RecolorSelected paints the selected sticker with col as one undo step.
// It reports false when nothing is selected or the colour is unchanged.
func (c *Controller) RecolorSelected(col color.RGBA) bool {
	id, ok := c.machine.Selected()
	if !ok {
		return false
	}
	st, ok := c.scene.Sticker(id)
	if !ok {
		return false
	}
	if st.Color == col {
		return false
	}
	after := st
	after.Color = col
	c.ops.CommitStickerTransform(st, after)
	c.flush()
	return true
}

// ClearCanvas removes all strokes and stickers as one undo step.
func (c *Controller) ClearCanvas() {
	c.machine.Cancel(c.ops)
	if c.scene.StrokeCount() == 0 && c.scene.StickerCount() == 0 {
		return
	}
	c.history.Do(c.scene, undo.NewClearCanvas(c.scene))
	c.machine.Select(uuid.Nil)
	c.touch()
	c.flush()
}

// SetBackgroundColor changes the canvas fill as one undo step.
func (c *Controller) SetBackgroundColor(col color.RGBA) {
	before := c.scene.Background()
	if before == col {
		return
	}
	c.history.Do(c.scene, undo.BackgroundColor{Before: before, After: col})
	c.touch()
	c.flush()
}

// SetBackgroundImage places img behind the drawing as one undo step. A nil
// or empty image removes the current one.
func (c *Controller) SetBackgroundImage(img image.Image) {
	bg := scene.NewBackgroundImage(img)
	if img != nil && bg == nil {
		log.Printf("background: image has no pixels, ignoring")
	}
	before := c.scene.BackgroundImage()
	if before == nil && bg == nil {
		return
	}
	c.history.Do(c.scene, undo.BackgroundImage{Before: before, After: bg})
	c.touch()
	c.flush()
}

// ResetView returns to scale 1 with no pan.
func (c *Controller) ResetView() {
	c.ops.SetViewport(geom.Identity())
	c.flush()
}

// Zoom multiplies the viewport scale by 1+delta, clamped.
func (c *Controller) Zoom(delta float64) {
	c.ops.SetViewport(c.vp.WithScale(c.vp.Scale * (1 + delta)))
	c.flush()
}

func indexOf(colors []color.RGBA, col color.RGBA) int {
	for i, c := range colors {
		if c == col {
			return i
		}
	}
	return -1
}

// cycle steps from i through n entries with wraparound. An unknown i (-1)
// lands on the first or last entry.
func cycle(i, step, n int) int {
	if i < 0 {
		if step < 0 {
			return n - 1
		}
		return 0
	}
	return ((i+step)%n + n) % n
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// ops is the gesture.Canvas the machine drives.
type ops struct{ c *Controller }

var _ gesture.Canvas = ops{}

func (o ops) Viewport() geom.Viewport { return o.c.vp }

func (o ops) SetViewport(v geom.Viewport) {
	v.Scale = geom.ClampScale(v.Scale)
	if v != o.c.vp {
		o.c.vp = v
		o.c.touch()
	}
}

func (o ops) Stickers() []scene.Sticker                  { return o.c.scene.Stickers() }
func (o ops) Sticker(id uuid.UUID) (scene.Sticker, bool) { return o.c.scene.Sticker(id) }
func (o ops) BackgroundColor() color.RGBA                { return o.c.scene.Background() }

func (o ops) CommitStroke(s scene.Stroke) {
	o.c.history.Do(o.c.scene, undo.AddStroke{Stroke: s})
	o.c.touch()
}

func (o ops) PlaceSticker(st scene.Sticker) {
	o.c.history.Do(o.c.scene, undo.AddSticker{Sticker: st})
	o.c.touch()
}

func (o ops) UpdateSticker(st scene.Sticker) {
	if _, ok := o.c.scene.ReplaceSticker(st.ID, st); ok {
		o.c.touch()
	}
}

func (o ops) CommitStickerTransform(before, after scene.Sticker) {
	cmd := undo.TransformSticker{Before: before, After: after}
	if !cmd.Changed() {
		return
	}
	cur, ok := o.c.scene.Sticker(after.ID)
	if !ok {
		return
	}
	if cur != after {
		o.c.scene.ReplaceSticker(after.ID, after)
	}
	o.c.history.Record(cmd)
	o.c.touch()
}

func (o ops) DeleteSticker(id uuid.UUID) {
	st, idx, ok := o.c.scene.StickerAt(id)
	if !ok {
		return
	}
	o.c.history.Do(o.c.scene, undo.RemoveSticker{Sticker: st, Index: idx})
	o.c.touch()
}

// stickerHandles returns the controls of the selected sticker.
func (c *Controller) stickerHandles() (scene.Sticker, render.HandleSet, bool) {
	id, ok := c.machine.Selected()
	if !ok {
		return scene.Sticker{}, render.HandleSet{}, false
	}
	st, ok := c.scene.Sticker(id)
	if !ok {
		return scene.Sticker{}, render.HandleSet{}, false
	}
	return st, render.Handles(st, c.vp, len(c.colors)), true
}
