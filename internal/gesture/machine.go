// Package gesture interprets pointer, pinch and controller input as drawing,
// sticker manipulation and viewport changes.
package gesture

import (
	"math"

	"github.com/google/uuid"

	"github.com/example/kidspaint/internal/geom"
	"github.com/example/kidspaint/internal/render"
	"github.com/example/kidspaint/internal/scene"
)

// Sticker scale limits for the resize handle.
const (
	MinStickerScale = 0.35
	MaxStickerScale = 3.0
)

const (
	minResizeRadius = 10
	rotateSnap      = 15
	tapNudge        = 0.5
)

// Machine tracks one pointer gesture, one pinch and the controller's draw
// button. It holds no scene state of its own beyond the sticker snapshot
// taken when a manipulation starts.
type Machine struct {
	newID func() uuid.UUID

	state    State
	selected uuid.UUID

	stroke     scene.Stroke
	controller bool

	before      scene.Sticker
	startCanvas geom.Point

	startOffset geom.Point
	startScreen geom.Point

	pendingPlace bool

	pinching   bool
	pinchStart float64
}

// Option configures a Machine.
type Option func(*Machine)

// WithIDGenerator replaces uuid.New for new strokes and stickers.
func WithIDGenerator(fn func() uuid.UUID) Option {
	return func(m *Machine) {
		if fn != nil {
			m.newID = fn
		}
	}
}

// New returns an idle machine.
func New(opts ...Option) *Machine {
	m := &Machine{newID: uuid.New}
	for _, o := range opts {
		o(m)
	}
	return m
}

// State reports the current interaction. A pinch with no pointer gesture
// reports Pinching.
func (m *Machine) State() State {
	if m.state == Idle && m.pinching {
		return Pinching
	}
	return m.state
}

// Selected returns the selected sticker ID.
func (m *Machine) Selected() (uuid.UUID, bool) {
	return m.selected, m.selected != uuid.Nil
}

// Select marks id as the selected sticker. uuid.Nil clears the selection.
func (m *Machine) Select(id uuid.UUID) { m.selected = id }

// InProgress returns a copy of the stroke being drawn.
func (m *Machine) InProgress() (scene.Stroke, bool) {
	if m.state != Drawing {
		return scene.Stroke{}, false
	}
	return m.stroke.Clone(), true
}

// Pointer feeds one pointer event.
func (m *Machine) Pointer(ev PointerEvent, cfg Config, c Canvas) {
	switch ev.Phase {
	case Down:
		m.begin(ev, cfg, c)
	case Move:
		if !m.controller {
			m.move(ev, c)
		}
	case Up:
		if m.controller {
			return
		}
		m.move(ev, c)
		m.end(ev, cfg, c)
	}
}

func (m *Machine) begin(ev PointerEvent, cfg Config, c Canvas) {
	if m.state != Idle || m.pendingPlace {
		return
	}
	vp := c.Viewport()
	p := vp.ToCanvas(ev.Pos)
	switch cfg.Tool {
	case ToolPan:
		m.state = Panning
		m.startOffset = vp.Offset
		m.startScreen = ev.Pos
	case ToolSticker:
		if m.beginOnHandle(ev.Pos, p, cfg, c) {
			return
		}
		if hit, ok := render.HitTest(c.Stickers(), p); ok {
			m.selected = hit.ID
			m.manipulate(DraggingSticker, hit, p)
			return
		}
		m.pendingPlace = true
	default:
		col := cfg.Color
		if cfg.Tool == ToolEraser {
			col = c.BackgroundColor()
		}
		m.state = Drawing
		m.stroke = scene.Stroke{
			ID:     m.newID(),
			Points: []geom.Point{p},
			Color:  col,
			Width:  cfg.BrushSize,
			Tip:    cfg.Tip,
		}
	}
}

// beginOnHandle checks the selected sticker's controls. It reports whether
// the press was consumed.
func (m *Machine) beginOnHandle(screen, p geom.Point, cfg Config, c Canvas) bool {
	if m.selected == uuid.Nil {
		return false
	}
	st, ok := c.Sticker(m.selected)
	if !ok {
		m.selected = uuid.Nil
		return false
	}
	kind, idx := render.Handles(st, c.Viewport(), len(cfg.Swatches)).Hit(screen)
	switch kind {
	case render.HandleDelete:
		m.DeleteSelected(c)
	case render.HandleRotate:
		m.manipulate(RotatingSticker, st, p)
	case render.HandleResize:
		m.manipulate(ResizingSticker, st, p)
	case render.HandleSwatch:
		after := st
		after.Color = cfg.Swatches[idx]
		if after != st {
			c.CommitStickerTransform(st, after)
		}
	default:
		return false
	}
	return true
}

func (m *Machine) manipulate(s State, st scene.Sticker, p geom.Point) {
	m.state = s
	m.before = st
	m.startCanvas = p
}

func (m *Machine) move(ev PointerEvent, c Canvas) {
	if m.state == Idle {
		return
	}
	vp := c.Viewport()
	p := vp.ToCanvas(ev.Pos)
	switch m.state {
	case Drawing:
		m.appendPoint(p)
	case Panning:
		c.SetViewport(vp.WithOffset(m.startOffset.Add(ev.Pos.Sub(m.startScreen))))
	case DraggingSticker, ResizingSticker, RotatingSticker:
		c.UpdateSticker(m.transform(p, ev.Snap))
	}
}

func (m *Machine) appendPoint(p geom.Point) {
	n := len(m.stroke.Points)
	if n > 0 && m.stroke.Points[n-1] == p {
		return
	}
	m.stroke.Points = append(m.stroke.Points, p)
}

// transform applies the current manipulation to the start snapshot.
func (m *Machine) transform(p geom.Point, snap bool) scene.Sticker {
	st := m.before
	center := m.before.Position
	switch m.state {
	case DraggingSticker:
		st.Position = m.before.Position.Add(p.Sub(m.startCanvas))
	case ResizingSticker:
		f := geom.Distance(center, p) / math.Max(minResizeRadius, geom.Distance(center, m.startCanvas))
		st.Scale = geom.Clamp(m.before.Scale*f, MinStickerScale, MaxStickerScale)
	case RotatingSticker:
		r := m.before.Rotation + geom.Degrees(geom.Angle(center, p)-geom.Angle(center, m.startCanvas))
		if snap {
			r = math.Round(r/rotateSnap) * rotateSnap
		}
		st.Rotation = r
	}
	return st
}

func (m *Machine) end(ev PointerEvent, cfg Config, c Canvas) {
	if m.pendingPlace {
		m.pendingPlace = false
		p := c.Viewport().ToCanvas(ev.Pos)
		if _, hit := render.HitTest(c.Stickers(), p); !hit {
			m.place(p, cfg, c)
		}
		return
	}
	switch m.state {
	case Drawing:
		m.commitStroke(c)
	case DraggingSticker, ResizingSticker, RotatingSticker:
		if cur, ok := c.Sticker(m.before.ID); ok && cur != m.before {
			c.CommitStickerTransform(m.before, cur)
		}
	}
	m.reset()
}

func (m *Machine) commitStroke(c Canvas) {
	if len(m.stroke.Points) >= 2 {
		c.CommitStroke(m.stroke.Clone())
	}
}

func (m *Machine) place(p geom.Point, cfg Config, c Canvas) {
	st := scene.Sticker{
		ID:       m.newID(),
		Type:     cfg.StickerType,
		Position: p,
		Scale:    cfg.StickerScale(),
		Rotation: cfg.StickerRotation,
		Color:    cfg.Color,
	}
	c.PlaceSticker(st)
	m.selected = st.ID
}

func (m *Machine) reset() {
	m.state = Idle
	m.stroke = scene.Stroke{}
	m.controller = false
	m.before = scene.Sticker{}
	m.pendingPlace = false
}

// Cancel abandons the current pointer or controller gesture. A sticker
// being manipulated is put back as it was.
func (m *Machine) Cancel(c Canvas) {
	switch m.state {
	case DraggingSticker, ResizingSticker, RotatingSticker:
		if _, ok := c.Sticker(m.before.ID); ok {
			c.UpdateSticker(m.before)
		}
	}
	m.reset()
}

// ToolChanged abandons whatever gesture is running. Leaving the sticker
// tool also clears the selection.
func (m *Machine) ToolChanged(prev, next Tool, c Canvas) {
	if prev == next {
		return
	}
	m.Cancel(c)
	if prev == ToolSticker {
		m.selected = uuid.Nil
	}
}

// DeleteSelected removes the selected sticker. It reports false when there
// is no selection.
func (m *Machine) DeleteSelected(c Canvas) bool {
	id := m.selected
	if id == uuid.Nil {
		return false
	}
	if m.before.ID == id {
		m.Cancel(c)
	}
	m.selected = uuid.Nil
	if _, ok := c.Sticker(id); !ok {
		return false
	}
	c.DeleteSticker(id)
	return true
}

// Validate drops the selection when its sticker no longer exists, as after
// an undo.
func (m *Machine) Validate(c Canvas) {
	if m.selected == uuid.Nil {
		return
	}
	if _, ok := c.Sticker(m.selected); !ok {
		m.selected = uuid.Nil
	}
}

// Pinch feeds one pinch event. It runs alongside any pointer gesture.
func (m *Machine) Pinch(ev PinchEvent, c Canvas) {
	switch ev.Phase {
	case PinchBegin:
		m.pinching = true
		m.pinchStart = c.Viewport().Scale
	case PinchChange:
		if !m.pinching {
			m.pinching = true
			m.pinchStart = c.Viewport().Scale
		}
		c.SetViewport(c.Viewport().WithScale(m.pinchStart * ev.Magnification))
	case PinchEnd:
		m.pinching = false
		m.pinchStart = 0
	}
}

// ControllerPress starts a controller stroke at the canvas point p.
func (m *Machine) ControllerPress(p geom.Point, cfg Config, c Canvas) {
	if m.state != Idle || m.pendingPlace {
		return
	}
	switch cfg.Tool {
	case ToolBrush, ToolEraser:
	default:
		return
	}
	m.begin(PointerEvent{Phase: Down, Pos: c.Viewport().ToScreen(p)}, cfg, c)
	m.stroke.Points[0] = p
	m.controller = true
}

// ControllerMove extends a controller stroke to p.
func (m *Machine) ControllerMove(p geom.Point) {
	if m.state == Drawing && m.controller {
		m.appendPoint(p)
	}
}

// ControllerRelease finishes a controller stroke. A single-point tap gets a
// second point half a unit to the right so it still leaves a dot.
func (m *Machine) ControllerRelease(c Canvas) {
	if m.state != Drawing || !m.controller {
		return
	}
	if len(m.stroke.Points) == 1 {
		m.stroke.Points = append(m.stroke.Points, m.stroke.Points[0].Add(geom.Pt(tapNudge, 0)))
	}
	m.commitStroke(c)
	m.reset()
}

// ControllerPlace drops a sticker at the canvas point p and selects it.
// Nothing is placed when p already lands on a sticker.
func (m *Machine) ControllerPlace(p geom.Point, cfg Config, c Canvas) {
	if m.state != Idle {
		return
	}
	if _, hit := render.HitTest(c.Stickers(), p); hit {
		return
	}
	m.place(p, cfg, c)
}
