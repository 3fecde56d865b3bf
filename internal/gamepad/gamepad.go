// Package gamepad turns polled controller state into discrete drawing
// actions and a canvas-space cursor.
package gamepad

import (
	"time"

	"github.com/example/kidspaint/internal/geom"
	"github.com/example/kidspaint/internal/gesture"
)

// Button is a digital controller input.
type Button uint

const (
	ButtonA Button = iota
	ButtonB
	ButtonX
	ButtonY
	ButtonL3
	ButtonLeftShoulder
	ButtonRightShoulder
	DpadLeft
	DpadRight
	DpadUp
	DpadDown
	ButtonMenu
	ButtonOptions
)

// Buttons is a set of pressed buttons.
type Buttons uint32

// With returns b with btn pressed.
func (b Buttons) With(btn Button) Buttons { return b | 1<<btn }

// Has reports whether btn is pressed.
func (b Buttons) Has(btn Button) bool { return b&(1<<btn) != 0 }

// Event is one poll of the controller. Stick axes are in [-1, 1] with y
// pointing up; triggers are in [0, 1].
type Event struct {
	Time         time.Time
	Stick        geom.Point
	Buttons      Buttons
	LeftTrigger  float64
	RightTrigger float64
}

// Kind names what an Action asks the canvas to do.
type Kind int

const (
	SelectTool Kind = iota
	PrimaryPress
	PrimaryRelease
	CursorMoved
	Resize
	Zoom
	CycleColor
	CycleTip
	Undo
	Redo
)

// Action is one request produced by Update.
type Action struct {
	Kind Kind
	Tool gesture.Tool
	// Step is -1 or +1 for Resize and the cycle kinds.
	Step int
	// Delta is the relative zoom change for Zoom.
	Delta float64
	// Pos is the cursor for PrimaryPress and CursorMoved.
	Pos geom.Point
}

const (
	// TickInterval is the polling period the host should use.
	TickInterval = time.Second / 60
	maxTick      = 50 * time.Millisecond
	// CursorSpeed is the full-deflection cursor speed in canvas units per second.
	CursorSpeed     = 900
	triggerDeadzone = 0.25
	zoomRate        = 0.02
)

var toolButtons = []struct {
	btn  Button
	tool gesture.Tool
}{
	{ButtonL3, gesture.ToolBrush},
	{ButtonB, gesture.ToolEraser},
	{ButtonX, gesture.ToolSticker},
	{ButtonY, gesture.ToolPan},
}

// Mapper keeps the previous poll so button edges and elapsed time can be
// derived. It is not safe for concurrent use.
type Mapper struct {
	size   geom.Point
	cursor geom.Point
	last   time.Time
	prev   Buttons
}

// NewMapper returns a mapper whose cursor starts at start and is clamped to
// a canvas of the given size.
func NewMapper(size, start geom.Point) *Mapper {
	m := &Mapper{size: size}
	m.cursor = m.clamp(start)
	return m
}

// Cursor returns the canvas-space cursor.
func (m *Mapper) Cursor() geom.Point { return m.cursor }

// SetSize changes the clamping bounds.
func (m *Mapper) SetSize(size geom.Point) {
	m.size = size
	m.cursor = m.clamp(m.cursor)
}

// Reset forgets the previous poll, as after a controller reconnects.
func (m *Mapper) Reset() {
	m.last = time.Time{}
	m.prev = 0
}

func (m *Mapper) clamp(p geom.Point) geom.Point {
	if m.size.X > 0 {
		p.X = geom.Clamp(p.X, 0, m.size.X)
	}
	if m.size.Y > 0 {
		p.Y = geom.Clamp(p.Y, 0, m.size.Y)
	}
	return p
}

// Update consumes one poll and returns the resulting actions in order:
// tool changes, cursor movement, the primary button, then the rest.
func (m *Mapper) Update(ev Event) []Action {
	var out []Action
	pressed := ev.Buttons &^ m.prev
	released := m.prev &^ ev.Buttons
	m.prev = ev.Buttons

	for _, tb := range toolButtons {
		if pressed.Has(tb.btn) {
			out = append(out, Action{Kind: SelectTool, Tool: tb.tool})
		}
	}

	var dt time.Duration
	if !m.last.IsZero() {
		dt = min(maxTick, max(0, ev.Time.Sub(m.last)))
	}
	m.last = ev.Time
	step := CursorSpeed * dt.Seconds()
	if d := geom.Pt(ev.Stick.X*step, -ev.Stick.Y*step); d.X != 0 || d.Y != 0 {
		next := m.clamp(m.cursor.Add(d))
		if next != m.cursor {
			m.cursor = next
			out = append(out, Action{Kind: CursorMoved, Pos: next})
		}
	}

	if pressed.Has(ButtonA) {
		out = append(out, Action{Kind: PrimaryPress, Pos: m.cursor})
	}
	if released.Has(ButtonA) {
		out = append(out, Action{Kind: PrimaryRelease})
	}

	edges := []struct {
		btn  Button
		kind Kind
		step int
	}{
		{ButtonLeftShoulder, Resize, -1},
		{ButtonRightShoulder, Resize, +1},
		{DpadLeft, CycleColor, -1},
		{DpadRight, CycleColor, +1},
		{DpadUp, CycleTip, -1},
		{DpadDown, CycleTip, +1},
		{ButtonMenu, Undo, 0},
		{ButtonOptions, Redo, 0},
	}
	for _, e := range edges {
		if pressed.Has(e.btn) {
			out = append(out, Action{Kind: e.kind, Step: e.step})
		}
	}

	var zoom float64
	if ev.LeftTrigger > triggerDeadzone {
		zoom -= zoomRate * ev.LeftTrigger
	}
	if ev.RightTrigger > triggerDeadzone {
		zoom += zoomRate * ev.RightTrigger
	}
	if zoom != 0 {
		out = append(out, Action{Kind: Zoom, Delta: zoom})
	}
	return out
}
