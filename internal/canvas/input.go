package canvas

import (
	"github.com/example/kidspaint/internal/gamepad"
	"github.com/example/kidspaint/internal/geom"
	"github.com/example/kidspaint/internal/gesture"
)

// HandlePointerEvent feeds one pointer event in screen space. The
// in-progress stroke and the selection live outside the scene, so every
// pointer event counts as a change.
func (c *Controller) HandlePointerEvent(ev gesture.PointerEvent) {
	c.machine.Pointer(ev, c.cfg, c.ops)
	c.touch()
	c.flush()
}

// SetHover records the mouse position in screen space for the brush
// preview.
func (c *Controller) SetHover(p geom.Point) {
	if c.hovered && c.hover == p {
		return
	}
	c.hover, c.hovered = p, true
	c.touch()
	c.flush()
}

// ClearHover hides the brush preview once the mouse leaves the canvas.
func (c *Controller) ClearHover() {
	if !c.hovered {
		return
	}
	c.hovered = false
	c.touch()
	c.flush()
}

// HandlePinchEvent feeds one pinch event.
func (c *Controller) HandlePinchEvent(ev gesture.PinchEvent) {
	c.machine.Pinch(ev, c.ops)
	c.flush()
}

// HandleControllerTick feeds one controller poll. Hosts call it at
// gamepad.TickInterval.
func (c *Controller) HandleControllerTick(ev gamepad.Event) {
	c.padSeen = true
	for _, a := range c.pad.Update(ev) {
		c.apply(a)
	}
	c.flush()
}

func (c *Controller) apply(a gamepad.Action) {
	switch a.Kind {
	case gamepad.SelectTool:
		c.SetTool(a.Tool)
	case gamepad.CursorMoved:
		c.machine.ControllerMove(a.Pos)
		c.touch()
	case gamepad.PrimaryPress:
		if c.cfg.Tool == gesture.ToolSticker {
			c.machine.ControllerPlace(a.Pos, c.cfg, c.ops)
		} else {
			c.machine.ControllerPress(a.Pos, c.cfg, c.ops)
		}
		c.touch()
	case gamepad.PrimaryRelease:
		c.machine.ControllerRelease(c.ops)
		c.touch()
	case gamepad.Resize:
		c.NudgeSize(a.Step)
	case gamepad.Zoom:
		c.Zoom(a.Delta)
	case gamepad.CycleColor:
		c.CycleColor(a.Step)
	case gamepad.CycleTip:
		c.CycleTip(a.Step)
	case gamepad.Undo:
		c.Undo()
	case gamepad.Redo:
		c.Redo()
	}
}

// Cursor returns the controller cursor in canvas space and whether a
// controller has reported in.
func (c *Controller) Cursor() (geom.Point, bool) {
	return c.pad.Cursor(), c.padSeen
}
