package canvas

import (
	"image/color"

	"github.com/example/kidspaint/internal/geom"
	"github.com/example/kidspaint/internal/gesture"
	"github.com/example/kidspaint/internal/render"
	"github.com/example/kidspaint/internal/scene"
)

// Snapshot is a read-only copy of everything a host needs to paint a
// frame. Mutating it has no effect on the controller.
type Snapshot struct {
	Size            geom.Point
	Strokes         []scene.Stroke
	Stickers        []scene.Sticker
	InProgress      *scene.Stroke
	Background      color.RGBA
	BackgroundImage *scene.BackgroundImage
	Viewport        geom.Viewport

	Config gesture.Config
	State  gesture.State

	Selected *scene.Sticker
	Handles  *render.HandleSet

	Cursor       geom.Point
	CursorActive bool

	// Hover is the mouse position in screen space, valid when Hovering.
	Hover    geom.Point
	Hovering bool

	CanUndo   bool
	CanRedo   bool
	UndoLabel string
	RedoLabel string
}

// Render captures the current state.
func (c *Controller) Render() Snapshot {
	s := Snapshot{
		Size:            c.size,
		Strokes:         c.scene.Strokes(),
		Stickers:        c.scene.Stickers(),
		Background:      c.scene.Background(),
		BackgroundImage: c.scene.BackgroundImage(),
		Viewport:        c.vp,
		Config:          c.Config(),
		State:           c.machine.State(),
		CanUndo:         c.history.CanUndo(),
		CanRedo:         c.history.CanRedo(),
		UndoLabel:       c.history.UndoLabel(),
		RedoLabel:       c.history.RedoLabel(),
	}
	if st, ok := c.machine.InProgress(); ok {
		s.InProgress = &st
	}
	if st, h, ok := c.stickerHandles(); ok {
		s.Selected = &st
		s.Handles = &h
	}
	s.Cursor, s.CursorActive = c.Cursor()
	s.Hover, s.Hovering = c.hover, c.hovered
	return s
}
