package undo

import (
	"image/color"

	"github.com/example/kidspaint/internal/scene"
)

// AddStroke adds a committed stroke on top.
type AddStroke struct {
	Stroke scene.Stroke
}

func (c AddStroke) Apply(s *scene.Scene)  { s.AddStroke(c.Stroke) }
func (c AddStroke) Revert(s *scene.Scene) { s.RemoveStroke(c.Stroke.ID) }
func (c AddStroke) Label() string         { return "Stroke" }

// RemoveStroke removes a stroke and restores it at Index on undo.
type RemoveStroke struct {
	Stroke scene.Stroke
	Index  int
}

func (c RemoveStroke) Apply(s *scene.Scene)  { s.RemoveStroke(c.Stroke.ID) }
func (c RemoveStroke) Revert(s *scene.Scene) { s.InsertStroke(c.Index, c.Stroke) }
func (c RemoveStroke) Label() string         { return "Erase Stroke" }

// AddSticker places a sticker on top.
type AddSticker struct {
	Sticker scene.Sticker
}

func (c AddSticker) Apply(s *scene.Scene)  { s.AddSticker(c.Sticker) }
func (c AddSticker) Revert(s *scene.Scene) { s.RemoveSticker(c.Sticker.ID) }
func (c AddSticker) Label() string         { return "Sticker" }

// RemoveSticker deletes a sticker and puts it back at Index on undo.
type RemoveSticker struct {
	Sticker scene.Sticker
	Index   int
}

func (c RemoveSticker) Apply(s *scene.Scene)  { s.RemoveSticker(c.Sticker.ID) }
func (c RemoveSticker) Revert(s *scene.Scene) { s.InsertSticker(c.Index, c.Sticker) }
func (c RemoveSticker) Label() string         { return "Delete Sticker" }

// TransformSticker swaps a sticker between two full snapshots. Move,
// resize, rotate and recolor all use it.
type TransformSticker struct {
	Before scene.Sticker
	After  scene.Sticker
}

func (c TransformSticker) Apply(s *scene.Scene)  { s.ReplaceSticker(c.After.ID, c.After) }
func (c TransformSticker) Revert(s *scene.Scene) { s.ReplaceSticker(c.Before.ID, c.Before) }
func (c TransformSticker) Label() string         { return "Sticker Transform" }

// Changed reports whether the transform moves anything worth recording.
func (c TransformSticker) Changed() bool {
	return c.Before != c.After
}

// ClearCanvas removes every stroke and sticker. The fields hold what was
// cleared.
type ClearCanvas struct {
	Strokes  []scene.Stroke
	Stickers []scene.Sticker
}

// NewClearCanvas snapshots s so the command can be replayed.
func NewClearCanvas(s *scene.Scene) *ClearCanvas {
	return &ClearCanvas{Strokes: s.Strokes(), Stickers: s.Stickers()}
}

func (c *ClearCanvas) Apply(s *scene.Scene)  { s.Clear() }
func (c *ClearCanvas) Revert(s *scene.Scene) { s.Restore(c.Strokes, c.Stickers) }
func (c *ClearCanvas) Label() string         { return "Clear Canvas" }

// BackgroundColor changes the canvas fill.
type BackgroundColor struct {
	Before color.RGBA
	After  color.RGBA
}

func (c BackgroundColor) Apply(s *scene.Scene)  { s.SetBackgroundColor(c.After) }
func (c BackgroundColor) Revert(s *scene.Scene) { s.SetBackgroundColor(c.Before) }
func (c BackgroundColor) Label() string         { return "Background Color" }

// BackgroundImage sets or removes the background picture.
type BackgroundImage struct {
	Before *scene.BackgroundImage
	After  *scene.BackgroundImage
}

func (c BackgroundImage) Apply(s *scene.Scene)  { s.SetBackgroundImage(c.After) }
func (c BackgroundImage) Revert(s *scene.Scene) { s.SetBackgroundImage(c.Before) }

func (c BackgroundImage) Label() string {
	if c.After == nil {
		return "Remove Background"
	}
	return "Set Background"
}
