// Package scene holds the single source of truth for what is drawn: ordered
// strokes, ordered stickers and the background. It carries no rendering or
// undo logic; every mutator returns what an inverse needs.
package scene

import (
	"image/color"

	"github.com/google/uuid"
)

// DefaultBackground is the canvas fill of a new scene.
var DefaultBackground = color.RGBA{255, 255, 255, 255}

// Scene is the drawing document. It is not safe for concurrent use; the
// canvas controller owns it on the event thread.
type Scene struct {
	strokes         []Stroke
	stickers        []Sticker
	background      color.RGBA
	backgroundImage *BackgroundImage
}

// New returns an empty scene with a white background.
func New() *Scene {
	return &Scene{background: DefaultBackground}
}

// Strokes returns a copy of the strokes in z-order.
func (s *Scene) Strokes() []Stroke {
	out := make([]Stroke, len(s.strokes))
	for i, st := range s.strokes {
		out[i] = st.Clone()
	}
	return out
}

// Stickers returns a copy of the stickers in z-order.
func (s *Scene) Stickers() []Sticker {
	return append([]Sticker(nil), s.stickers...)
}

func (s *Scene) StrokeCount() int  { return len(s.strokes) }
func (s *Scene) StickerCount() int { return len(s.stickers) }

// Background returns the fill colour.
func (s *Scene) Background() color.RGBA { return s.background }

// BackgroundImage returns the background image, or nil.
func (s *Scene) BackgroundImage() *BackgroundImage { return s.backgroundImage }

func (s *Scene) strokeIndex(id uuid.UUID) int {
	for i := range s.strokes {
		if s.strokes[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Scene) stickerIndex(id uuid.UUID) int {
	for i := range s.stickers {
		if s.stickers[i].ID == id {
			return i
		}
	}
	return -1
}

// AddStroke appends st on top. It reports false, changing nothing, when a
// stroke with the same ID is already present.
func (s *Scene) AddStroke(st Stroke) bool {
	return s.InsertStroke(len(s.strokes), st)
}

// InsertStroke inserts st at index, clamped to the valid range.
func (s *Scene) InsertStroke(index int, st Stroke) bool {
	if s.strokeIndex(st.ID) >= 0 {
		return false
	}
	index = clampIndex(index, len(s.strokes))
	s.strokes = append(s.strokes, Stroke{})
	copy(s.strokes[index+1:], s.strokes[index:])
	s.strokes[index] = st.Clone()
	return true
}

// RemoveStroke deletes the stroke with the given ID and returns it together
// with the index it occupied.
func (s *Scene) RemoveStroke(id uuid.UUID) (Stroke, int, bool) {
	idx := s.strokeIndex(id)
	if idx < 0 {
		return Stroke{}, -1, false
	}
	removed := s.strokes[idx]
	s.strokes = append(s.strokes[:idx], s.strokes[idx+1:]...)
	return removed, idx, true
}

// Stroke looks up a stroke by ID.
func (s *Scene) Stroke(id uuid.UUID) (Stroke, bool) {
	idx := s.strokeIndex(id)
	if idx < 0 {
		return Stroke{}, false
	}
	return s.strokes[idx].Clone(), true
}

// AddSticker places st on top of the other stickers.
func (s *Scene) AddSticker(st Sticker) bool {
	return s.InsertSticker(len(s.stickers), st)
}

// InsertSticker inserts st at index, clamped to the valid range.
func (s *Scene) InsertSticker(index int, st Sticker) bool {
	if s.stickerIndex(st.ID) >= 0 {
		return false
	}
	index = clampIndex(index, len(s.stickers))
	s.stickers = append(s.stickers, Sticker{})
	copy(s.stickers[index+1:], s.stickers[index:])
	s.stickers[index] = st
	return true
}

// RemoveSticker deletes the sticker with the given ID and returns it with
// its former index.
func (s *Scene) RemoveSticker(id uuid.UUID) (Sticker, int, bool) {
	idx := s.stickerIndex(id)
	if idx < 0 {
		return Sticker{}, -1, false
	}
	removed := s.stickers[idx]
	s.stickers = append(s.stickers[:idx], s.stickers[idx+1:]...)
	return removed, idx, true
}

// Sticker looks up a sticker by ID.
func (s *Scene) Sticker(id uuid.UUID) (Sticker, bool) {
	idx := s.stickerIndex(id)
	if idx < 0 {
		return Sticker{}, false
	}
	return s.stickers[idx], true
}

// StickerAt returns the sticker and its z-index.
func (s *Scene) StickerAt(id uuid.UUID) (Sticker, int, bool) {
	idx := s.stickerIndex(id)
	if idx < 0 {
		return Sticker{}, -1, false
	}
	return s.stickers[idx], idx, true
}

// ReplaceSticker swaps the sticker with the given ID for st, keeping its
// z-order. The stored ID is always id. It returns the previous value.
func (s *Scene) ReplaceSticker(id uuid.UUID, st Sticker) (Sticker, bool) {
	idx := s.stickerIndex(id)
	if idx < 0 {
		return Sticker{}, false
	}
	old := s.stickers[idx]
	st.ID = id
	s.stickers[idx] = st
	return old, true
}

// SetBackgroundColor replaces the fill colour and returns the old one.
func (s *Scene) SetBackgroundColor(c color.RGBA) color.RGBA {
	old := s.background
	s.background = c
	return old
}

// SetBackgroundImage replaces the background image and returns the old
// one. Unusable images are stored as nil.
func (s *Scene) SetBackgroundImage(img *BackgroundImage) *BackgroundImage {
	old := s.backgroundImage
	if !img.Usable() {
		img = nil
	}
	s.backgroundImage = img
	return old
}

// Clear empties both collections and returns what they held.
func (s *Scene) Clear() ([]Stroke, []Sticker) {
	strokes, stickers := s.strokes, s.stickers
	s.strokes, s.stickers = nil, nil
	return strokes, stickers
}

// Restore replaces both collections wholesale.
func (s *Scene) Restore(strokes []Stroke, stickers []Sticker) {
	s.strokes = make([]Stroke, len(strokes))
	for i, st := range strokes {
		s.strokes[i] = st.Clone()
	}
	s.stickers = append([]Sticker(nil), stickers...)
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}
