package scene

import (
	"image"
	"image/color"
	"testing"

	"github.com/google/uuid"

	"github.com/example/kidspaint/internal/geom"
)

func stroke(pts ...geom.Point) Stroke {
	return Stroke{ID: uuid.New(), Points: pts, Color: color.RGBA{255, 0, 0, 255}, Width: 10}
}

func TestInsertStrokeHonoursIndex(t *testing.T) {
	s := New()
	a, b, c := stroke(geom.Pt(0, 0)), stroke(geom.Pt(1, 1)), stroke(geom.Pt(2, 2))
	s.AddStroke(a)
	s.AddStroke(c)
	if !s.InsertStroke(1, b) {
		t.Fatal("insert failed")
	}
	got := s.Strokes()
	if got[0].ID != a.ID || got[1].ID != b.ID || got[2].ID != c.ID {
		t.Fatalf("unexpected order: %v %v %v", got[0].ID, got[1].ID, got[2].ID)
	}
	if s.InsertStroke(99, b) {
		t.Fatal("duplicate id was inserted")
	}
}

func TestRemoveMissingIsNoop(t *testing.T) {
	s := New()
	s.AddSticker(Sticker{ID: uuid.New(), Scale: 1})
	if _, _, ok := s.RemoveSticker(uuid.New()); ok {
		t.Fatal("expected miss")
	}
	if _, ok := s.ReplaceSticker(uuid.New(), Sticker{}); ok {
		t.Fatal("expected miss")
	}
	if s.StickerCount() != 1 {
		t.Fatalf("sticker count %d", s.StickerCount())
	}
}

func TestStrokesReturnsCopies(t *testing.T) {
	s := New()
	st := stroke(geom.Pt(0, 0), geom.Pt(5, 5))
	s.AddStroke(st)
	st.Points[0] = geom.Pt(99, 99)
	got := s.Strokes()
	got[0].Points[1] = geom.Pt(-1, -1)
	again := s.Strokes()
	if again[0].Points[0] != geom.Pt(0, 0) || again[0].Points[1] != geom.Pt(5, 5) {
		t.Fatalf("scene storage was aliased: %v", again[0].Points)
	}
}

func TestReplaceStickerKeepsOrderAndID(t *testing.T) {
	s := New()
	first := Sticker{ID: uuid.New(), Scale: 1}
	second := Sticker{ID: uuid.New(), Scale: 1}
	s.AddSticker(first)
	s.AddSticker(second)
	moved := first
	moved.ID = uuid.New()
	moved.Position = geom.Pt(10, 20)
	old, ok := s.ReplaceSticker(first.ID, moved)
	if !ok || old != first {
		t.Fatalf("replace returned %+v %v", old, ok)
	}
	got := s.Stickers()
	if got[0].ID != first.ID || got[0].Position != geom.Pt(10, 20) {
		t.Fatalf("unexpected sticker %+v", got[0])
	}
}

func TestClearAndRestore(t *testing.T) {
	s := New()
	s.AddStroke(stroke(geom.Pt(0, 0), geom.Pt(1, 0)))
	s.AddSticker(Sticker{ID: uuid.New(), Scale: 1})
	strokes, stickers := s.Clear()
	if s.StrokeCount() != 0 || s.StickerCount() != 0 {
		t.Fatal("clear left content behind")
	}
	s.Restore(strokes, stickers)
	if s.StrokeCount() != 1 || s.StickerCount() != 1 {
		t.Fatal("restore lost content")
	}
}

func TestUnusableBackgroundImageIsNil(t *testing.T) {
	s := New()
	s.SetBackgroundImage(&BackgroundImage{})
	if s.BackgroundImage() != nil {
		t.Fatal("expected nil background image")
	}
	if NewBackgroundImage(image.NewRGBA(image.Rect(0, 0, 0, 0))) != nil {
		t.Fatal("expected nil for empty image")
	}
	bg := NewBackgroundImage(image.NewRGBA(image.Rect(0, 0, 4, 3)))
	s.SetBackgroundImage(bg)
	if got := s.BackgroundImage(); got == nil || got.Width != 4 || got.Height != 3 {
		t.Fatalf("unexpected background %+v", got)
	}
}

func TestParseNames(t *testing.T) {
	if tip, err := ParseTip("Crayon"); err != nil || tip != TipCrayon {
		t.Fatalf("ParseTip: %v %v", tip, err)
	}
	if _, err := ParseTip("glitter"); err == nil {
		t.Fatal("expected error")
	}
	if st, err := ParseStickerType("paw"); err != nil || st != StickerPaw {
		t.Fatalf("ParseStickerType: %v %v", st, err)
	}
	if len(StickerTypes()) != 12 {
		t.Fatalf("sticker types %d", len(StickerTypes()))
	}
}
