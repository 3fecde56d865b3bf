package scene

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/google/uuid"

	"github.com/example/kidspaint/internal/geom"
)

// BrushTip selects the procedural algorithm used to draw a stroke.
type BrushTip int

const (
	TipRound BrushTip = iota
	TipSquare
	TipSpray
	TipChisel
	TipCrayon
	TipNeon
)

var tipNames = []string{"round", "square", "spray", "chisel", "crayon", "neon"}

// Tips lists every brush tip in display order.
func Tips() []BrushTip {
	return []BrushTip{TipRound, TipSquare, TipSpray, TipChisel, TipCrayon, TipNeon}
}

func (t BrushTip) String() string {
	if t < 0 || int(t) >= len(tipNames) {
		return fmt.Sprintf("BrushTip(%d)", int(t))
	}
	return tipNames[t]
}

// ParseTip looks up a tip by name, ignoring case.
func ParseTip(s string) (BrushTip, error) {
	for i, n := range tipNames {
		if strings.EqualFold(n, strings.TrimSpace(s)) {
			return BrushTip(i), nil
		}
	}
	return TipRound, fmt.Errorf("unknown brush tip %q", s)
}

// StickerType is the glyph drawn by a sticker.
type StickerType int

const (
	StickerStar StickerType = iota
	StickerHeart
	StickerSmile
	StickerFlower
	StickerSun
	StickerMoon
	StickerCloud
	StickerBolt
	StickerBalloon
	StickerCrown
	StickerMusic
	StickerPaw
)

var stickerNames = []string{
	"star", "heart", "smile", "flower",
	"sun", "moon", "cloud", "bolt",
	"balloon", "crown", "music", "paw",
}

// StickerTypes lists every sticker glyph in display order.
func StickerTypes() []StickerType {
	out := make([]StickerType, len(stickerNames))
	for i := range out {
		out[i] = StickerType(i)
	}
	return out
}

func (t StickerType) String() string {
	if t < 0 || int(t) >= len(stickerNames) {
		return fmt.Sprintf("StickerType(%d)", int(t))
	}
	return stickerNames[t]
}

// ParseStickerType looks up a sticker by name, ignoring case.
func ParseStickerType(s string) (StickerType, error) {
	for i, n := range stickerNames {
		if strings.EqualFold(n, strings.TrimSpace(s)) {
			return StickerType(i), nil
		}
	}
	return StickerStar, fmt.Errorf("unknown sticker %q", s)
}

// Stroke is a freehand line stored in canvas space.
type Stroke struct {
	ID     uuid.UUID
	Points []geom.Point
	Color  color.RGBA
	Width  float64
	Tip    BrushTip
}

// Clone returns a copy that shares no point storage with s.
func (s Stroke) Clone() Stroke {
	s.Points = append([]geom.Point(nil), s.Points...)
	return s
}

// Equal reports whether both strokes hold the same identity and data.
func (s Stroke) Equal(o Stroke) bool {
	if s.ID != o.ID || s.Color != o.Color || s.Width != o.Width || s.Tip != o.Tip {
		return false
	}
	if len(s.Points) != len(o.Points) {
		return false
	}
	for i := range s.Points {
		if s.Points[i] != o.Points[i] {
			return false
		}
	}
	return true
}

// Sticker is a placed stamp. Rotation is in degrees and is never normalised.
type Sticker struct {
	ID       uuid.UUID
	Type     StickerType
	Position geom.Point
	Scale    float64
	Rotation float64
	Color    color.RGBA
}

// BackgroundImage is an already decoded raster placed behind the drawing.
type BackgroundImage struct {
	Image  image.Image
	Width  int
	Height int
}

// NewBackgroundImage wraps img using its natural pixel size. It returns nil
// for a nil or empty image.
func NewBackgroundImage(img image.Image) *BackgroundImage {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	if b.Empty() {
		return nil
	}
	return &BackgroundImage{Image: img, Width: b.Dx(), Height: b.Dy()}
}

// Usable reports whether the image can be drawn.
func (b *BackgroundImage) Usable() bool {
	return b != nil && b.Image != nil && b.Width > 0 && b.Height > 0
}
