package render

import (
	"math"

	"github.com/example/kidspaint/internal/geom"
	"github.com/example/kidspaint/internal/scene"
)

// HandleKind identifies a control drawn around the selected sticker.
type HandleKind int

const (
	HandleNone HandleKind = iota
	HandleDelete
	HandleRotate
	HandleResize
	HandleSwatch
)

func (k HandleKind) String() string {
	switch k {
	case HandleDelete:
		return "delete"
	case HandleRotate:
		return "rotate"
	case HandleResize:
		return "resize"
	case HandleSwatch:
		return "swatch"
	}
	return "none"
}

const (
	handleBase     = 22
	handleGapBase  = 1
	swatchSpacing  = 8
	swatchFraction = 0.8
)

// HandleSet holds the screen-space rectangles of the selection controls.
// Swatches are the recolor buttons below the sticker, one per colour.
type HandleSet struct {
	Frame    geom.Rect
	Delete   geom.Rect
	Rotate   geom.Rect
	Resize   geom.Rect
	Swatches []geom.Rect
}

// Handles lays out the controls for st under vp. swatches is the number of
// recolor buttons.
func Handles(st scene.Sticker, vp geom.Viewport, swatches int) HandleSet {
	side := BaseStickerSize * st.Scale * vp.Scale
	rect := geom.Square(vp.ToScreen(st.Position), side)
	inset := math.Min(44, math.Max(8, rect.Dx()*0.28))
	frame := rect.Inset(inset)

	k := geom.Clamp(1/vp.Scale, 0.6, 1.2)
	hs := handleBase * k
	gap := handleGapBase * k
	off := hs/2 + gap
	mid := frame.Center()

	h := HandleSet{
		Frame:  frame,
		Delete: geom.Square(geom.Pt(frame.Max.X+off, frame.Min.Y-off), hs),
		Rotate: geom.Square(geom.Pt(mid.X, frame.Min.Y-off), hs),
		Resize: geom.Square(geom.Pt(frame.Max.X+off, frame.Max.Y+off), hs),
	}
	if swatches > 0 {
		sw := hs * swatchFraction
		total := float64(swatches)*sw + float64(swatches-1)*swatchSpacing
		y := frame.Max.Y + hs + hs*0.9
		x := mid.X - total/2 + sw/2
		for i := 0; i < swatches; i++ {
			h.Swatches = append(h.Swatches, geom.Square(geom.Pt(x, y), sw))
			x += sw + swatchSpacing
		}
	}
	return h
}

// Hit reports which control contains the screen point p. For swatches the
// index is also returned.
func (h HandleSet) Hit(p geom.Point) (HandleKind, int) {
	switch {
	case h.Delete.Contains(p):
		return HandleDelete, 0
	case h.Rotate.Contains(p):
		return HandleRotate, 0
	case h.Resize.Contains(p):
		return HandleResize, 0
	}
	for i, r := range h.Swatches {
		if r.Contains(p) {
			return HandleSwatch, i
		}
	}
	return HandleNone, 0
}
