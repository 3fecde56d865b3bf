package appstate

import (
	"image"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/kidspaint/internal/geom"
	"github.com/example/kidspaint/internal/gesture"
)

// wheelStep is the magnification applied per wheel notch.
const wheelStep = 1.1

// pointer turns shiny mouse events over the canvas area into gesture
// events in canvas-area coordinates. A drag that leaves the area keeps
// reporting until the button comes up.
type pointer struct {
	down bool
}

// hover reports where the brush preview belongs in canvas-area
// coordinates. It is hidden once the mouse leaves the area, unless a drag
// is still running.
func (p *pointer) hover(e mouse.Event, area image.Rectangle) (geom.Point, bool) {
	if !p.down && !image.Pt(int(e.X), int(e.Y)).In(area) {
		return geom.Point{}, false
	}
	return geom.Pt(float64(e.X)-float64(area.Min.X), float64(e.Y)-float64(area.Min.Y)), true
}

func (p *pointer) translate(e mouse.Event, area image.Rectangle) (gesture.PointerEvent, bool) {
	pos := geom.Pt(float64(e.X)-float64(area.Min.X), float64(e.Y)-float64(area.Min.Y))
	ev := gesture.PointerEvent{Pos: pos, Snap: e.Modifiers&key.ModShift != 0}
	switch {
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress:
		if p.down || !image.Pt(int(e.X), int(e.Y)).In(area) {
			return ev, false
		}
		p.down = true
		ev.Phase = gesture.Down
	case e.Direction == mouse.DirNone && p.down:
		ev.Phase = gesture.Move
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirRelease && p.down:
		p.down = false
		ev.Phase = gesture.Up
	default:
		return ev, false
	}
	return ev, true
}

// wheelMagnification maps a wheel notch to a pinch magnification.
func wheelMagnification(e mouse.Event) (float64, bool) {
	if e.Direction != mouse.DirStep {
		return 0, false
	}
	switch e.Button {
	case mouse.ButtonWheelUp:
		return wheelStep, true
	case mouse.ButtonWheelDown:
		return 1 / wheelStep, true
	}
	return 0, false
}
