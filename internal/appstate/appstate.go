// Package appstate hosts a canvas controller in a shiny window: it draws
// the toolbar and status bar around the live canvas and feeds mouse,
// keyboard and virtual-controller input to the controller.
package appstate

import (
	"image"
	"image/color"
	"image/draw"
	"log"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/mobile/event/key"
)

const (
	titleHeight  = 24
	statusHeight = 24
	buttonHeight = 26
	swatchSize   = 22
	swatchGap    = 4
)

var toolbarWidth = 112

var (
	barColor      = color.RGBA{236, 236, 240, 255}
	buttonColor   = color.RGBA{250, 250, 252, 255}
	hoverColor    = color.RGBA{222, 228, 240, 255}
	selectedColor = color.RGBA{190, 214, 255, 255}
	borderColor   = color.RGBA{160, 160, 170, 255}
)

var messageFace font.Face

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	messageFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: 32, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
}

// KeyShortcut identifies a key press by rune or code plus modifiers.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// KeyboardShortcuts returns the shortcuts associated with an action.
type KeyboardShortcuts interface {
	KeyboardShortcuts() []KeyShortcut
}

type shortcutList []KeyShortcut

func (s shortcutList) KeyboardShortcuts() []KeyShortcut { return []KeyShortcut(s) }

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

// Button is a clickable toolbar element.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
}

// ActionButton is a labelled button. Selected buttons draw as pressed.
type ActionButton struct {
	label      string
	selected   bool
	rect       image.Rectangle
	onActivate func()
}

func (b *ActionButton) Draw(dst *image.RGBA, state ButtonState) {
	c := buttonColor
	switch {
	case b.selected || state == StatePressed:
		c = selectedColor
	case state == StateHover:
		c = hoverColor
	}
	draw.Draw(dst, b.rect, &image.Uniform{c}, image.Point{}, draw.Src)
	drawRect(dst, b.rect, borderColor, 1)
	d := &font.Drawer{Dst: dst, Src: image.Black, Face: basicfont.Face7x13,
		Dot: fixed.P(b.rect.Min.X+6, b.rect.Min.Y+(b.rect.Dy()+9)/2)}
	d.DrawString(b.label)
}

func (b *ActionButton) Rect() image.Rectangle     { return b.rect }
func (b *ActionButton) SetRect(r image.Rectangle) { b.rect = r }

func (b *ActionButton) Activate() {
	if b.onActivate != nil {
		b.onActivate()
	}
}

// SwatchButton picks a palette colour.
type SwatchButton struct {
	color      color.RGBA
	selected   bool
	rect       image.Rectangle
	onActivate func()
}

func (b *SwatchButton) Draw(dst *image.RGBA, state ButtonState) {
	draw.Draw(dst, b.rect, &image.Uniform{b.color}, image.Point{}, draw.Src)
	switch {
	case b.selected:
		drawRect(dst, b.rect, color.Black, 3)
	case state == StateHover:
		drawRect(dst, b.rect, borderColor, 2)
	default:
		drawRect(dst, b.rect, borderColor, 1)
	}
}

func (b *SwatchButton) Rect() image.Rectangle     { return b.rect }
func (b *SwatchButton) SetRect(r image.Rectangle) { b.rect = r }

func (b *SwatchButton) Activate() {
	if b.onActivate != nil {
		b.onActivate()
	}
}

// layoutToolbar stacks labelled buttons in one column and packs swatches
// into rows beneath the button that precedes them.
func layoutToolbar(buttons []Button) {
	y := titleHeight + 4
	x := 4
	inSwatches := false
	for _, b := range buttons {
		if _, ok := b.(*SwatchButton); ok {
			if !inSwatches || x+swatchSize > toolbarWidth-4 {
				if inSwatches {
					y += swatchSize + swatchGap
				}
				x = 4
			}
			b.SetRect(image.Rect(x, y, x+swatchSize, y+swatchSize))
			x += swatchSize + swatchGap
			inSwatches = true
			continue
		}
		if inSwatches {
			y += swatchSize + swatchGap
			inSwatches = false
		}
		b.SetRect(image.Rect(4, y, toolbarWidth-4, y+buttonHeight))
		y += buttonHeight + 2
	}
}

// buttonAt returns the index of the button under p, or -1.
func buttonAt(buttons []Button, p image.Point) int {
	for i, b := range buttons {
		if p.In(b.Rect()) {
			return i
		}
	}
	return -1
}

// canvasArea is the part of the window the drawing occupies.
func canvasArea(width, height int) image.Rectangle {
	return image.Rect(toolbarWidth, 0, max(toolbarWidth, width), max(0, height-statusHeight))
}

type frame struct {
	width, height int
	canvas        *image.RGBA
	buttons       []Button
	hover         int
	pressed       int
	status        string
	message       string
	messageUntil  time.Time
}

// drawFrame composes one window image.
func drawFrame(dst *image.RGBA, f frame) {
	area := canvasArea(f.width, f.height)
	if f.canvas != nil {
		draw.Draw(dst, area, f.canvas, image.Point{}, draw.Src)
	}

	bar := image.Rect(0, 0, toolbarWidth, f.height)
	draw.Draw(dst, bar, &image.Uniform{barColor}, image.Point{}, draw.Src)
	title := &font.Drawer{Dst: dst, Src: image.Black, Face: basicfont.Face7x13, Dot: fixed.P(6, 16)}
	title.DrawString("KidsPaint")
	for i, b := range f.buttons {
		state := StateDefault
		switch i {
		case f.pressed:
			state = StatePressed
		case f.hover:
			state = StateHover
		}
		b.Draw(dst, state)
	}

	status := image.Rect(toolbarWidth, f.height-statusHeight, f.width, f.height)
	draw.Draw(dst, status, &image.Uniform{barColor}, image.Point{}, draw.Src)
	d := &font.Drawer{Dst: dst, Src: image.Black, Face: basicfont.Face7x13,
		Dot: fixed.P(status.Min.X+6, status.Min.Y+16)}
	d.DrawString(f.status)

	if f.message != "" && time.Now().Before(f.messageUntil) {
		drawMessage(dst, area, f.message)
	}
}

func drawMessage(dst *image.RGBA, area image.Rectangle, msg string) {
	d := &font.Drawer{Dst: dst, Src: image.Black, Face: messageFace}
	w := d.MeasureString(msg).Ceil()
	ascent := messageFace.Metrics().Ascent.Ceil()
	descent := messageFace.Metrics().Descent.Ceil()
	c := area.Min.Add(area.Size().Div(2))
	px := c.X - w/2
	py := c.Y + (ascent-descent)/2
	rect := image.Rect(px-12, py-ascent-8, px+w+12, py+descent+8)
	draw.Draw(dst, rect, &image.Uniform{color.RGBA{255, 255, 255, 230}}, image.Point{}, draw.Over)
	drawRect(dst, rect, color.Black, 2)
	d.Dot = fixed.P(px, py)
	d.DrawString(msg)
}

func drawRect(img *image.RGBA, rect image.Rectangle, col color.Color, thick int) {
	u := &image.Uniform{col}
	draw.Draw(img, image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+thick), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(rect.Min.X, rect.Max.Y-thick, rect.Max.X, rect.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+thick, rect.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(rect.Max.X-thick, rect.Min.Y, rect.Max.X, rect.Max.Y), u, image.Point{}, draw.Src)
}
