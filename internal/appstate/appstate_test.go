package appstate

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/kidspaint/internal/canvas"
	"github.com/example/kidspaint/internal/gamepad"
	"github.com/example/kidspaint/internal/geom"
	"github.com/example/kidspaint/internal/gesture"
)

func TestKeypadPoll(t *testing.T) {
	k := newKeypad()
	if k.Active() {
		t.Fatal("keypad active before use")
	}
	if k.Key(key.Event{Rune: 'a', Direction: key.DirPress}) {
		t.Fatal("letter keys are not keypad keys")
	}
	k.Key(key.Event{Code: key.CodeRightArrow, Direction: key.DirPress})
	k.Key(key.Event{Code: key.CodeUpArrow, Direction: key.DirPress})
	k.Key(key.Event{Code: key.CodeSpacebar, Direction: key.DirPress})
	now := time.Unix(10, 0)
	ev := k.Poll(now)
	if !k.Active() {
		t.Fatal("keypad not active after use")
	}
	if ev.Stick != geom.Pt(1, 1) || !ev.Buttons.Has(gamepad.ButtonA) || !ev.Time.Equal(now) {
		t.Fatalf("unexpected poll %+v", ev)
	}
	k.Key(key.Event{Code: key.CodeSpacebar, Direction: key.DirRelease})
	k.Key(key.Event{Code: key.CodeLeftArrow, Direction: key.DirPress})
	ev = k.Poll(now)
	if ev.Stick != geom.Pt(0, 1) || ev.Buttons.Has(gamepad.ButtonA) {
		t.Fatalf("unexpected poll %+v", ev)
	}
	k.Release()
	if ev := k.Poll(now); ev.Stick != (geom.Point{}) {
		t.Fatalf("release left keys held: %+v", ev)
	}
}

func TestPointerTranslate(t *testing.T) {
	area := image.Rect(100, 0, 500, 300)
	var p pointer

	if _, ok := p.translate(mouse.Event{X: 50, Y: 50, Button: mouse.ButtonLeft, Direction: mouse.DirPress}, area); ok {
		t.Fatal("press outside the canvas must not start a gesture")
	}
	if _, ok := p.translate(mouse.Event{X: 150, Y: 50}, area); ok {
		t.Fatal("hover must not produce events")
	}
	ev, ok := p.translate(mouse.Event{X: 150, Y: 50, Button: mouse.ButtonLeft, Direction: mouse.DirPress, Modifiers: key.ModShift}, area)
	if !ok || ev.Phase != gesture.Down || ev.Pos != geom.Pt(50, 50) || !ev.Snap {
		t.Fatalf("unexpected down %+v %v", ev, ok)
	}
	ev, ok = p.translate(mouse.Event{X: 90, Y: 60}, area)
	if !ok || ev.Phase != gesture.Move || ev.Pos != geom.Pt(-10, 60) {
		t.Fatalf("drags keep reporting outside the area: %+v %v", ev, ok)
	}
	ev, ok = p.translate(mouse.Event{X: 120, Y: 70, Button: mouse.ButtonLeft, Direction: mouse.DirRelease}, area)
	if !ok || ev.Phase != gesture.Up {
		t.Fatalf("unexpected up %+v %v", ev, ok)
	}
	if _, ok := p.translate(mouse.Event{X: 120, Y: 70, Button: mouse.ButtonLeft, Direction: mouse.DirRelease}, area); ok {
		t.Fatal("second release must be ignored")
	}
}

func TestPointerHover(t *testing.T) {
	area := image.Rect(100, 0, 500, 300)
	var p pointer
	if at, ok := p.hover(mouse.Event{X: 150, Y: 40}, area); !ok || at != geom.Pt(50, 40) {
		t.Fatalf("hover inside = %v %v", at, ok)
	}
	if _, ok := p.hover(mouse.Event{X: 50, Y: 40}, area); ok {
		t.Fatal("hover over the toolbar must hide the preview")
	}
	p.translate(mouse.Event{X: 150, Y: 40, Button: mouse.ButtonLeft, Direction: mouse.DirPress}, area)
	if at, ok := p.hover(mouse.Event{X: 90, Y: 40}, area); !ok || at != geom.Pt(-10, 40) {
		t.Fatalf("drag outside = %v %v", at, ok)
	}
}

func TestWheelMagnification(t *testing.T) {
	if m, ok := wheelMagnification(mouse.Event{Button: mouse.ButtonWheelUp, Direction: mouse.DirStep}); !ok || m <= 1 {
		t.Fatalf("wheel up = %v %v", m, ok)
	}
	if m, ok := wheelMagnification(mouse.Event{Button: mouse.ButtonWheelDown, Direction: mouse.DirStep}); !ok || m >= 1 {
		t.Fatalf("wheel down = %v %v", m, ok)
	}
	if _, ok := wheelMagnification(mouse.Event{Button: mouse.ButtonLeft, Direction: mouse.DirPress}); ok {
		t.Fatal("clicks are not wheel steps")
	}
}

func TestToolbarLayoutAndActivation(t *testing.T) {
	a := New(WithCanvasOptions(canvas.WithSize(200, 100)))
	var acted []string
	buttons := a.toolbar(a.ctrl.Render(), func(name string) { acted = append(acted, name) })

	for i, b := range buttons {
		r := b.Rect()
		if r.Empty() || r.Min.X < 0 || r.Max.X > toolbarWidth {
			t.Fatalf("button %d has bad rect %v", i, r)
		}
		for j := i + 1; j < len(buttons); j++ {
			if r.Overlaps(buttons[j].Rect()) {
				t.Fatalf("buttons %d and %d overlap: %v %v", i, j, r, buttons[j].Rect())
			}
		}
	}

	idx := buttonAt(buttons, buttons[2].Rect().Min)
	if idx != 2 {
		t.Fatalf("buttonAt = %d", idx)
	}
	buttons[idx].Activate()
	if a.ctrl.Config().Tool != gesture.ToolSticker {
		t.Fatalf("sticker button selected %v", a.ctrl.Config().Tool)
	}

	var swatch *SwatchButton
	for _, b := range buttons {
		if s, ok := b.(*SwatchButton); ok && s.color != a.ctrl.Config().Color {
			swatch = s
			break
		}
	}
	if swatch == nil {
		t.Fatal("no swatch buttons")
	}
	swatch.Activate()
	if a.ctrl.Config().Color != swatch.color {
		t.Fatalf("swatch did not set color")
	}

	for _, b := range buttons {
		if ab, ok := b.(*ActionButton); ok && ab.label == "X:Clear" {
			ab.Activate()
		}
	}
	if len(acted) != 1 || acted[0] != "clear" {
		t.Fatalf("acted = %v", acted)
	}
	if buttonAt(buttons, image.Pt(toolbarWidth+10, 10)) != -1 {
		t.Fatal("expected miss outside the toolbar")
	}
}

func TestStatusLine(t *testing.T) {
	c := canvas.New()
	c.HandlePointerEvent(gesture.PointerEvent{Phase: gesture.Down, Pos: geom.Pt(1, 1)})
	c.HandlePointerEvent(gesture.PointerEvent{Phase: gesture.Up, Pos: geom.Pt(9, 9)})
	got := statusLine(c.Render())
	for _, want := range []string{"brush round 18", "zoom 100%", "undo stroke"} {
		if !strings.Contains(got, want) {
			t.Fatalf("status %q missing %q", got, want)
		}
	}
}

func TestExportWritesPNG(t *testing.T) {
	dir := t.TempDir()
	a := New(
		WithCanvasOptions(canvas.WithSize(40, 30), canvas.WithBackgroundColor(color.RGBA{0, 0, 255, 255})),
		WithSaveDir(filepath.Join(dir, "art")),
		WithExportSize(80, 60),
	)
	path, err := a.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(path), "kidspaint-") {
		t.Fatalf("unexpected name %s", path)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Width != 80 || cfg.Height != 60 {
		t.Fatalf("exported %dx%d", cfg.Width, cfg.Height)
	}
}

func TestWritePNGCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a", "b", "pic.png")
	if err := WritePNG(path, image.NewRGBA(image.Rect(0, 0, 3, 2))); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("stat: %v", err)
	}
	if err := WritePNG(dir, image.NewRGBA(image.Rect(0, 0, 1, 1))); err == nil {
		t.Fatal("expected an error writing over a directory")
	}
}

func TestDrawFrameComposesCanvas(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, toolbarWidth+50, 60+statusHeight))
	buf := image.NewRGBA(image.Rect(0, 0, 50, 60))
	red := color.RGBA{255, 0, 0, 255}
	for i := range buf.Pix {
		buf.Pix[i] = []uint8{255, 0, 0, 255}[i%4]
	}
	drawFrame(dst, frame{width: dst.Bounds().Dx(), height: dst.Bounds().Dy(), canvas: buf, hover: -1, pressed: -1})
	if got := dst.RGBAAt(toolbarWidth+25, 30); got != red {
		t.Fatalf("canvas pixel %v", got)
	}
	if got := dst.RGBAAt(toolbarWidth/2, dst.Bounds().Dy()-2); got != barColor {
		t.Fatalf("toolbar pixel %v", got)
	}
}
