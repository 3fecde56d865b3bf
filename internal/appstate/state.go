package appstate

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/kidspaint/internal/canvas"
	"github.com/example/kidspaint/internal/clipboard"
	"github.com/example/kidspaint/internal/gamepad"
	"github.com/example/kidspaint/internal/gesture"
	"github.com/example/kidspaint/internal/notify"
	"github.com/example/kidspaint/internal/scene"
)

const messageTime = 2 * time.Second

// AppState holds the window configuration and the controller it drives.
type AppState struct {
	Output     string
	SaveDir    string
	ExportSize image.Point

	ctrlOpts []canvas.Option
	ctrl     *canvas.Controller
	notifier *notify.Notifier

	repaintMu sync.Mutex
	repaint   func()

	onClose   func()
	closeOnce sync.Once
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithCanvasOptions configures the controller the window creates.
func WithCanvasOptions(opts ...canvas.Option) Option {
	return func(a *AppState) { a.ctrlOpts = append(a.ctrlOpts, opts...) }
}

// WithOutput sets the file ctrl+s writes. When empty a timestamped name
// in the save directory is used.
func WithOutput(out string) Option { return func(a *AppState) { a.Output = out } }

// WithSaveDir sets the directory for timestamped exports.
func WithSaveDir(dir string) Option { return func(a *AppState) { a.SaveDir = dir } }

// WithExportSize sets the pixel size of saved and copied images. A zero
// size exports at the canvas size.
func WithExportSize(w, h int) Option {
	return func(a *AppState) { a.ExportSize = image.Pt(w, h) }
}

// WithNotifier reports exports and copies as desktop notifications.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.notifier = n } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState and its controller.
func New(opts ...Option) *AppState {
	a := &AppState{}
	for _, o := range opts {
		o(a)
	}
	a.ctrl = canvas.New(append(a.ctrlOpts, canvas.WithOnChange(a.requestPaint))...)
	return a
}

// Controller returns the canvas the window edits.
func (a *AppState) Controller() *canvas.Controller { return a.ctrl }

func (a *AppState) requestPaint() {
	a.repaintMu.Lock()
	fn := a.repaint
	a.repaintMu.Unlock()
	if fn != nil {
		fn()
	}
}

func (a *AppState) setRepaint(fn func()) {
	a.repaintMu.Lock()
	a.repaint = fn
	a.repaintMu.Unlock()
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		a.setRepaint(nil)
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// tickEvent is posted by the keypad ticker goroutine.
type tickEvent struct{ at time.Time }

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run() { driver.Main(a.Main) }

// exportSize resolves the configured export size against the canvas.
func (a *AppState) exportSize() image.Point {
	if a.ExportSize.X > 0 && a.ExportSize.Y > 0 {
		return a.ExportSize
	}
	sz := a.ctrl.Size()
	return image.Pt(int(sz.X), int(sz.Y))
}

// Export renders the drawing and writes it as PNG. It returns the path
// written.
func (a *AppState) Export() (string, error) {
	path := a.Output
	if path == "" {
		dir := a.SaveDir
		if dir == "" {
			dir = "."
		}
		path = filepath.Join(dir, fmt.Sprintf("kidspaint-%s.png", time.Now().Format("20060102-150405")))
	}
	sz := a.exportSize()
	img := a.ctrl.ExportRaster(sz.X, sz.Y)
	if err := WritePNG(path, img); err != nil {
		return "", err
	}
	a.notifier.Export(path)
	return path, nil
}

// WritePNG encodes img as a PNG file at path, creating missing parent
// directories. A failed close is reported as the write error.
func WritePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		if cerr := out.Close(); cerr != nil {
			log.Printf("save: closing file: %v", cerr)
		}
		return err
	}
	return out.Close()
}

// Copy places the exported drawing on the clipboard.
func (a *AppState) Copy() error {
	sz := a.exportSize()
	img := a.ctrl.ExportRaster(sz.X, sz.Y)
	if err := clipboard.WriteImage(img); err != nil {
		return err
	}
	a.notifier.Copy("", img)
	return nil
}

// PasteBackground uses the clipboard image as the canvas background.
func (a *AppState) PasteBackground() error {
	img, err := clipboard.ReadImage()
	if err != nil {
		return err
	}
	a.ctrl.SetBackgroundImage(img)
	return nil
}

// statusLine summarises the current tool settings and history.
func statusLine(s canvas.Snapshot) string {
	var parts []string
	switch s.Config.Tool {
	case gesture.ToolBrush, gesture.ToolEraser:
		parts = append(parts, fmt.Sprintf("%s %s %.0f", s.Config.Tool, s.Config.Tip, s.Config.BrushSize))
	case gesture.ToolSticker:
		parts = append(parts, fmt.Sprintf("sticker %s %.0f", s.Config.StickerType, s.Config.StickerSize))
	default:
		parts = append(parts, s.Config.Tool.String())
	}
	parts = append(parts, fmt.Sprintf("zoom %.0f%%", s.Viewport.Scale*100))
	if s.UndoLabel != "" {
		parts = append(parts, "^Z: undo "+strings.ToLower(s.UndoLabel))
	}
	if s.RedoLabel != "" {
		parts = append(parts, "^Y: redo "+strings.ToLower(s.RedoLabel))
	}
	return strings.Join(parts, "  |  ")
}

// toolbar builds the buttons for the current state, already laid out.
// Buttons that need the window's feedback go through act.
func (a *AppState) toolbar(s canvas.Snapshot, act func(string)) []Button {
	c := a.ctrl
	tool := func(label string, t gesture.Tool) Button {
		return &ActionButton{label: label, selected: s.Config.Tool == t, onActivate: func() { c.SetTool(t) }}
	}
	buttons := []Button{
		tool("B:Brush", gesture.ToolBrush),
		tool("E:Eraser", gesture.ToolEraser),
		tool("S:Sticker", gesture.ToolSticker),
		tool("P:Pan", gesture.ToolPan),
		&ActionButton{label: "T:" + s.Config.Tip.String(), onActivate: func() { c.CycleTip(1) }},
		&ActionButton{label: "K:" + s.Config.StickerType.String(), onActivate: func() { a.cycleSticker(1) }},
		&ActionButton{label: "[ smaller", onActivate: func() { c.NudgeSize(-1) }},
		&ActionButton{label: "] bigger", onActivate: func() { c.NudgeSize(1) }},
	}
	selected := s.Config.Color
	if s.Selected != nil && s.Config.Tool == gesture.ToolSticker {
		selected = s.Selected.Color
	}
	for _, col := range s.Config.Swatches {
		buttons = append(buttons, &SwatchButton{color: col, selected: col == selected, onActivate: func() {
			c.SetColor(col)
			c.RecolorSelected(col)
		}})
	}
	buttons = append(buttons,
		&ActionButton{label: "^Z:Undo", onActivate: func() { act("undo") }},
		&ActionButton{label: "^Y:Redo", onActivate: func() { act("redo") }},
		&ActionButton{label: "X:Clear", onActivate: func() { act("clear") }},
		&ActionButton{label: "0:Reset view", onActivate: c.ResetView},
		&ActionButton{label: "^S:Save", onActivate: func() { act("save") }},
		&ActionButton{label: "^C:Copy", onActivate: func() { act("copy") }},
	)
	layoutToolbar(buttons)
	return buttons
}

func (a *AppState) cycleSticker(step int) {
	types := scene.StickerTypes()
	cur := int(a.ctrl.Config().StickerType)
	a.ctrl.SetStickerType(types[((cur+step)%len(types)+len(types))%len(types)])
}

// Main runs the window on s until it is closed.
func (a *AppState) Main(s screen.Screen) {
	sz := a.ctrl.Size()
	width := int(sz.X) + toolbarWidth
	height := int(sz.Y) + statusHeight
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: "KidsPaint"})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()
	defer a.notifyClose()

	pending := false
	a.setRepaint(func() {
		if !pending {
			pending = true
			w.Send(paint.Event{})
		}
	})

	done := make(chan struct{})
	defer close(done)
	go func() {
		t := time.NewTicker(gamepad.TickInterval)
		defer t.Stop()
		for {
			select {
			case now := <-t.C:
				w.Send(tickEvent{at: now})
			case <-done:
				return
			}
		}
	}()

	pad := newKeypad()
	var ptr pointer
	var message string
	var messageUntil time.Time
	var confirmAction string
	hover, pressed := -1, -1
	var buttons []Button

	show := func(msg string) {
		message = msg
		messageUntil = time.Now().Add(messageTime)
		log.Print(msg)
		a.requestPaint()
	}
	// confirm runs fn on the second consecutive request.
	confirm := func(prompt string, fn func()) {
		if confirmAction == prompt {
			confirmAction = ""
			fn()
			return
		}
		confirmAction = prompt
		show(prompt)
	}

	actions := map[string]func(){
		"save": func() {
			path, err := a.Export()
			if err != nil {
				log.Printf("save: %v", err)
				show("could not save")
				return
			}
			show(fmt.Sprintf("saved %s", filepath.Base(path)))
		},
		"copy": func() {
			if err := a.Copy(); err != nil {
				log.Printf("copy: %v", err)
				return
			}
			show("copied to clipboard")
		},
		"paste": func() {
			if err := a.PasteBackground(); err != nil {
				log.Printf("paste: %v", err)
				return
			}
			show("pasted background")
		},
		"undo":   func() { a.ctrl.Undo() },
		"redo":   func() { a.ctrl.Redo() },
		"delete": func() { a.ctrl.DeleteSelected() },
		"clear":  func() { confirm("press Clear or x again to wipe the page", a.ctrl.ClearCanvas) },
	}
	runAction := func(name string) {
		if name != "clear" {
			confirmAction = ""
		}
		if fn, ok := actions[name]; ok {
			fn()
		}
	}
	keyboardAction := map[KeyShortcut]string{}
	register := func(name string, keys KeyboardShortcuts) {
		for _, sc := range keys.KeyboardShortcuts() {
			keyboardAction[sc] = name
		}
	}
	register("save", shortcutList{{Rune: 's', Modifiers: key.ModControl}})
	register("copy", shortcutList{{Rune: 'c', Modifiers: key.ModControl}})
	register("paste", shortcutList{{Rune: 'v', Modifiers: key.ModControl}})
	register("undo", shortcutList{{Rune: 'z', Modifiers: key.ModControl}})
	register("redo", shortcutList{
		{Rune: 'y', Modifiers: key.ModControl},
		{Rune: 'z', Modifiers: key.ModControl | key.ModShift},
	})
	register("delete", shortcutList{
		{Code: key.CodeDeleteForward},
		{Code: key.CodeDeleteBackspace},
		{Rune: '\b'},
		{Rune: 0x7f},
	})
	register("clear", shortcutList{{Rune: 'x'}})

	canvasBuf := image.NewRGBA(image.Rectangle{})
	for {
		e := w.NextEvent()
		switch e := e.(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
			if e.Crosses(lifecycle.StageFocused) == lifecycle.CrossOff {
				pad.Release()
				a.ctrl.ClearHover()
			}
		case size.Event:
			width, height = e.WidthPx, e.HeightPx
			a.requestPaint()
		case tickEvent:
			if pad.Active() {
				a.ctrl.HandleControllerTick(pad.Poll(e.at))
			}
		case paint.Event:
			pending = false
			snap := a.ctrl.Render()
			buttons = a.toolbar(snap, runAction)
			area := canvasArea(width, height)
			if canvasBuf.Bounds().Size() != area.Size() {
				canvasBuf = image.NewRGBA(image.Rectangle{Max: area.Size()})
			}
			a.ctrl.Paint(canvasBuf)
			b, err := s.NewBuffer(image.Pt(width, height))
			if err != nil {
				log.Printf("new buffer: %v", err)
				continue
			}
			drawFrame(b.RGBA(), frame{
				width:        width,
				height:       height,
				canvas:       canvasBuf,
				buttons:      buttons,
				hover:        hover,
				pressed:      pressed,
				status:       statusLine(snap),
				message:      message,
				messageUntil: messageUntil,
			})
			w.Upload(image.Point{}, b, b.Bounds())
			b.Release()
			w.Publish()
		case mouse.Event:
			p := image.Pt(int(e.X), int(e.Y))
			area := canvasArea(width, height)
			if m, ok := wheelMagnification(e); ok && p.In(area) {
				a.ctrl.HandlePinchEvent(gesture.PinchEvent{Phase: gesture.PinchBegin})
				a.ctrl.HandlePinchEvent(gesture.PinchEvent{Phase: gesture.PinchChange, Magnification: m})
				a.ctrl.HandlePinchEvent(gesture.PinchEvent{Phase: gesture.PinchEnd})
				continue
			}
			if at, ok := ptr.hover(e, area); ok {
				a.ctrl.SetHover(at)
			} else {
				a.ctrl.ClearHover()
			}
			if ev, ok := ptr.translate(e, area); ok {
				confirmAction = ""
				a.ctrl.HandlePointerEvent(ev)
				continue
			}
			if p.X < toolbarWidth {
				idx := buttonAt(buttons, p)
				switch {
				case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress:
					pressed = idx
				case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirRelease:
					if idx >= 0 && idx == pressed {
						buttons[idx].Activate()
					}
					pressed = -1
				}
				if idx != hover || e.Direction != mouse.DirNone {
					hover = idx
					a.requestPaint()
				}
			} else if hover != -1 {
				hover = -1
				a.requestPaint()
			}
		case key.Event:
			if pad.Key(e) {
				continue
			}
			if e.Direction != key.DirPress {
				continue
			}
			ks := KeyShortcut{Rune: unicode.ToLower(e.Rune), Code: e.Code, Modifiers: e.Modifiers}
			if ks.Rune > 0 {
				ks.Code = 0
			} else {
				ks.Rune = 0
			}
			if name, ok := keyboardAction[ks]; ok {
				runAction(name)
				continue
			}
			confirmAction = ""
			switch e.Rune {
			case 'b', 'B':
				a.ctrl.SetTool(gesture.ToolBrush)
			case 'e', 'E':
				a.ctrl.SetTool(gesture.ToolEraser)
			case 's', 'S':
				a.ctrl.SetTool(gesture.ToolSticker)
			case 'p', 'P':
				a.ctrl.SetTool(gesture.ToolPan)
			case '[':
				a.ctrl.NudgeSize(-1)
			case ']':
				a.ctrl.NudgeSize(1)
			case 't':
				a.ctrl.CycleTip(1)
			case 'T':
				a.ctrl.CycleTip(-1)
			case 'c':
				a.ctrl.CycleColor(1)
			case 'C':
				a.ctrl.CycleColor(-1)
			case 'k':
				a.cycleSticker(1)
			case 'K':
				a.cycleSticker(-1)
			case 'r', 'R':
				a.ctrl.SetStickerRotation(a.ctrl.Config().StickerRotation + 15)
			case '0':
				a.ctrl.ResetView()
			case '+', '=':
				a.ctrl.Zoom(0.25)
			case '-':
				a.ctrl.Zoom(-0.2)
			case 'q', 'Q':
				return
			}
		}
	}
}
