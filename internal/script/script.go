// Package script replays a TOML description of gestures onto a canvas
// controller so drawings can be produced without a window.
//
//	width = 800
//	height = 600
//	background = "lightyellow"
//
//	[[step]]
//	action = "stroke"
//	color = "tomato"
//	size = 24
//	tip = "crayon"
//	points = [[100, 100], [200, 160], [320, 120]]
//
//	[[step]]
//	action = "sticker"
//	sticker = "star"
//	points = [[400, 300]]
package script

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/example/kidspaint/internal/canvas"
	"github.com/example/kidspaint/internal/gamepad"
	"github.com/example/kidspaint/internal/geom"
	"github.com/example/kidspaint/internal/gesture"
	"github.com/example/kidspaint/internal/palette"
	"github.com/example/kidspaint/internal/scene"
)

// frame is the controller poll interval used for pad steps.
const frame = time.Second / 60

// Script is a decoded gesture file.
type Script struct {
	Width      float64 `toml:"width"`
	Height     float64 `toml:"height"`
	Background string  `toml:"background"`
	Steps      []Step  `toml:"step"`
}

// Step is one action. Fields that do not apply to the action are ignored;
// brush and sticker settings persist into later steps.
type Step struct {
	Action   string       `toml:"action"`
	Tool     string       `toml:"tool"`
	Color    string       `toml:"color"`
	Size     float64      `toml:"size"`
	Tip      string       `toml:"tip"`
	Sticker  string       `toml:"sticker"`
	Rotation float64      `toml:"rotation"`
	Snap     bool         `toml:"snap"`
	Points   [][2]float64 `toml:"points"`
	Zoom     float64      `toml:"zoom"`

	// Pad steps hold Buttons, Stick and Triggers for Frames controller
	// polls, then release everything.
	Buttons  []string   `toml:"buttons"`
	Stick    [2]float64 `toml:"stick"`
	Triggers [2]float64 `toml:"triggers"`
	Frames   int        `toml:"frames"`
}

// Parse decodes a script.
func Parse(r io.Reader) (*Script, error) {
	var s Script
	if _, err := toml.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode script: %w", err)
	}
	for i, st := range s.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return &s, nil
}

// Load reads and decodes the script at path.
func Load(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Options returns the controller options the script header asks for.
func (s *Script) Options() ([]canvas.Option, error) {
	var opts []canvas.Option
	if s.Width > 0 && s.Height > 0 {
		opts = append(opts, canvas.WithSize(s.Width, s.Height))
	}
	if s.Background != "" {
		c, err := palette.ParseColor(s.Background)
		if err != nil {
			return nil, fmt.Errorf("background: %w", err)
		}
		opts = append(opts, canvas.WithBackgroundColor(c))
	}
	return opts, nil
}

func (st Step) validate() error {
	need := 0
	switch strings.ToLower(st.Action) {
	case "stroke", "tap", "sticker":
		need = 1
	case "drag":
		need = 2
	case "pinch":
		if st.Zoom <= 0 {
			return fmt.Errorf("pinch needs a positive zoom")
		}
	case "pad":
		if st.Frames < 0 {
			return fmt.Errorf("frames must not be negative")
		}
		for _, b := range st.Buttons {
			if _, err := parseButton(b); err != nil {
				return err
			}
		}
	case "set", "undo", "redo", "clear", "delete", "reset":
	case "background", "recolor":
		if st.Color == "" {
			return fmt.Errorf("%s needs a color", st.Action)
		}
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	if len(st.Points) < need {
		return fmt.Errorf("%s needs at least %d point(s)", st.Action, need)
	}
	return nil
}

// Run applies every step to c in order.
func (s *Script) Run(c *canvas.Controller) error {
	clock := time.Unix(0, 0)
	for i, st := range s.Steps {
		if err := st.apply(c, &clock); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, st.Action, err)
		}
	}
	return nil
}

// configure pushes the step's brush and sticker settings into c.
func (st Step) configure(c *canvas.Controller, action string) error {
	if st.Tool != "" {
		t, err := gesture.ParseTool(st.Tool)
		if err != nil {
			return err
		}
		c.SetTool(t)
	}
	if st.Color != "" && action != "background" && action != "recolor" {
		col, err := palette.ParseColor(st.Color)
		if err != nil {
			return err
		}
		c.SetColor(col)
	}
	if st.Tip != "" {
		tip, err := scene.ParseTip(st.Tip)
		if err != nil {
			return err
		}
		c.SetBrushTip(tip)
	}
	if st.Sticker != "" {
		kind, err := scene.ParseStickerType(st.Sticker)
		if err != nil {
			return err
		}
		c.SetStickerType(kind)
	}
	if st.Size > 0 {
		if c.Config().Tool == gesture.ToolSticker {
			c.SetStickerSize(st.Size)
		} else {
			c.SetBrushSize(st.Size)
		}
	}
	if st.Rotation != 0 {
		c.SetStickerRotation(st.Rotation)
	}
	return nil
}

func (st Step) apply(c *canvas.Controller, clock *time.Time) error {
	action := strings.ToLower(st.Action)
	if action == "sticker" && st.Tool == "" {
		c.SetTool(gesture.ToolSticker)
	}
	if action == "stroke" && st.Tool == "" && c.Config().Tool != gesture.ToolEraser {
		c.SetTool(gesture.ToolBrush)
	}
	if err := st.configure(c, action); err != nil {
		return err
	}
	switch action {
	case "stroke", "drag":
		st.pointer(c)
	case "tap", "sticker":
		p := st.point(0)
		c.HandlePointerEvent(gesture.PointerEvent{Phase: gesture.Down, Pos: p, Snap: st.Snap})
		c.HandlePointerEvent(gesture.PointerEvent{Phase: gesture.Up, Pos: p, Snap: st.Snap})
	case "pinch":
		c.HandlePinchEvent(gesture.PinchEvent{Phase: gesture.PinchBegin, Magnification: 1})
		c.HandlePinchEvent(gesture.PinchEvent{Phase: gesture.PinchChange, Magnification: st.Zoom})
		c.HandlePinchEvent(gesture.PinchEvent{Phase: gesture.PinchEnd, Magnification: st.Zoom})
	case "pad":
		var held gamepad.Buttons
		for _, name := range st.Buttons {
			b, _ := parseButton(name)
			held = held.With(b)
		}
		frames := st.Frames
		if frames == 0 {
			frames = 1
		}
		for range frames {
			c.HandleControllerTick(gamepad.Event{
				Time:         *clock,
				Stick:        geom.Pt(st.Stick[0], st.Stick[1]),
				Buttons:      held,
				LeftTrigger:  st.Triggers[0],
				RightTrigger: st.Triggers[1],
			})
			*clock = clock.Add(frame)
		}
		c.HandleControllerTick(gamepad.Event{Time: *clock})
		*clock = clock.Add(frame)
	case "undo":
		c.Undo()
	case "redo":
		c.Redo()
	case "clear":
		c.ClearCanvas()
	case "delete":
		c.DeleteSelected()
	case "reset":
		c.ResetView()
	case "background":
		col, err := palette.ParseColor(st.Color)
		if err != nil {
			return err
		}
		c.SetBackgroundColor(col)
	case "recolor":
		col, err := palette.ParseColor(st.Color)
		if err != nil {
			return err
		}
		c.RecolorSelected(col)
	}
	return nil
}

// pointer sends a down, the moves and an up through the points.
func (st Step) pointer(c *canvas.Controller) {
	c.HandlePointerEvent(gesture.PointerEvent{Phase: gesture.Down, Pos: st.point(0), Snap: st.Snap})
	for i := 1; i < len(st.Points); i++ {
		c.HandlePointerEvent(gesture.PointerEvent{Phase: gesture.Move, Pos: st.point(i), Snap: st.Snap})
	}
	c.HandlePointerEvent(gesture.PointerEvent{Phase: gesture.Up, Pos: st.point(len(st.Points) - 1), Snap: st.Snap})
}

func (st Step) point(i int) geom.Point {
	return geom.Pt(st.Points[i][0], st.Points[i][1])
}

var buttonNames = map[string]gamepad.Button{
	"a":       gamepad.ButtonA,
	"b":       gamepad.ButtonB,
	"x":       gamepad.ButtonX,
	"y":       gamepad.ButtonY,
	"l3":      gamepad.ButtonL3,
	"lb":      gamepad.ButtonLeftShoulder,
	"rb":      gamepad.ButtonRightShoulder,
	"left":    gamepad.DpadLeft,
	"right":   gamepad.DpadRight,
	"up":      gamepad.DpadUp,
	"down":    gamepad.DpadDown,
	"menu":    gamepad.ButtonMenu,
	"options": gamepad.ButtonOptions,
}

func parseButton(s string) (gamepad.Button, error) {
	b, ok := buttonNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("unknown button %q", s)
	}
	return b, nil
}
