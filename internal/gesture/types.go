package gesture

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/google/uuid"

	"github.com/example/kidspaint/internal/geom"
	"github.com/example/kidspaint/internal/render"
	"github.com/example/kidspaint/internal/scene"
)

// Tool is the active drawing tool.
type Tool int

const (
	ToolBrush Tool = iota
	ToolEraser
	ToolSticker
	ToolPan
)

var toolNames = []string{"brush", "eraser", "sticker", "pan"}

// Tools lists the tools in toolbar order.
func Tools() []Tool { return []Tool{ToolBrush, ToolEraser, ToolSticker, ToolPan} }

func (t Tool) String() string {
	if t < 0 || int(t) >= len(toolNames) {
		return fmt.Sprintf("Tool(%d)", int(t))
	}
	return toolNames[t]
}

// ParseTool looks up a tool by name.
func ParseTool(s string) (Tool, error) {
	for i, n := range toolNames {
		if strings.EqualFold(n, strings.TrimSpace(s)) {
			return Tool(i), nil
		}
	}
	return ToolBrush, fmt.Errorf("unknown tool %q", s)
}

// State is the machine's current interaction.
type State int

const (
	Idle State = iota
	Drawing
	DraggingSticker
	ResizingSticker
	RotatingSticker
	Panning
	Pinching
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Drawing:
		return "drawing"
	case DraggingSticker:
		return "dragging"
	case ResizingSticker:
		return "resizing"
	case RotatingSticker:
		return "rotating"
	case Panning:
		return "panning"
	case Pinching:
		return "pinching"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Phase is the step of a pointer gesture.
type Phase int

const (
	Down Phase = iota
	Move
	Up
)

// PointerEvent is one step of a single-pointer gesture in screen space.
// Snap is the rotation-snap modifier.
type PointerEvent struct {
	Phase Phase
	Pos   geom.Point
	Snap  bool
}

// PinchPhase is the step of a pinch gesture.
type PinchPhase int

const (
	PinchBegin PinchPhase = iota
	PinchChange
	PinchEnd
)

// PinchEvent carries the cumulative magnification since the pinch began.
type PinchEvent struct {
	Phase         PinchPhase
	Magnification float64
}

// Config is the tool and brush configuration passed with every gesture.
type Config struct {
	Tool            Tool
	Color           color.RGBA
	BrushSize       float64
	Tip             scene.BrushTip
	StickerType     scene.StickerType
	StickerSize     float64
	StickerRotation float64
	// Swatches are the recolor choices shown under a selected sticker.
	Swatches []color.RGBA
}

// StickerScale converts the configured size to a sticker scale.
func (c Config) StickerScale() float64 { return c.StickerSize / render.BaseStickerSize }

// Canvas is the mutable surface the machine drives. The canvas controller
// implements it and owns the scene, viewport and history behind it.
type Canvas interface {
	Viewport() geom.Viewport
	SetViewport(geom.Viewport)
	Stickers() []scene.Sticker
	Sticker(id uuid.UUID) (scene.Sticker, bool)
	BackgroundColor() color.RGBA

	// CommitStroke adds a finished stroke as one undo step.
	CommitStroke(scene.Stroke)
	// PlaceSticker adds a sticker as one undo step.
	PlaceSticker(scene.Sticker)
	// UpdateSticker replaces a sticker without touching history.
	UpdateSticker(scene.Sticker)
	// CommitStickerTransform records a change already shown via
	// UpdateSticker, or applies and records it when it was not.
	CommitStickerTransform(before, after scene.Sticker)
	// DeleteSticker removes a sticker as one undo step.
	DeleteSticker(id uuid.UUID)
}
