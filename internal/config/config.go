package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/example/kidspaint/internal/palette"
)

// Notify holds notification settings.
type Notify struct {
	Export bool
	Copy   bool
}

// Config holds the application configuration. Zero values mean "not set";
// callers fall back to their own defaults.
type Config struct {
	Palette      string
	BrushSize    float64
	BrushTip     string
	Sticker      string
	StickerSize  float64
	Background   string
	CanvasWidth  int
	CanvasHeight int
	ExportWidth  int
	ExportHeight int
	SaveDir      string
	Notify       Notify
	Palettes     map[string]*palette.Palette
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Notify: Notify{
			Export: false,
			Copy:   false,
		},
		Palettes: make(map[string]*palette.Palette),
	}
}

// ResolvePalette returns the palette called name, preferring palettes
// defined in the config over the loader's search path.
func (c *Config) ResolvePalette(name string, l *palette.Loader) (*palette.Palette, error) {
	if p, ok := c.Palettes[name]; ok {
		return p, nil
	}
	return l.Load(name)
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	str := func(key, v string) {
		if v != "" {
			fmt.Fprintf(&sb, "%s = %s\n", key, v)
		}
	}
	num := func(key string, v float64) {
		if v != 0 {
			fmt.Fprintf(&sb, "%s = %g\n", key, v)
		}
	}
	dim := func(key string, v int) {
		if v != 0 {
			fmt.Fprintf(&sb, "%s = %d\n", key, v)
		}
	}
	str("palette", c.Palette)
	num("brush_size", c.BrushSize)
	str("brush_tip", c.BrushTip)
	str("sticker", c.Sticker)
	num("sticker_size", c.StickerSize)
	str("background", c.Background)
	dim("canvas_width", c.CanvasWidth)
	dim("canvas_height", c.CanvasHeight)
	dim("export_width", c.ExportWidth)
	dim("export_height", c.ExportHeight)
	str("save_dir", c.SaveDir)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	// Sort keys for deterministic output
	var names []string
	for name := range c.Palettes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(&sb, "[palette.%s]\n", name)
		_ = palette.Write(&sb, c.Palettes[name])
		sb.WriteString("\n")
	}

	return sb.String()
}
