package config

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/kidspaint/internal/palette"
)

func TestParse(t *testing.T) {
	input := `
palette = sunset
brush_size = 24
brush_tip = crayon
sticker = heart
sticker_size = 128
background = #FFF8E1
canvas_width = 800
canvas_height = 600
save_dir = /tmp/drawings

[notify]
export = true
copy = false

[palette.sunset]
Name: Sunset
Red: #FF3B30
Gold = gold
`
	r := strings.NewReader(input)
	cfg, err := Parse(r)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Palette != "sunset" {
		t.Errorf("Expected palette 'sunset', got '%s'", cfg.Palette)
	}
	if cfg.BrushSize != 24 || cfg.BrushTip != "crayon" {
		t.Errorf("Unexpected brush %v %q", cfg.BrushSize, cfg.BrushTip)
	}
	if cfg.Sticker != "heart" || cfg.StickerSize != 128 {
		t.Errorf("Unexpected sticker %q %v", cfg.Sticker, cfg.StickerSize)
	}
	if cfg.CanvasWidth != 800 || cfg.CanvasHeight != 600 {
		t.Errorf("Unexpected canvas %dx%d", cfg.CanvasWidth, cfg.CanvasHeight)
	}
	if cfg.SaveDir != "/tmp/drawings" {
		t.Errorf("Expected save_dir '/tmp/drawings', got '%s'", cfg.SaveDir)
	}
	if !cfg.Notify.Export {
		t.Error("Expected notify.export to be true")
	}
	if cfg.Notify.Copy {
		t.Error("Expected notify.copy to be false")
	}

	p, ok := cfg.Palettes["sunset"]
	if !ok {
		t.Fatal("Expected palette 'sunset' to be loaded")
	}
	if p.Name != "Sunset" || len(p.Colors) != 2 {
		t.Fatalf("Unexpected palette %+v", p)
	}
	if p.Colors[1].Name != "Gold" || p.Colors[1].RGBA != (color.RGBA{255, 215, 0, 255}) {
		t.Errorf("Unexpected second color: %+v", p.Colors[1])
	}
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"bad tip":        "brush_tip = glitter\n",
		"bad sticker":    "sticker = dragon\n",
		"bad size":       "brush_size = big\n",
		"bad width":      "canvas_width = -3\n",
		"bad notify":     "[notify]\nexport = maybe\n",
		"bad color":      "[palette.x]\nRed: #GG0000\n",
		"empty palette":  "[palette.x]\n[notify]\n",
		"bad background": "background = sparkly\n",
	}
	for name, input := range cases {
		if _, err := Parse(strings.NewReader(input)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestCircular(t *testing.T) {
	input := `palette = kids
brush_size = 30
brush_tip = neon
sticker = moon
sticker_size = 200
background = #FFFFFF
canvas_width = 1024
canvas_height = 768
export_width = 2048
export_height = 1536
save_dir = /home/user/art

[notify]
export = true
copy = true

[palette.custom]
Name: custom
Sky: #87CEEB
Grass: #7CFC00
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	generated := cfg.String()

	cfg2, err := Parse(strings.NewReader(generated))
	if err != nil {
		t.Fatalf("Circular parse failed: %v\n%s", err, generated)
	}

	if cfg.Palette != cfg2.Palette || cfg.BrushSize != cfg2.BrushSize || cfg.BrushTip != cfg2.BrushTip {
		t.Errorf("Brush mismatch: %+v vs %+v", cfg, cfg2)
	}
	if cfg.Sticker != cfg2.Sticker || cfg.StickerSize != cfg2.StickerSize || cfg.Background != cfg2.Background {
		t.Errorf("Sticker mismatch: %+v vs %+v", cfg, cfg2)
	}
	if cfg.CanvasWidth != cfg2.CanvasWidth || cfg.ExportHeight != cfg2.ExportHeight {
		t.Errorf("Size mismatch: %+v vs %+v", cfg, cfg2)
	}
	if cfg.SaveDir != cfg2.SaveDir {
		t.Errorf("SaveDir mismatch: %q vs %q", cfg.SaveDir, cfg2.SaveDir)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}

	p1 := cfg.Palettes["custom"]
	p2 := cfg2.Palettes["custom"]
	if p1 == nil || p2 == nil {
		t.Fatalf("Custom palette missing in one config")
	}
	if len(p1.Colors) != len(p2.Colors) || p1.Colors[0] != p2.Colors[0] || p1.Colors[1] != p2.Colors[1] {
		t.Errorf("Palette mismatch: %v vs %v", p1.Colors, p2.Colors)
	}
}

func TestResolvePalettePrefersConfig(t *testing.T) {
	cfg := New()
	cfg.Palettes["kids"] = &palette.Palette{Name: "mine", Colors: []palette.Color{{Name: "Only", RGBA: color.RGBA{1, 2, 3, 255}}}}
	l := &palette.Loader{}
	p, err := cfg.ResolvePalette("kids", l)
	if err != nil || p.Name != "mine" {
		t.Fatalf("ResolvePalette: %v %v", p, err)
	}
	if p, err = cfg.ResolvePalette("crayons", l); err != nil || len(p.Colors) == 0 {
		t.Fatalf("embedded fallback: %v %v", p, err)
	}
}

func TestLoaderOverrideAndSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.rc")
	cfg := New()
	cfg.BrushSize = 12
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}
	l := NewLoader("v1.0.0", path)
	if got := l.GetConfigPath(); got != path {
		t.Fatalf("GetConfigPath = %q", got)
	}
	loaded, err := l.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.BrushSize != 12 {
		t.Fatalf("BrushSize = %v", loaded.BrushSize)
	}
}
