package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/kidspaint/internal/palette"
	"github.com/example/kidspaint/internal/scene"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var currentSection string
	var currentPalette *palette.Palette

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			if err := finishPalette(currentSection, currentPalette); err != nil {
				return nil, err
			}
			currentSection = strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
			currentPalette = nil

			if name, ok := strings.CutPrefix(currentSection, "palette."); ok {
				currentPalette = &palette.Palette{Name: name}
				cfg.Palettes[name] = currentPalette
			}
			continue
		}

		// Key = Value or Key: Value. Palette lines start with a name and
		// may carry '#' in the value, so split on whichever comes first.
		sep := strings.IndexAny(line, "=:")
		if sep < 0 {
			continue
		}
		key := strings.TrimSpace(line[:sep])
		value := strings.TrimSpace(line[sep+1:])
		if strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") && len(value) >= 2 {
			value = value[1 : len(value)-1]
		}

		switch {
		case currentPalette != nil:
			if err := setPaletteField(currentPalette, key, value); err != nil {
				return nil, fmt.Errorf("error in section [%s]: %w", currentSection, err)
			}
		case currentSection == "notify":
			if err := setNotifyField(&cfg.Notify, key, value); err != nil {
				return nil, fmt.Errorf("error in section [notify]: %w", err)
			}
		case currentSection == "":
			if err := setRootField(cfg, key, value); err != nil {
				return nil, fmt.Errorf("error in root section: %w", err)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if err := finishPalette(currentSection, currentPalette); err != nil {
		return nil, err
	}
	return cfg, nil
}

func finishPalette(section string, p *palette.Palette) error {
	if p != nil && len(p.Colors) == 0 {
		return fmt.Errorf("section [%s] defines no colors", section)
	}
	return nil
}

func setRootField(cfg *Config, key, value string) error {
	var err error
	switch strings.ToLower(key) {
	case "palette":
		cfg.Palette = value
	case "brush_size":
		cfg.BrushSize, err = parseSize(key, value)
	case "brush_tip":
		if _, err = scene.ParseTip(value); err == nil {
			cfg.BrushTip = value
		}
	case "sticker":
		if _, err = scene.ParseStickerType(value); err == nil {
			cfg.Sticker = value
		}
	case "sticker_size":
		cfg.StickerSize, err = parseSize(key, value)
	case "background":
		if _, err = palette.ParseColor(value); err == nil {
			cfg.Background = value
		}
	case "canvas_width":
		cfg.CanvasWidth, err = parseDimension(key, value)
	case "canvas_height":
		cfg.CanvasHeight, err = parseDimension(key, value)
	case "export_width":
		cfg.ExportWidth, err = parseDimension(key, value)
	case "export_height":
		cfg.ExportHeight, err = parseDimension(key, value)
	case "save_dir":
		cfg.SaveDir = value
	}
	return err
}

func parseSize(key, value string) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid size for key %s: %q", key, value)
	}
	return v, nil
}

func parseDimension(key, value string) (int, error) {
	v, err := strconv.Atoi(value)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid dimension for key %s: %q", key, value)
	}
	return v, nil
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "export":
		n.Export = b
	case "copy":
		n.Copy = b
	}
	return nil
}

func setPaletteField(p *palette.Palette, key, value string) error {
	if key == "Name" {
		p.Name = value
		return nil
	}
	col, err := palette.ParseColor(value)
	if err != nil {
		return fmt.Errorf("invalid color for key %s: %w", key, err)
	}
	p.Colors = append(p.Colors, palette.Color{Name: key, RGBA: col})
	return nil
}
