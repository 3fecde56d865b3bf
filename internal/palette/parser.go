package palette

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Parse reads a palette definition. Each line is `Name: value` where value
// is #RRGGBB, #RRGGBBAA or an SVG colour name. A `Name` key names the
// palette itself. Entries keep file order.
func Parse(r io.Reader) (*Palette, error) {
	p := &Palette{}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "Name" {
			p.Name = value
			continue
		}
		col, err := ParseColor(value)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid color for %s: %w", lineNo, key, err)
		}
		p.Colors = append(p.Colors, Color{Name: key, RGBA: col})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(p.Colors) == 0 {
		return nil, fmt.Errorf("palette %q has no colors", p.Name)
	}
	return p, nil
}

// ParseColor accepts #RRGGBB, #RRGGBBAA or an SVG colour name such as
// "tomato".
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		if c, ok := colornames.Map[strings.ToLower(s)]; ok {
			return c, nil
		}
		return color.RGBA{}, fmt.Errorf("unknown color %q", s)
	}
	hex := strings.TrimPrefix(s, "#")
	switch len(hex) {
	case 6:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		return color.RGBA{R: uint8(val >> 16), G: uint8(val >> 8), B: uint8(val), A: 255}, nil
	case 8:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		return color.RGBA{R: uint8(val >> 24), G: uint8(val >> 16), B: uint8(val >> 8), A: uint8(val)}, nil
	}
	return color.RGBA{}, fmt.Errorf("invalid hex length")
}

// FormatColor renders c as #RRGGBB, or #RRGGBBAA when not opaque.
func FormatColor(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// Write renders p in the format Parse reads.
func Write(w io.Writer, p *Palette) error {
	if _, err := fmt.Fprintf(w, "Name: %s\n", p.Name); err != nil {
		return err
	}
	for _, c := range p.Colors {
		if _, err := fmt.Fprintf(w, "%s: %s\n", c.Name, FormatColor(c.RGBA)); err != nil {
			return err
		}
	}
	return nil
}
