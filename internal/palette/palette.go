// Package palette loads the named colour sets offered to the painter.
package palette

import (
	"image/color"
	"strings"
)

// Color is one named palette entry.
type Color struct {
	Name string
	RGBA color.RGBA
}

// Palette is an ordered list of colours. Order is the cycling order used by
// the controller D-pad.
type Palette struct {
	Name   string
	Colors []Color
}

// Default returns the built-in kids palette (fallback).
func Default() *Palette {
	return &Palette{
		Name: "Kids",
		Colors: []Color{
			{"Black", color.RGBA{0, 0, 0, 255}},
			{"White", color.RGBA{255, 255, 255, 255}},
			{"Red", color.RGBA{255, 59, 48, 255}},
			{"Orange", color.RGBA{255, 149, 0, 255}},
			{"Yellow", color.RGBA{255, 204, 0, 255}},
			{"Green", color.RGBA{52, 199, 89, 255}},
			{"Mint", color.RGBA{0, 199, 190, 255}},
			{"Blue", color.RGBA{0, 122, 255, 255}},
			{"Purple", color.RGBA{175, 82, 222, 255}},
			{"Pink", color.RGBA{255, 45, 85, 255}},
		},
	}
}

// RGBA returns the colours without their names.
func (p *Palette) RGBA() []color.RGBA {
	out := make([]color.RGBA, len(p.Colors))
	for i, c := range p.Colors {
		out[i] = c.RGBA
	}
	return out
}

// Lookup finds a colour by name, ignoring case.
func (p *Palette) Lookup(name string) (color.RGBA, bool) {
	for _, c := range p.Colors {
		if strings.EqualFold(c.Name, name) {
			return c.RGBA, true
		}
	}
	return color.RGBA{}, false
}

// Index returns the position of c, or -1.
func (p *Palette) Index(c color.RGBA) int {
	for i, pc := range p.Colors {
		if pc.RGBA == c {
			return i
		}
	}
	return -1
}
