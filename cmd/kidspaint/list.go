package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/example/kidspaint/internal/canvas"
	"github.com/example/kidspaint/internal/palette"
	"github.com/example/kidspaint/internal/scene"
)

// listCmd prints one of the option lists: palettes, stickers or tips.
type listCmd struct {
	*root
	fs   *flag.FlagSet
	name string
	out  io.Writer
}

func (l *listCmd) FlagSet() *flag.FlagSet {
	return l.fs
}

func parseListCmd(name string, args []string, r *root) (*listCmd, error) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	cmd := &listCmd{root: r.subcommand(name), fs: fs, name: name, out: os.Stdout}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func parsePalettesCmd(args []string, r *root) (*listCmd, error) {
	return parseListCmd("palettes", args, r)
}

func parseStickersCmd(args []string, r *root) (*listCmd, error) {
	return parseListCmd("stickers", args, r)
}

func parseTipsCmd(args []string, r *root) (*listCmd, error) {
	return parseListCmd("tips", args, r)
}

func (l *listCmd) Run() error {
	switch l.name {
	case "palettes":
		return l.palettes()
	case "stickers":
		l.stickers()
	case "tips":
		l.tips()
	default:
		return &UsageError{of: l}
	}
	return nil
}

func (l *listCmd) palettes() error {
	names := palette.NewLoader().Names()
	if l.config != nil {
		for name := range l.config.Palettes {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	active := ""
	if l.activePalette != nil {
		active = l.activePalette.Name
	}
	fmt.Fprintln(l.out, "available palettes (* marks the active palette):")
	seen := map[string]bool{}
	for _, name := range names {
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		marker := " "
		if strings.EqualFold(name, active) {
			marker = "*"
		}
		fmt.Fprintf(l.out, "%s %s\n", marker, name)
	}
	if l.activePalette == nil {
		return nil
	}
	fmt.Fprintf(l.out, "\n%s colours (* marks the starting colour):\n", l.activePalette.Name)
	for idx, entry := range l.activePalette.Colors {
		marker := " "
		if idx == 0 {
			marker = "*"
		}
		c := entry.RGBA
		block := fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m", c.R, c.G, c.B)
		fmt.Fprintf(l.out, "%s %2d: %-12s %s %s\n", marker, idx, entry.Name, palette.FormatColor(c), block)
	}
	return nil
}

func (l *listCmd) stickers() {
	current := scene.StickerStar
	if l.config != nil {
		if k, err := scene.ParseStickerType(l.config.Sticker); err == nil {
			current = k
		}
	}
	fmt.Fprintf(l.out, "available stickers (* marks the default, sizes %d-%d):\n", canvas.MinStickerSize, canvas.MaxStickerSize)
	for idx, k := range scene.StickerTypes() {
		marker := " "
		if k == current {
			marker = "*"
		}
		fmt.Fprintf(l.out, "%s %2d: %s\n", marker, idx, k)
	}
}

func (l *listCmd) tips() {
	current := scene.TipRound
	if l.config != nil {
		if t, err := scene.ParseTip(l.config.BrushTip); err == nil {
			current = t
		}
	}
	fmt.Fprintf(l.out, "available brush tips (* marks the default, sizes %d-%d):\n", canvas.MinBrushSize, canvas.MaxBrushSize)
	for idx, t := range scene.Tips() {
		marker := " "
		if t == current {
			marker = "*"
		}
		fmt.Fprintf(l.out, "%s %2d: %s\n", marker, idx, t)
	}
}
