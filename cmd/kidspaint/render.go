package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/example/kidspaint/internal/canvas"
	"github.com/example/kidspaint/internal/clipboard"
	"github.com/example/kidspaint/internal/script"
)

type renderCmd struct {
	*root
	fs           *flag.FlagSet
	output       string
	background   string
	exportWidth  int
	exportHeight int
	toClipboard  bool
	script       string
	stdout       io.Writer
}

func (c *renderCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseRenderCmd(args []string, r *root) (*renderCmd, error) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	c := &renderCmd{root: r.subcommand("render"), fs: fs, stdout: os.Stdout}
	fs.StringVar(&c.output, "output", "", "PNG file to write, or - for stdout (default: script name with .png)")
	fs.StringVar(&c.background, "background", "", "image file to draw on")
	fs.IntVar(&c.exportWidth, "width", 0, "output width in pixels")
	fs.IntVar(&c.exportHeight, "height", 0, "output height in pixels")
	fs.BoolVar(&c.toClipboard, "clipboard", false, "also copy the PNG to the clipboard")
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		return nil, &UsageError{of: c}
	}
	c.script = fs.Arg(0)
	if c.output == "" {
		ext := filepath.Ext(c.script)
		c.output = c.script[:len(c.script)-len(ext)] + ".png"
	}
	if (c.exportWidth > 0) != (c.exportHeight > 0) {
		return nil, fmt.Errorf("-width and -height must be given together")
	}
	return c, nil
}

func (c *renderCmd) Run() error {
	s, err := script.Load(c.script)
	if err != nil {
		return fmt.Errorf("load script: %w", err)
	}
	opts := c.root.canvasOptions()
	header, err := s.Options()
	if err != nil {
		return fmt.Errorf("load script: %w", err)
	}
	opts = append(opts, header...)
	if c.background != "" {
		img, err := loadImage(c.background)
		if err != nil {
			return fmt.Errorf("load background: %w", err)
		}
		opts = append(opts, canvas.WithBackgroundImage(img))
	}
	ctrl := canvas.New(opts...)
	if err := s.Run(ctrl); err != nil {
		return err
	}

	size := c.root.exportSize(c.exportWidth, c.exportHeight)
	if size.X == 0 {
		sz := ctrl.Size()
		size.X, size.Y = int(sz.X), int(sz.Y)
	}
	img := ctrl.ExportRaster(size.X, size.Y)
	if err := savePNG(c.output, img, c.stdout); err != nil {
		return fmt.Errorf("save %s: %w", c.output, err)
	}
	if c.output != "-" {
		saved := c.output
		if abs, err := filepath.Abs(c.output); err == nil {
			saved = abs
		}
		fmt.Fprintf(os.Stderr, "saved %s\n", saved)
		c.root.notifyExport(saved)
	}
	if c.toClipboard {
		if err := clipboard.WriteImage(img); err != nil {
			return fmt.Errorf("copy PNG to clipboard: %w", err)
		}
		detail := filepath.Base(c.script)
		fmt.Fprintf(os.Stderr, "copied %s to clipboard\n", detail)
		c.root.notifyCopy(detail, img)
	}
	return nil
}
