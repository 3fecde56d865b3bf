package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/example/kidspaint/internal/appstate"
	"github.com/example/kidspaint/internal/canvas"
	"github.com/example/kidspaint/internal/clipboard"
)

type paintCmd struct {
	*root
	fs              *flag.FlagSet
	background      string
	output          string
	saveDir         string
	width           int
	height          int
	exportWidth     int
	exportHeight    int
	pasteBackground bool
	saveOnExit      bool
}

func (p *paintCmd) FlagSet() *flag.FlagSet {
	return p.fs
}

func parsePaintCmd(args []string, r *root) (*paintCmd, error) {
	fs := flag.NewFlagSet("paint", flag.ExitOnError)
	p := &paintCmd{root: r.subcommand("paint"), fs: fs}
	saveDir := ""
	if r.config != nil {
		saveDir = r.config.SaveDir
	}
	fs.StringVar(&p.background, "background", "", "image file to draw on (png, jpeg, gif, bmp, tiff, webp)")
	fs.BoolVar(&p.pasteBackground, "paste-background", false, "start with the clipboard image as the background")
	fs.StringVar(&p.output, "output", "", "file written by ctrl+s (default: timestamped file in -save-dir)")
	fs.StringVar(&p.saveDir, "save-dir", saveDir, "directory for timestamped drawings")
	fs.IntVar(&p.width, "width", 0, "canvas width in canvas units")
	fs.IntVar(&p.height, "height", 0, "canvas height in canvas units")
	fs.IntVar(&p.exportWidth, "export-width", 0, "width of saved and copied images")
	fs.IntVar(&p.exportHeight, "export-height", 0, "height of saved and copied images")
	fs.BoolVar(&p.saveOnExit, "save-on-exit", false, "save the drawing when the window closes")
	fs.Usage = usageFunc(p)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{of: p}
	}
	if p.background != "" && p.pasteBackground {
		return nil, fmt.Errorf("-background and -paste-background cannot be used together")
	}
	if (p.width > 0) != (p.height > 0) {
		return nil, fmt.Errorf("-width and -height must be given together")
	}
	return p, nil
}

// options collects the controller options shared by paint and render.
func (p *paintCmd) options() ([]canvas.Option, error) {
	opts := p.root.canvasOptions()
	if p.width > 0 && p.height > 0 {
		opts = append(opts, canvas.WithSize(float64(p.width), float64(p.height)))
	}
	switch {
	case p.background != "":
		img, err := loadImage(p.background)
		switch {
		case errors.Is(err, errUndecodable):
			log.Printf("background: %v; starting on a blank page", err)
		case err != nil:
			return nil, fmt.Errorf("load background: %w", err)
		default:
			opts = append(opts, canvas.WithBackgroundImage(img))
		}
	case p.pasteBackground:
		img, err := clipboard.ReadImage()
		if err != nil {
			return nil, fmt.Errorf("read clipboard image: %w", err)
		}
		opts = append(opts, canvas.WithBackgroundImage(img))
	}
	return opts, nil
}

func (p *paintCmd) Run() error {
	opts, err := p.options()
	if err != nil {
		return err
	}
	size := p.root.exportSize(p.exportWidth, p.exportHeight)
	var st *appstate.AppState
	st = appstate.New(
		appstate.WithCanvasOptions(opts...),
		appstate.WithOutput(p.output),
		appstate.WithSaveDir(p.saveDir),
		appstate.WithExportSize(size.X, size.Y),
		appstate.WithNotifier(p.notifier),
		appstate.WithOnClose(func() {
			if !p.saveOnExit || !st.Controller().CanUndo() {
				return
			}
			path, err := st.Export()
			if err != nil {
				log.Printf("save on exit: %v", err)
				return
			}
			fmt.Fprintf(os.Stderr, "saved %s\n", path)
		}),
	)
	st.Run()
	return nil
}
