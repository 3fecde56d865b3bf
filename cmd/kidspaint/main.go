package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/example/kidspaint/internal/canvas"
	"github.com/example/kidspaint/internal/config"
	"github.com/example/kidspaint/internal/notify"
	"github.com/example/kidspaint/internal/palette"
	"github.com/example/kidspaint/internal/scene"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs            *flag.FlagSet
	program       string
	notifier      *notify.Notifier
	config        *config.Config
	exportAlerts  bool
	copyAlerts    bool
	paletteName   string
	activePalette *palette.Palette
}

func (r *root) Program() string {
	return r.program
}

func (r *root) subcommand(name string) *root {
	program := strings.TrimSpace(strings.Join([]string{r.program, name}, " "))
	return &root{
		program:       program,
		notifier:      r.notifier,
		config:        r.config,
		exportAlerts:  r.exportAlerts,
		copyAlerts:    r.copyAlerts,
		paletteName:   r.paletteName,
		activePalette: r.activePalette,
	}
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	prefs := notify.LoadPreferences()
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}

	r := &root{
		fs:       flag.NewFlagSet("kidspaint", flag.ExitOnError),
		program:  "kidspaint",
		notifier: notify.New(prefs),
		config:   cfg,
	}
	r.fs.BoolVar(&r.exportAlerts, "notify-export", cfg.Notify.Export, "show a desktop notification after saving a drawing")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")

	// Precedence: CLI > Env > Config > Default. An empty flag falls through.
	r.fs.StringVar(&r.paletteName, "palette", "", "colour palette name or file (kids, crayons, pastel)")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if r.notifier != nil {
		r.notifier.Enable(notify.EventExport, r.exportAlerts)
		r.notifier.Enable(notify.EventCopy, r.copyAlerts)
	}
	r.activePalette = r.resolvePalette()

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "paint":
		cmd, err = parsePaintCmd(subArgs, r)
	case "render":
		cmd, err = parseRenderCmd(subArgs, r)
	case "palettes":
		cmd, err = parsePalettesCmd(subArgs, r)
	case "stickers":
		cmd, err = parseStickersCmd(subArgs, r)
	case "tips":
		cmd, err = parseTipsCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

// resolvePalette picks the palette by flag, then KIDSPAINT_PALETTE, then
// the config file. Failures fall back to the built-in palette.
func (r *root) resolvePalette() *palette.Palette {
	name := r.paletteName
	if name == "" {
		name = os.Getenv("KIDSPAINT_PALETTE")
	}
	if name == "" && r.config != nil {
		name = r.config.Palette
	}
	cfg := r.config
	if cfg == nil {
		cfg = config.New()
	}
	p, err := cfg.ResolvePalette(name, palette.NewLoader())
	if err != nil {
		if name != "" && !strings.EqualFold(name, "kids") {
			fmt.Fprintf(os.Stderr, "warning: failed to load palette '%s': %v. using default.\n", name, err)
		}
		return palette.Default()
	}
	return p
}

// canvasOptions turns the loaded config into controller options. Values
// were validated when the config was parsed, so parse failures here are
// ignored rather than reported twice.
func (r *root) canvasOptions() []canvas.Option {
	var opts []canvas.Option
	if r.activePalette != nil {
		opts = append(opts, canvas.WithPalette(r.activePalette.RGBA()))
	}
	cfg := r.config
	if cfg == nil {
		return opts
	}
	if cfg.CanvasWidth > 0 && cfg.CanvasHeight > 0 {
		opts = append(opts, canvas.WithSize(float64(cfg.CanvasWidth), float64(cfg.CanvasHeight)))
	}
	size, tip := float64(canvas.DefaultBrushSize), scene.TipRound
	if cfg.BrushSize > 0 {
		size = cfg.BrushSize
	}
	if t, err := scene.ParseTip(cfg.BrushTip); err == nil {
		tip = t
	}
	opts = append(opts, canvas.WithBrush(size, tip))

	ssize, kind := float64(canvas.DefaultStickerSize), scene.StickerStar
	if cfg.StickerSize > 0 {
		ssize = cfg.StickerSize
	}
	if k, err := scene.ParseStickerType(cfg.Sticker); err == nil {
		kind = k
	}
	opts = append(opts, canvas.WithSticker(kind, ssize))

	if cfg.Background != "" {
		if c, err := palette.ParseColor(cfg.Background); err == nil {
			opts = append(opts, canvas.WithBackgroundColor(c))
		}
	}
	return opts
}

// exportSize picks the flag size, then the configured size. Zero means
// the canvas size.
func (r *root) exportSize(w, h int) image.Point {
	if w > 0 && h > 0 {
		return image.Pt(w, h)
	}
	if r.config != nil && r.config.ExportWidth > 0 && r.config.ExportHeight > 0 {
		return image.Pt(r.config.ExportWidth, r.config.ExportHeight)
	}
	return image.Point{}
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (r *root) notifyExport(path string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Export(path)
}

func (r *root) notifyCopy(detail string, img image.Image) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Copy(detail, img)
}
